package tool

import (
	"errors"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/capital-agent/agent/contract"
)

func TestDefaultTableLookupSupportedCountries(t *testing.T) {
	t.Parallel()

	want := map[string]string{
		"france":         "Paris",
		"japan":          "Tokyo",
		"usa":            "Washington D.C.",
		"united states":  "Washington D.C.",
		"germany":        "Berlin",
		"italy":          "Rome",
		"spain":          "Madrid",
		"uk":             "London",
		"united kingdom": "London",
		"canada":         "Ottawa",
		"australia":      "Canberra",
	}

	table := DefaultTable()
	if table.Len() != len(want) {
		t.Fatalf("table has %d entries, want %d", table.Len(), len(want))
	}
	for country, capital := range want {
		for _, input := range []string{country, "  " + country + "  ", strings.ToUpper(country)} {
			got, ok := table.Lookup(input)
			if !ok {
				t.Fatalf("Lookup(%q) not found", input)
			}
			if got != capital {
				t.Fatalf("Lookup(%q) = %q, want %q", input, got, capital)
			}
		}
	}
}

func TestDefaultTableLookupUnsupported(t *testing.T) {
	t.Parallel()

	table := DefaultTable()
	for _, input := range []string{"atlantis", "", "   ", "japan or france", "narnia", "united  kingdomx"} {
		if got, ok := table.Lookup(input); ok {
			t.Fatalf("Lookup(%q) = %q, want not found", input, got)
		}
	}
}

func TestLookupCollapsesInnerWhitespace(t *testing.T) {
	t.Parallel()

	got, ok := DefaultTable().Lookup("United \t  Kingdom")
	if !ok || got != "London" {
		t.Fatalf("Lookup() = %q, %v", got, ok)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"", " ", "Japan", "  UNITED   states ", "\tItaly\n", "côte d'ivoire", "A  B  C"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestParseTableRejectsDuplicateAfterNormalization(t *testing.T) {
	t.Parallel()

	_, err := ParseTable([]byte("[capitals]\nJapan = \"Tokyo\"\njapan = \"Kyoto\"\n"))
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("ParseTable() error = %v, want ErrValidation", err)
	}
}

func TestParseTableRejectsEmptyCapital(t *testing.T) {
	t.Parallel()

	_, err := ParseTable([]byte("[capitals]\njapan = \"  \"\n"))
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("ParseTable() error = %v, want ErrValidation", err)
	}
}

func TestParseTableInvalidTOML(t *testing.T) {
	t.Parallel()

	_, err := ParseTable([]byte("[capitals\n"))
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCountriesSorted(t *testing.T) {
	t.Parallel()

	countries := DefaultTable().Countries()
	for i := 1; i < len(countries); i++ {
		if countries[i-1] > countries[i] {
			t.Fatalf("countries not sorted: %v", countries)
		}
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"japan":            "Japan",
		"usa":              "USA",
		"  united   states": "United States",
		"uk":               "UK",
	}
	for in, want := range cases {
		if got := DisplayName(in); got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}
