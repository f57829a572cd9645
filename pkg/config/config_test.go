package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	APIKey  string        `split_words:"true" required:"true"`
	Model   string        `split_words:"true" default:"default-model"`
	Timeout time.Duration `split_words:"true" default:"5s"`
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("CFGTEST_API_KEY", "from-env")

	conf, err := New[testConfig]("CFGTEST")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.APIKey != "from-env" {
		t.Fatalf("APIKey = %q", conf.APIKey)
	}
	if conf.Model != "default-model" || conf.Timeout != 5*time.Second {
		t.Fatalf("defaults not applied: %+v", conf)
	}
}

func TestNewMissingRequired(t *testing.T) {
	t.Setenv("CFGMISS_API_KEY", "")
	os.Unsetenv("CFGMISS_API_KEY")

	if _, err := New[testConfig]("CFGMISS"); err == nil {
		t.Fatal("expected error for missing required key")
	}
}

func TestNewLoadsEnvFile(t *testing.T) {
	t.Setenv("CFGFILE_MODEL", "from-env")
	os.Unsetenv("CFGFILE_API_KEY")
	t.Cleanup(func() { os.Unsetenv("CFGFILE_API_KEY") })

	path := writeEnvFile(t, "CFGFILE_API_KEY=from-file\nCFGFILE_MODEL=from-file\n")

	conf, err := New[testConfig]("CFGFILE", WithEnvFile(path))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.APIKey != "from-file" {
		t.Fatalf("APIKey = %q, want from-file", conf.APIKey)
	}
	if conf.Model != "from-env" {
		t.Fatalf("Model = %q, environment must win over file", conf.Model)
	}
}

func TestNewExplicitEnvFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")
	if _, err := New[testConfig]("CFGNOFILE", WithEnvFile(missing)); err == nil {
		t.Fatal("expected error for missing explicit env file")
	}
}

func TestMustNewPanicsOnError(t *testing.T) {
	os.Unsetenv("CFGPANIC_API_KEY")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustNew[testConfig]("CFGPANIC")
}
