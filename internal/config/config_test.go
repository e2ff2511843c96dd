package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitializeLoadsDefaults(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetInt(KeyMaxSelectable); got != DefaultMaxSelectable {
		t.Fatalf("expected default %s = %d, got %d", KeyMaxSelectable, DefaultMaxSelectable, got)
	}
	if got := GetInt(KeyMaxVisible); got != DefaultMaxVisible {
		t.Fatalf("expected default %s = %d, got %d", KeyMaxVisible, DefaultMaxVisible, got)
	}
	if got := GetDuration(KeyScrollDebounce); got != 200*time.Millisecond {
		t.Fatalf("expected default %s = 200ms, got %v", KeyScrollDebounce, got)
	}
	if got := GetString(KeyAPIBaseURL); got != "https://rickandmortyapi.com/api" {
		t.Fatalf("unexpected default base URL %q", got)
	}
	if !GetBool(KeyCacheEnabled) {
		t.Fatalf("expected cache enabled by default")
	}
	if got := GetString(KeyTheme); got != DefaultTheme {
		t.Fatalf("expected default theme %q, got %q", DefaultTheme, got)
	}
	if got := GetString(KeyCachePath); !strings.HasSuffix(got, filepath.Join(DirName, "cache.db")) {
		t.Fatalf("unexpected default cache path %q", got)
	}
}

func TestProjectConfigOverridesUser(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	nested := filepath.Join(projectDir, "sub", "dir")
	mustMkdir(t, nested)
	writeFile(t, filepath.Join(projectDir, DirName, "config.yaml"), `
selector:
  max-selectable: 5
theme: nord
`)

	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
selector:
  max-selectable: 3
  max-visible: 4
theme: dracula
`)

	if err := Initialize(WithWorkingDir(nested), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetInt(KeyMaxSelectable); got != 5 {
		t.Fatalf("expected project config to win for %s, got %d", KeyMaxSelectable, got)
	}
	if got := GetInt(KeyMaxVisible); got != 4 {
		t.Fatalf("expected user value for %s, got %d", KeyMaxVisible, got)
	}
	if got := GetString(KeyTheme); got != "nord" {
		t.Fatalf("expected project theme, got %q", got)
	}
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectCfg := filepath.Join(tmp, DirName, "config.yaml")
	writeFile(t, projectCfg, `
api:
  base-url: http://project.invalid/api
cache:
  enabled: true
`)

	t.Setenv("RMS_API_BASE_URL", "http://env.invalid/api")
	t.Setenv("RMS_CACHE_ENABLED", "false")

	if err := Initialize(
		WithWorkingDir(tmp),
		WithProjectConfig(projectCfg),
		WithUserConfig(filepath.Join(tmp, "none.yaml")),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeyAPIBaseURL); got != "http://env.invalid/api" {
		t.Fatalf("expected env override for %s, got %q", KeyAPIBaseURL, got)
	}
	if GetBool(KeyCacheEnabled) {
		t.Fatalf("expected env to disable %s", KeyCacheEnabled)
	}

	if err := ApplyOverrides(map[string]any{KeyAPIBaseURL: "http://flag.invalid/api"}); err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if got := GetString(KeyAPIBaseURL); got != "http://flag.invalid/api" {
		t.Fatalf("expected CLI override for %s, got %q", KeyAPIBaseURL, got)
	}
}

func TestInvalidConfigFile(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, "selector: [unterminated\n")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveTheme(t *testing.T) {
	t.Run("WritesUserConfig", func(t *testing.T) {
		reset()
		t.Cleanup(reset)

		tmp := t.TempDir()
		userCfg := filepath.Join(tmp, "home", DirName, "config.yaml")
		writeFile(t, userCfg, "selector:\n  max-visible: 9\n")
		if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
			t.Fatalf("Initialize returned error: %v", err)
		}

		if err := SaveTheme("dracula"); err != nil {
			t.Fatalf("SaveTheme returned error: %v", err)
		}
		data, err := os.ReadFile(userCfg)
		if err != nil {
			t.Fatalf("read config: %v", err)
		}
		if !strings.Contains(string(data), "dracula") {
			t.Errorf("expected theme written, got:\n%s", data)
		}
		if !strings.Contains(string(data), "max-visible: 9") {
			t.Errorf("expected other settings kept, got:\n%s", data)
		}
		if got := GetString(KeyTheme); got != "dracula" {
			t.Errorf("expected runtime theme updated, got %q", got)
		}
	})

	t.Run("PrefersProjectConfig", func(t *testing.T) {
		reset()
		t.Cleanup(reset)

		tmp := t.TempDir()
		projectCfg := filepath.Join(tmp, DirName, "config.yaml")
		writeFile(t, projectCfg, "theme: nord\n")
		userCfg := filepath.Join(tmp, "user.yaml")
		if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
			t.Fatalf("Initialize returned error: %v", err)
		}

		if err := SaveTheme("tokyonight"); err != nil {
			t.Fatalf("SaveTheme returned error: %v", err)
		}
		data, _ := os.ReadFile(projectCfg)
		if !strings.Contains(string(data), "tokyonight") {
			t.Errorf("expected project config updated, got:\n%s", data)
		}
		if _, err := os.Stat(userCfg); err == nil {
			t.Error("expected user config untouched")
		}
	})
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
