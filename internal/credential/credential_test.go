package credential

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvSourceGetReturnsValueWhenPresent(t *testing.T) {
	source := NewEnvSource()
	t.Setenv("PANELCTL_TEST_TOKEN", "token-value")

	value, found := source.Get("PANELCTL_TEST_TOKEN")
	if !found {
		t.Fatal("expected variable to be found")
	}

	if value != "token-value" {
		t.Fatalf("expected token-value, got %q", value)
	}
}

func TestEnvSourceStoreNotSupported(t *testing.T) {
	source := NewEnvSource()

	if err := source.Store("ANY", "value"); err != ErrNotSupported {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}

func TestFileSourceStoreAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	source := NewFileSource(path)

	if err := source.Store("PANELCTL_API_KEY", "ptlc_abc123"); err != nil {
		t.Fatalf("expected store to succeed: %v", err)
	}

	value, found := source.Get("PANELCTL_API_KEY")
	if !found {
		t.Fatal("expected key to be found")
	}

	if value != "ptlc_abc123" {
		t.Fatalf("unexpected value: %q", value)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected credentials file to exist: %v", err)
	}

	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestFileSourceSkipsCommentsAndBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	content := "# panel credentials\n\nPANELCTL_API_KEY = ptlc_abc123\nbroken-line\n"

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}

	source := NewFileSource(path)

	value, found := source.Get("PANELCTL_API_KEY")
	if !found || value != "ptlc_abc123" {
		t.Fatalf("expected ptlc_abc123, got %q (found=%v)", value, found)
	}
}

func TestFileSourceDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	source := NewFileSource(path)

	if err := source.Store("PANELCTL_API_KEY", "ptlc_abc123"); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	if err := source.Delete("PANELCTL_API_KEY"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, found := source.Get("PANELCTL_API_KEY"); found {
		t.Fatal("expected key to be gone")
	}
}

func TestResolverChecksSourcesInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	fileSource := NewFileSource(path)
	if err := fileSource.Store("PANELCTL_API_KEY", "from-file"); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	t.Setenv("PANELCTL_API_KEY", "from-env")

	resolver := NewResolver(NewEnvSource(), fileSource)

	value, sourceName, found := resolver.Resolve("PANELCTL_API_KEY")
	if !found {
		t.Fatal("expected key to resolve")
	}

	if value != "from-env" || sourceName != "environment" {
		t.Fatalf("expected env to win, got %q from %q", value, sourceName)
	}
}

func TestResolverAPIKeyFallsBackToDefaultEnv(t *testing.T) {
	t.Setenv(DefaultKeyEnv, "ptlc_default")

	resolver := NewResolver(NewEnvSource())

	value, found := resolver.APIKey("")
	if !found || value != "ptlc_default" {
		t.Fatalf("expected default env key, got %q (found=%v)", value, found)
	}
}

func TestResolverAPIKeyHonorsConfiguredEnvName(t *testing.T) {
	t.Setenv("MY_PANEL_KEY", "ptlc_custom")

	resolver := NewResolver(NewEnvSource())

	value, found := resolver.APIKey("MY_PANEL_KEY")
	if !found || value != "ptlc_custom" {
		t.Fatalf("expected custom env key, got %q (found=%v)", value, found)
	}
}

func TestResolveEmptyNameNotFound(t *testing.T) {
	resolver := DefaultResolver()

	if _, _, found := resolver.Resolve("   "); found {
		t.Fatal("expected blank name to be unresolvable")
	}
}
