package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// isolateCache points the user cache directory at a temporary directory
// and returns the expected timetable cache path.
func isolateCache(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", root)
	t.Setenv("HOME", root)
	t.Setenv("LocalAppData", root)
	if runtime.GOOS == "darwin" {
		return filepath.Join(root, "Library", "Caches", appName)
	}
	return filepath.Join(root, appName)
}

func TestCacheDir(t *testing.T) {
	want := isolateCache(t)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
	if !strings.HasSuffix(dir, "timetable") {
		t.Errorf("cacheDir() = %q, should end with 'timetable'", dir)
	}
}

func TestCachePathCommand(t *testing.T) {
	want := isolateCache(t)

	out, _, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	isolateCache(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "week.txt", weekDoc)
	outFile := filepath.Join(dir, "week.json")

	out, _, err := execute(t, "render", path, "-f", "json", "-o", outFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, iconFresh) {
		t.Errorf("first render should be fresh: %q", out)
	}

	out, _, err = execute(t, "render", path, "-f", "json", "-o", outFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, iconCached) {
		t.Errorf("second render should be cached: %q", out)
	}

	out, _, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1 cached render") {
		t.Errorf("cache clear output = %q", out)
	}

	out, _, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("second cache clear output = %q", out)
	}

	if _, err := os.Stat(outFile); err != nil {
		t.Errorf("rendered file missing: %v", err)
	}
}
