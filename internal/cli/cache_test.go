package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheStats(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.svg"), make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "b.json"), make([]byte, 50), 0o644); err != nil {
		t.Fatal(err)
	}

	count, size, err := cacheStats(dir)
	if err != nil {
		t.Fatalf("cacheStats: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if size != 150 {
		t.Errorf("size = %d, want 150", size)
	}
}

func TestCacheStatsMissingDir(t *testing.T) {
	count, size, err := cacheStats(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("cacheStats: %v", err)
	}
	if count != 0 || size != 0 {
		t.Errorf("count = %d size = %d, want zeros", count, size)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
