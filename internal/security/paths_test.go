package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePathWithinDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	safeDir := filepath.Join(tmpDir, "safe")
	unsafeDir := filepath.Join(tmpDir, "unsafe")
	if err := os.MkdirAll(safeDir, 0755); err != nil {
		t.Fatalf("Failed to create safe directory: %v", err)
	}
	if err := os.MkdirAll(unsafeDir, 0755); err != nil {
		t.Fatalf("Failed to create unsafe directory: %v", err)
	}
	symlinkPath := filepath.Join(safeDir, "evil-symlink")
	if err := os.Symlink(unsafeDir, symlinkPath); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	tests := []struct {
		name      string
		filePath  string
		dir       string
		wantError bool
	}{
		{"file in directory", filepath.Join(safeDir, "events.csv"), safeDir, false},
		{"nested new file", filepath.Join(safeDir, "run", "plot.png"), safeDir, false},
		{"dot-dot escape", filepath.Join(safeDir, "..", "events.csv"), safeDir, true},
		{"relative escape", "../../../etc/passwd", safeDir, true},
		{"through symlink", filepath.Join(symlinkPath, "events.csv"), safeDir, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinDirectory(tt.filePath, tt.dir)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidatePathWithinDirectory(%q, %q) error = %v, wantError %v", tt.filePath, tt.dir, err, tt.wantError)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"":                  "unknown",
		"coastal-radar":     "coastal-radar",
		"four face / N+E":   "four_face_N_E",
		"../../etc/passwd":  "etc_passwd",
		"__hidden__":        "hidden",
		"run 2024.03.01 v2": "run_2024.03.01_v2",
		"émission":          "mission",
		"a___b":             "a_b",
	}
	for in, want := range tests {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()

	got, err := OutputPath(dir, "north sector.csv")
	if err != nil {
		t.Fatalf("OutputPath: %v", err)
	}
	if want := filepath.Join(dir, "north_sector.csv"); got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}

	got, err = OutputPath(dir, "../escape.html")
	if err != nil {
		t.Fatalf("OutputPath: %v", err)
	}
	if filepath.Dir(got) != dir {
		t.Errorf("OutputPath(../escape.html) = %q, want a file directly in %q", got, dir)
	}
}
