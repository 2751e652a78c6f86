package prompt

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadProfileYAML(t *testing.T) {
	path := writeProfile(t, "profile.yaml", `
keywords: [tweak, restyle]
history_window: 3
`)

	p, err := LoadProfile(path, DefaultProfile())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(p.Keywords, []string{"tweak", "restyle"}) {
		t.Fatalf("unexpected keywords %v", p.Keywords)
	}
	if p.HistoryWindow != 3 {
		t.Fatalf("expected window 3, got %d", p.HistoryWindow)
	}
	if p.MaxArtifactBytes != 32000 {
		t.Fatalf("expected default max artifact bytes, got %d", p.MaxArtifactBytes)
	}

	b := NewBuilder(p)
	if !b.IsUpdateRequest("Please TWEAK the padding") || b.IsUpdateRequest("update it") {
		t.Fatal("builder should use the overlay keywords only")
	}
}

func TestLoadProfileTOML(t *testing.T) {
	path := writeProfile(t, "profile.toml", `
max_artifact_bytes = 0
history_window = 0
`)

	p, err := LoadProfile(path, DefaultProfile())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.MaxArtifactBytes != 0 || p.HistoryWindow != 0 {
		t.Fatalf("expected explicit zeros to apply, got %+v", p)
	}
	if !reflect.DeepEqual(p.Keywords, DefaultKeywords) {
		t.Fatalf("expected default keywords, got %v", p.Keywords)
	}
}

func TestLoadProfileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unsupported extension", "profile.json", `{}`, "unsupported"},
		{"bad yaml", "profile.yml", "keywords: [unterminated", "parse yaml"},
		{"bad toml", "profile.toml", "history_window = = 1", "parse toml"},
		{"empty keywords", "profile.yaml", "keywords: []", "keywords must not be empty"},
		{"negative window", "profile.toml", "history_window = -1", "history_window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := DefaultProfile()
			p, err := LoadProfile(writeProfile(t, tt.file, tt.content), base)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
			if !reflect.DeepEqual(p, base) {
				t.Fatal("expected base profile on error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"), DefaultProfile()); err == nil {
			t.Fatal("expected error")
		}
	})
}
