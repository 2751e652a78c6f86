package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Profile holds the tunable parts of prompt construction.
type Profile struct {
	Keywords         []string
	HistoryWindow    int
	MaxArtifactBytes int
}

// profileFile is the on-disk shape; nil fields are left unset.
type profileFile struct {
	Keywords         []string `yaml:"keywords" toml:"keywords"`
	HistoryWindow    *int     `yaml:"history_window" toml:"history_window"`
	MaxArtifactBytes *int     `yaml:"max_artifact_bytes" toml:"max_artifact_bytes"`
}

// DefaultKeywords mark a message as a request to change the previous component.
var DefaultKeywords = []string{"update", "change", "modify", "edit", "improve"}

func DefaultProfile() Profile {
	return Profile{
		Keywords:         append([]string(nil), DefaultKeywords...),
		HistoryWindow:    5,
		MaxArtifactBytes: 32000,
	}
}

// LoadProfile overlays the YAML (.yaml, .yml) or TOML (.toml) file at path onto
// base. Fields absent from the file keep their base values.
func LoadProfile(path string, base Profile) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read prompt profile: %w", err)
	}

	var f profileFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return base, fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return base, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return base, fmt.Errorf("unsupported prompt profile extension %q", ext)
	}

	p := base
	if f.Keywords != nil {
		p.Keywords = f.Keywords
	}
	if f.HistoryWindow != nil {
		p.HistoryWindow = *f.HistoryWindow
	}
	if f.MaxArtifactBytes != nil {
		p.MaxArtifactBytes = *f.MaxArtifactBytes
	}

	if err := p.validate(); err != nil {
		return base, err
	}
	return p, nil
}

func (p Profile) validate() error {
	if len(p.Keywords) == 0 {
		return fmt.Errorf("prompt profile: keywords must not be empty")
	}
	if p.HistoryWindow < 0 {
		return fmt.Errorf("prompt profile: history_window must not be negative, got %d", p.HistoryWindow)
	}
	if p.MaxArtifactBytes < 0 {
		return fmt.Errorf("prompt profile: max_artifact_bytes must not be negative, got %d", p.MaxArtifactBytes)
	}
	return nil
}
