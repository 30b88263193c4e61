package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "system.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validConfig = `
version: "1.0"
categories:
  - value: adult
    label: Adult
    order: 3
  - value: kids
    label: Kids
    order: 1
  - value: youth
    label: Youth
    order: 2
belt_levels:
  - value: black
    label: Black Belt
    rank: 2
  - value: white
    label: White Belt
    rank: 1
`

func TestLoadSystemConfig(t *testing.T) {
	cfg, err := LoadSystemConfig(writeConfigFile(t, validConfig))
	if err != nil {
		t.Fatal(err)
	}

	// Categories come back in display order, belts in rank order.
	if got, want := cfg.CategoryValues(), []string{"kids", "youth", "adult"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got categories %v, want %v", got, want)
	}
	if got, want := cfg.BeltLevels[0].Value, "white"; got != want {
		t.Errorf("got first belt %v, want %v", got, want)
	}

	if !cfg.IsValidCategory("kids") {
		t.Error("kids should be a valid category")
	}
	if cfg.IsValidCategory("beginner") {
		t.Error("beginner is not configured and should be invalid")
	}
	if !cfg.IsValidBeltLevel("black") {
		t.Error("black should be a valid belt level")
	}
	if cfg.IsValidBeltLevel("purple") {
		t.Error("purple is not configured and should be invalid")
	}
}

func TestLoadSystemConfigRejectsBadFiles(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing version",
			content: strings.Replace(validConfig, `version: "1.0"`, "", 1),
			wantErr: "missing version",
		},
		{
			name: "no categories",
			content: `
version: "1.0"
belt_levels:
  - value: white
    label: White Belt
    rank: 1
`,
			wantErr: "categories",
		},
		{
			name:    "duplicate category",
			content: strings.Replace(validConfig, "value: youth", "value: kids", 1),
			wantErr: "duplicate category",
		},
		{
			name:    "not yaml",
			content: "{{{",
			wantErr: "parse system config",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSystemConfig(writeConfigFile(t, tc.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("got error %q, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadSystemConfigMissingFile(t *testing.T) {
	if _, err := LoadSystemConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
