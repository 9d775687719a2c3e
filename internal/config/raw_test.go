package config

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleRPC = `# my project
PROJECT_INTERNAL_NAME = "my_game"           # Project internal name
PROJECT_COMMERCIAL_NAME = "My Game"
PLATFORM_HTML5_HEAP_MEMORY_SIZE = 256       # Heap in MB
PLATFORM_HTML5_FLAG_USE_WEBGL2 = 1
PLATFORM_WINDOWS_W64DEVKIT_PATH = "C:/w64devkit"
PROJECT_ICON_FILE = "src/my_game.ico"
DEPLOY_FLAG_INCUDE_README = 1
RAYLIB_OPENGL_VERSION = 3.3
CUSTOM_SETTING = 42                         # not bound
`

func TestParseRaw_Classification(t *testing.T) {
	raw, err := ParseRaw(strings.NewReader(sampleRPC))
	if err != nil {
		t.Fatalf("ParseRaw() error = %v", err)
	}

	tests := []struct {
		key      string
		category Category
		platform Platform
		typ      EntryType
		name     string
	}{
		{"PROJECT_INTERNAL_NAME", CategoryProject, PlatformAny, TypeText, "INTERNAL NAME"},
		{"PLATFORM_HTML5_HEAP_MEMORY_SIZE", CategoryPlatform, PlatformHTML5, TypeValue, "HEAP MEMORY SIZE"},
		{"PLATFORM_HTML5_FLAG_USE_WEBGL2", CategoryPlatform, PlatformHTML5, TypeBool, "FLAG USE WEBGL2"},
		{"PLATFORM_WINDOWS_W64DEVKIT_PATH", CategoryPlatform, PlatformWindows, TypePath, "W64DEVKIT PATH"},
		{"PROJECT_ICON_FILE", CategoryProject, PlatformAny, TypeFile, "ICON FILE"},
		{"DEPLOY_FLAG_INCLUDE_README", CategoryDeploy, PlatformAny, TypeBool, "FLAG INCLUDE README"},
		{"RAYLIB_OPENGL_VERSION", CategoryRaylib, PlatformAny, TypeText, "OPENGL VERSION"},
		{"CUSTOM_SETTING", CategoryProject, PlatformAny, TypeValue, "CUSTOM SETTING"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			e := raw.Lookup(tt.key)
			if e == nil {
				t.Fatalf("Lookup(%s) = nil", tt.key)
			}
			if e.Category != tt.category || e.Platform != tt.platform || e.Type != tt.typ || e.Name != tt.name {
				t.Errorf("entry = {%v %v %v %q}, want {%v %v %v %q}",
					e.Category, e.Platform, e.Type, e.Name, tt.category, tt.platform, tt.typ, tt.name)
			}
		})
	}

	if e := raw.Lookup("PLATFORM_HTML5_HEAP_MEMORY_SIZE"); e.Value != 256 || e.Text != "256" || e.Desc != "Heap in MB" {
		t.Errorf("heap entry = %+v", e)
	}
	if diff := cmp.Diff([]string{"my project"}, raw.Header); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}
}

func TestRawSet(t *testing.T) {
	raw, err := ParseRaw(strings.NewReader(sampleRPC))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		key, value string
		wantText   string
		wantErr    error
	}{
		{"PROJECT_INTERNAL_NAME", "other_game", "other_game", nil},
		{"PLATFORM_HTML5_HEAP_MEMORY_SIZE", "512", "512", nil},
		{"PLATFORM_HTML5_FLAG_USE_WEBGL2", "off", "0", nil},
		{"PLATFORM_HTML5_FLAG_USE_WEBGL2", "yes", "1", nil},
		{"platform_html5_heap_memory_size", "64", "64", nil},
		{"PLATFORM_HTML5_HEAP_MEMORY_SIZE", "lots", "", ErrInvalidValue},
		{"NOT_A_KEY", "1", "", ErrUnknownKey},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := raw.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Set() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() unexpected error: %v", err)
			}
			if got := raw.Lookup(tt.key).Text; got != tt.wantText {
				t.Errorf("Text = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestRawWrite_GroupsByCategory(t *testing.T) {
	raw, err := ParseRaw(strings.NewReader(sampleRPC))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := raw.Write(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	order := []string{
		"# Project settings",
		"PROJECT_INTERNAL_NAME",
		"PROJECT_ICON_FILE",
		"CUSTOM_SETTING",
		"# Platform settings",
		"PLATFORM_WINDOWS_W64DEVKIT_PATH",
		"PLATFORM_HTML5_HEAP_MEMORY_SIZE",
		"# Deploy settings",
		"DEPLOY_FLAG_INCLUDE_README",
		"# raylib settings",
		"RAYLIB_OPENGL_VERSION",
	}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		if i < 0 {
			t.Fatalf("output is missing %q:\n%s", s, out)
		}
		if i < last {
			t.Errorf("%q is out of order:\n%s", s, out)
		}
		last = i
	}
	if strings.Contains(out, "INCUDE") {
		t.Errorf("legacy key written back:\n%s", out)
	}
	if !strings.Contains(out, `"3.3"`) {
		t.Errorf("text value not quoted:\n%s", out)
	}

	back, err := ParseRaw(&buf)
	if err != nil {
		t.Fatalf("ParseRaw() of written data: %v", err)
	}
	if len(back.Entries) != len(raw.Entries) {
		t.Fatalf("got %d entries after round trip, want %d", len(back.Entries), len(raw.Entries))
	}
	for _, e := range raw.Entries {
		got := back.Lookup(e.Key)
		if diff := cmp.Diff(e, *got); diff != "" {
			t.Errorf("entry %s changed (-want +got):\n%s", e.Key, diff)
		}
	}
}

func TestRawSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.rpc")

	raw := NewRaw(&Config{Project: ProjectConfig{InternalName: "game"}})
	if err := raw.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	back, err := LoadRaw(path)
	if err != nil {
		t.Fatalf("LoadRaw() error = %v", err)
	}
	if got := back.Lookup(KeyProjectInternalName).Text; got != "game" {
		t.Errorf("PROJECT_INTERNAL_NAME = %q, want game", got)
	}
	if len(back.Entries) != len(Keys()) {
		t.Errorf("got %d entries, want %d", len(back.Entries), len(Keys()))
	}
}

func TestLoadRaw_Missing(t *testing.T) {
	_, err := LoadRaw(filepath.Join(t.TempDir(), "missing.rpc"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadRaw() error = %v, want fs.ErrNotExist", err)
	}
}

func TestParseRaw_LegacyAndCorrectKeyMerged(t *testing.T) {
	const input = `DEPLOY_FLAG_INCUDE_README = 0     # Include README
PROJECT_INTERNAL_NAME = "game"
DEPLOY_FLAG_INCLUDE_README = 0
`
	raw, err := ParseRaw(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(raw.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(raw.Entries))
	}
	if e := raw.Entries[0]; e.Key != KeyDeployIncludeREADME || e.Desc != "Include README" {
		t.Errorf("merged entry = %+v, want first position with the first description", e)
	}

	if err := raw.Set(KeyDeployIncludeREADME, "1"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := raw.Write(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := ParseRaw(&buf)
	if err != nil {
		t.Fatalf("ParseRaw() of written data failed: %v", err)
	}
	cfg := &Config{}
	Sync(back, cfg)
	if !cfg.Deploy.IncludeREADME {
		t.Error("IncludeREADME = false after Set, want true")
	}
	if got := back.Lookup(KeyDeployIncludeREADME).Text; got != "1" {
		t.Errorf("Lookup() = %q, want 1", got)
	}
}

func TestRawSaveLoad_QuotedText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.rpc")

	raw := NewRaw(&Config{Project: ProjectConfig{InternalName: "game"}})
	const desc = `A "fun" game # for everyone`
	if err := raw.Set(KeyProjectDescription, desc); err != nil {
		t.Fatal(err)
	}
	if err := raw.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	back, err := LoadRaw(path)
	if err != nil {
		t.Fatalf("LoadRaw() error = %v", err)
	}
	if got := back.Lookup(KeyProjectDescription).Text; got != desc {
		t.Errorf("PROJECT_DESCRIPTION = %q, want %q", got, desc)
	}
}
