package appconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/raylib-tools/rpc/internal/config"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope", FileName))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Defaults(), s); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpc", FileName)
	want := Settings{
		LogLevel:      "debug",
		LogPath:       "/tmp/rpc.log",
		TemplatePath:  "/opt/rpc/template",
		DeveloperName: "raysan5",
		DeveloperURL:  "https://www.raylib.com",
		RaylibSrcPath: "/opt/raylib/src",
		W64DevkitPath: "",
		OutputPath:    "/home/ray/games",
		ShowWelcome:   false,
	}
	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("DEFAULT_DEVELOPER_NAME = \"ray\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.DeveloperName != "ray" || !s.ShowWelcome || s.LogLevel != "warn" {
		t.Errorf("Load() = %+v", s)
	}
}

func TestLoad_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("NOT VALID\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for malformed file")
	}
}

func TestApply(t *testing.T) {
	cfg := &config.Config{}
	cfg.Project.DeveloperName = "explicit"

	s := Defaults()
	s.DeveloperName = "from settings"
	s.DeveloperURL = "https://example.com"
	s.Apply(cfg)

	if cfg.Project.DeveloperName != "explicit" {
		t.Errorf("DeveloperName overwritten: %q", cfg.Project.DeveloperName)
	}
	if cfg.Project.DeveloperURL != "https://example.com" {
		t.Errorf("DeveloperURL = %q", cfg.Project.DeveloperURL)
	}
	if cfg.Raylib.SrcPath != "C:/raylib/raylib/src" || cfg.Project.GenerationOutPath != "." {
		t.Errorf("defaults not applied: %+v %+v", cfg.Raylib, cfg.Project)
	}
}

func TestSettingsGetSet(t *testing.T) {
	tests := []struct {
		key, value string
		want       string
		wantErr    error
	}{
		{key: "TEMPLATE_PATH", value: "/opt/template", want: "/opt/template"},
		{key: "log_level", value: "debug", want: "debug"},
		{key: "SHOW_WELCOME", value: "false", want: "0"},
		{key: "SHOW_WELCOME", value: "1", want: "1"},
		{key: "SHOW_WELCOME", value: "sometimes", wantErr: config.ErrInvalidValue},
		{key: "PROJECT_NAME", value: "x", wantErr: ErrUnknownSetting},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s := Defaults()
			err := s.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Set() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, err := s.Get(tt.key)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeys_Described(t *testing.T) {
	if len(Keys()) != 9 {
		t.Errorf("Keys() = %v", Keys())
	}
	for _, k := range Keys() {
		if Describe(k) == "" {
			t.Errorf("%s has no description", k)
		}
	}
}
