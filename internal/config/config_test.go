package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate_TargetValues(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *Config)
		wantError string
	}{
		{
			name:      "empty targets",
			modify:    func(c *Config) {},
			wantError: "",
		},
		{
			name: "supported targets, any case",
			modify: func(c *Config) {
				c.Build.TargetPlatform = "macos"
				c.Build.TargetArchitecture = "x86-64"
				c.Build.TargetMode = "Release"
			},
			wantError: "",
		},
		{
			name:      "unsupported platform",
			modify:    func(c *Config) { c.Build.TargetPlatform = "Amiga" },
			wantError: "BUILD_TARGET_PLATFORM \"Amiga\"",
		},
		{
			name:      "unsupported architecture",
			modify:    func(c *Config) { c.Build.TargetArchitecture = "mips" },
			wantError: "BUILD_TARGET_ARCHITECTURE \"mips\"",
		},
		{
			name:      "unsupported mode",
			modify:    func(c *Config) { c.Build.TargetMode = "PROFILE" },
			wantError: "BUILD_TARGET_MODE \"PROFILE\"",
		},
		{
			name:      "negative heap size",
			modify:    func(c *Config) { c.Platform.HTML5.HeapMemorySize = -1 },
			wantError: "PLATFORM_HTML5_HEAP_MEMORY_SIZE must not be negative",
		},
		{
			name:      "negative android sdk",
			modify:    func(c *Config) { c.Platform.Android.TargetSDKVersion = -30 },
			wantError: "PLATFORM_ANDROID_TARGET_SDK_VERSION must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Project: ProjectConfig{
					InternalName: "TestProject",
				},
			}
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantError != "" {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantError)
				} else if !strings.Contains(err.Error(), tt.wantError) {
					t.Errorf("Validate() error = %v, want substring %q", err, tt.wantError)
				} else if !errors.Is(err, ErrInvalidValue) {
					t.Errorf("Validate() error = %v, want ErrInvalidValue", err)
				}
			} else {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			}
		})
	}
}

func TestValidate_ProjectName(t *testing.T) {
	tests := []struct {
		name      string
		projName  string
		wantError string
	}{
		{
			name:      "valid name",
			projName:  "MyProject_v1",
			wantError: "",
		},
		{
			name:      "valid name with hyphens",
			projName:  "my-awesome-project",
			wantError: "",
		},
		{
			name:      "invalid space",
			projName:  "My Project",
			wantError: "must contain only letters, digits, '_' or '-'",
		},
		{
			name:      "invalid slash",
			projName:  "My/Project",
			wantError: "must contain only letters, digits, '_' or '-'",
		},
		{
			name:      "invalid dot",
			projName:  "My.Project",
			wantError: "must contain only letters, digits, '_' or '-'",
		},
		{
			name:      "empty name",
			projName:  "",
			wantError: "PROJECT_INTERNAL_NAME is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Project: ProjectConfig{
					InternalName: tt.projName,
				},
			}

			err := Validate(cfg)
			if tt.wantError != "" {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantError)
				} else if !strings.Contains(err.Error(), tt.wantError) {
					t.Errorf("Validate() error = %v, want substring %q", err, tt.wantError)
				}
			} else {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	defer func() { now = time.Now }()

	cfg := &Config{Project: ProjectConfig{CommercialName: "Space Shooter", DeveloperName: "raysan5"}}
	ApplyDefaults(cfg)

	p := cfg.Project
	if p.Year != 2025 {
		t.Errorf("Year = %d, want 2025", p.Year)
	}
	if p.InternalName != "space_shooter" {
		t.Errorf("InternalName = %q, want space_shooter", p.InternalName)
	}
	if p.RepoName != "space-shooter" {
		t.Errorf("RepoName = %q, want space-shooter", p.RepoName)
	}
	if p.ShortName != "ss" {
		t.Errorf("ShortName = %q, want ss", p.ShortName)
	}
	if p.Version != "1.0" || p.AssetsOutPath != "src/resources" || p.PublisherName != "raysan5" {
		t.Errorf("unexpected project defaults: %+v", p)
	}
	if cfg.Build.OutputPath != "build" || cfg.Raylib.Version != DefaultRaylibVersion {
		t.Errorf("unexpected build/raylib defaults: %+v %+v", cfg.Build, cfg.Raylib)
	}
	if cfg.Platform.MacOS.BundleName != "Space Shooter" {
		t.Errorf("BundleName = %q, want Space Shooter", cfg.Platform.MacOS.BundleName)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{Project: ProjectConfig{InternalName: "rocket", Version: "2.1", RepoName: "rocket-game"}}
	ApplyDefaults(cfg)

	if cfg.Project.CommercialName != "rocket" {
		t.Errorf("CommercialName = %q, want rocket", cfg.Project.CommercialName)
	}
	if cfg.Project.Version != "2.1" || cfg.Project.RepoName != "rocket-game" {
		t.Errorf("explicit values overwritten: %+v", cfg.Project)
	}
	if cfg.Project.ShortName != "rocket" {
		t.Errorf("ShortName = %q, want rocket", cfg.Project.ShortName)
	}
}

func TestParseBuildSystems(t *testing.T) {
	tests := []struct {
		in      string
		want    []BuildSystem
		wantErr bool
	}{
		{in: "", want: AllBuildSystems},
		{in: "makefile, VSCode,makefile", want: []BuildSystem{BuildMakefile, BuildVSCode}},
		{in: "cmake", want: []BuildSystem{BuildCMake}},
		{in: "xcode", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBuildSystems(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidValue) {
					t.Errorf("ParseBuildSystems(%q) error = %v, want ErrInvalidValue", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBuildSystems(%q) unexpected error: %v", tt.in, err)
			}
			if strings.Join(toStrings(got), ",") != strings.Join(toStrings(tt.want), ",") {
				t.Errorf("ParseBuildSystems(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func toStrings(systems []BuildSystem) []string {
	out := make([]string, len(systems))
	for i, s := range systems {
		out[i] = string(s)
	}
	return out
}

func TestParseSource(t *testing.T) {
	for _, s := range []Source{SourceBasic, SourceAdvanced, SourceCustom} {
		got, err := ParseSource(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSource(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseSource("fancy"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("ParseSource(fancy) error = %v, want ErrInvalidValue", err)
	}
}
