package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/raylib-tools/rpc/internal/appconfig"
	"github.com/raylib-tools/rpc/internal/config"
)

func TestMakeArgs(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(cfg *config.Config)
		want    []string
		wantErr bool
	}{
		{
			name: "defaults",
			want: []string{"PLATFORM=PLATFORM_DESKTOP", "BUILD_MODE=RELEASE", "RAYLIB_LIBTYPE=STATIC"},
		},
		{
			name: "windows debug dll",
			setup: func(cfg *config.Config) {
				cfg.Build.TargetPlatform = "Windows"
				cfg.Build.TargetMode = "DEBUG_DLL"
				cfg.Raylib.SrcPath = "C:/raylib/raylib/src"
				cfg.Platform.Windows.W64DevkitPath = "C:/raylib/w64devkit"
			},
			want: []string{
				"PLATFORM=PLATFORM_DESKTOP", "BUILD_MODE=DEBUG", "RAYLIB_LIBTYPE=SHARED",
				"RAYLIB_SRC_PATH=C:/raylib/raylib/src", "COMPILER_PATH=C:/raylib/w64devkit/bin",
			},
		},
		{
			name: "web",
			setup: func(cfg *config.Config) {
				cfg.Build.TargetPlatform = "web"
				cfg.Platform.Windows.W64DevkitPath = "C:/raylib/w64devkit"
				cfg.Platform.HTML5.EmsdkPath = "/opt/emsdk"
				cfg.Platform.HTML5.HeapMemorySize = 256
				cfg.Platform.HTML5.UseAsyncify = true
			},
			want: []string{
				"PLATFORM=PLATFORM_WEB", "BUILD_MODE=RELEASE", "RAYLIB_LIBTYPE=STATIC",
				"EMSDK_PATH=/opt/emsdk", "BUILD_WEB_HEAP_SIZE=256MB", "BUILD_WEB_ASYNCIFY=TRUE",
			},
		},
		{
			name:    "unknown platform",
			setup:   func(cfg *config.Config) { cfg.Build.TargetPlatform = "Amiga" },
			wantErr: true,
		},
		{
			name:    "unknown mode",
			setup:   func(cfg *config.Config) { cfg.Build.TargetMode = "PROFILE" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			if tt.setup != nil {
				tt.setup(cfg)
			}
			got, err := makeArgs(cfg)
			if tt.wantErr {
				if !errors.Is(err, config.ErrInvalidValue) {
					t.Errorf("makeArgs() error = %v, want ErrInvalidValue", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("makeArgs() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("makeArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindProjectFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := findProjectFile(dir); err == nil {
		t.Error("expected an error for a directory without .rpc file")
	}

	one := filepath.Join(dir, "one.rpc")
	if err := os.WriteFile(one, nil, 0644); err != nil {
		t.Fatal(err)
	}
	got, err := findProjectFile(dir)
	if err != nil || got != one {
		t.Errorf("findProjectFile() = %q, %v", got, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "two.rpc"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := findProjectFile(dir); err == nil {
		t.Error("expected an error for two .rpc files")
	}
}

func TestRunBuild_DryRun(t *testing.T) {
	buildDryRun = true
	defer func() { buildDryRun = false }()

	res := generate(t, newOptions{name: "dry_game", out: t.TempDir(), systems: "makefile"}, appconfig.Defaults(), nil)

	var stdout bytes.Buffer
	if err := runBuild(context.Background(), res.Root, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("runBuild failed: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "PLATFORM=PLATFORM_DESKTOP") || !strings.Contains(out, "RAYLIB_SRC_PATH=C:/raylib/raylib/src") {
		t.Errorf("unexpected command: %q", out)
	}
	if !strings.Contains(out, filepath.Join(res.Root, "src")) {
		t.Errorf("command does not run in src: %q", out)
	}
}

func TestRunBuild_NoMakefile(t *testing.T) {
	buildDryRun = true
	defer func() { buildDryRun = false }()

	res := generate(t, newOptions{name: "vs_only", out: t.TempDir(), systems: "vs2022"}, appconfig.Defaults(), nil)
	if err := runBuild(context.Background(), res.Root, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Error("expected an error for a project without Makefile")
	}
}
