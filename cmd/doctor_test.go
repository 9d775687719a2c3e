package cmd

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/raylib-tools/rpc/internal/appconfig"
	"github.com/raylib-tools/rpc/internal/ui"
)

func fakeLookPath(found ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, f := range found {
			if f == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := ui.Out
	ui.Out = &buf
	t.Cleanup(func() { ui.Out = old })
	return &buf
}

func TestRunDoctor(t *testing.T) {
	s := appconfig.Defaults()
	s.RaylibSrcPath = t.TempDir()
	s.W64DevkitPath = t.TempDir()

	tests := []struct {
		name  string
		tools []string
		want  int
	}{
		{"all tools", []string{"gcc", "make", "emcc", "git"}, 0},
		{"optional missing", []string{"clang", "mingw32-make"}, 0},
		{"compiler missing", []string{"make"}, 1},
		{"nothing", nil, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureOutput(t)
			if got := runDoctor(context.Background(), s, fakeLookPath(tt.tools...)); got != tt.want {
				t.Errorf("runDoctor() = %d, want %d\n%s", got, tt.want, buf.String())
			}
			if !strings.Contains(buf.String(), "template") {
				t.Errorf("template check missing:\n%s", buf.String())
			}
		})
	}
}

func TestRunDoctor_BadPaths(t *testing.T) {
	buf := captureOutput(t)
	s := appconfig.Defaults()
	s.RaylibSrcPath = "/does/not/exist/raylib"
	s.TemplatePath = t.TempDir()

	// Missing raylib sources and an empty template directory.
	if got := runDoctor(context.Background(), s, fakeLookPath("gcc", "make")); got != 2 {
		t.Errorf("runDoctor() = %d, want 2\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "missing: ") {
		t.Errorf("missing template files not listed:\n%s", buf.String())
	}
}

func TestFindTool(t *testing.T) {
	path, ok := findTool([]string{"make", "mingw32-make"}, fakeLookPath("mingw32-make"))
	if !ok || path != "/usr/bin/mingw32-make" {
		t.Errorf("findTool() = %q, %v", path, ok)
	}
	if _, ok := findTool([]string{"emcc"}, func(string) (string, error) { return "", errors.New("no") }); ok {
		t.Error("findTool() found a missing tool")
	}
}
