package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raylib-tools/rpc/internal/appconfig"
	"github.com/raylib-tools/rpc/internal/templates"
	"github.com/raylib-tools/rpc/internal/ui"
)

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check for necessary tools and configured paths",
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintHeader("Checking environment...")
		if problems := runDoctor(cmd.Context(), settings, exec.LookPath); problems > 0 {
			fmt.Fprintf(ui.Out, "\n%d problem(s) found.\n", problems)
			exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// tool is an executable looked up in PATH.
type tool struct {
	label    string
	names    []string
	required bool
	hint     string
}

var tools = []tool{
	{label: "C compiler", names: []string{"gcc", "clang", "cc"}, required: true, hint: "install w64devkit (Windows) or your system GCC"},
	{label: "make", names: []string{"make", "mingw32-make"}, required: true, hint: "w64devkit provides make on Windows"},
	{label: "emcc", names: []string{"emcc"}, hint: "only needed for Web builds, install emsdk"},
	{label: "git", names: []string{"git"}, hint: "only needed to version generated projects"},
}

// runDoctor prints one line per check and returns the number of failed
// required checks.
func runDoctor(ctx context.Context, s appconfig.Settings, lookPath func(string) (string, error)) int {
	problems := 0
	for _, t := range tools {
		if path, ok := findTool(t.names, lookPath); ok {
			ui.PrintSuccess(t.label, path)
			continue
		}
		if t.required {
			problems++
			ui.PrintError(t.label, "NOT FOUND: "+t.hint)
		} else {
			ui.PrintWarning(t.label, "not found: "+t.hint)
		}
	}

	paths := []struct {
		label, path string
		windows     bool
	}{
		{"raylib src", s.RaylibSrcPath, false},
		{"w64devkit", s.W64DevkitPath, true},
	}
	for _, p := range paths {
		if p.windows && runtime.GOOS != "windows" {
			continue
		}
		if !checkDir(p.label, p.path) {
			problems++
		}
	}

	problems += checkTemplate(ctx, ui.Out, s.TemplatePath)
	return problems
}

func findTool(names []string, lookPath func(string) (string, error)) (string, bool) {
	for _, name := range names {
		if path, err := lookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

func checkDir(label, path string) bool {
	if path == "" {
		ui.PrintWarning(label, "not configured in "+appconfig.FileName)
		return true
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		ui.PrintError(label, path+" does not exist")
		return false
	}
	ui.PrintSuccess(label, path)
	return true
}

// checkTemplate reports the template location and the required files it lacks.
func checkTemplate(ctx context.Context, w io.Writer, location string) int {
	name := location
	if name == "" {
		name = "embedded"
	}
	tfs, err := templates.Open(ctx, location)
	if err != nil {
		ui.PrintError("template", err.Error())
		return 1
	}
	missing := templates.Missing(tfs)
	if len(missing) > 0 {
		ui.PrintError("template", name+" is incomplete")
		fmt.Fprintf(w, "      missing: %s\n", strings.Join(missing, ", "))
		return 1
	}
	ui.PrintSuccess("template", name)
	return 0
}
