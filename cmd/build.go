package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raylib-tools/rpc/internal/config"
	"github.com/raylib-tools/rpc/internal/ui"
)

var (
	buildPlatform string
	buildMode     string
	buildDryRun   bool
)

// buildCmd represents the build command.
var buildCmd = &cobra.Command{
	Use:   "build [project-dir]",
	Short: "Build a generated project using make",
	Long: `Runs 'make' in the src directory of a generated project. PLATFORM, BUILD_MODE
and RAYLIB_SRC_PATH are taken from the project's .rpc file. It requires 'make'
(or 'mingw32-make') to be available in the system PATH.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		if err := runBuild(cmd.Context(), dir, os.Stdout, os.Stderr); err != nil {
			ui.PrintError("Build failed", err.Error())
			exit(1)
		}
		if !buildDryRun {
			ui.PrintSuccess("Build", "completed successfully")
		}
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildPlatform, "platform", "", "Override the target platform (Windows, Linux, macOS, Android, Web)")
	buildCmd.Flags().StringVar(&buildMode, "mode", "", "Override the build mode (DEBUG, RELEASE, DEBUG_DLL, RELEASE_DLL)")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Print the make command without running it")
	rootCmd.AddCommand(buildCmd)
}

// runBuild loads the project file found in dir and runs make in dir/src.
func runBuild(ctx context.Context, dir string, stdout, stderr io.Writer) error {
	rpcPath, err := findProjectFile(dir)
	if err != nil {
		return err
	}
	raw, err := config.LoadRaw(rpcPath)
	if err != nil {
		return err
	}
	cfg := &config.Config{}
	config.Sync(raw, cfg)
	if buildPlatform != "" {
		cfg.Build.TargetPlatform = buildPlatform
	}
	if buildMode != "" {
		cfg.Build.TargetMode = buildMode
	}

	args, err := makeArgs(cfg)
	if err != nil {
		return err
	}

	srcDir := filepath.Join(dir, "src")
	if _, err := os.Stat(filepath.Join(srcDir, "Makefile")); err != nil {
		return fmt.Errorf("no Makefile in %s: generate the project with the makefile build system", srcDir)
	}

	makeExe := "make"
	if _, err := exec.LookPath("make"); err != nil {
		if _, err := exec.LookPath("mingw32-make"); err == nil {
			makeExe = "mingw32-make"
		} else if !buildDryRun {
			return errors.New("make not found in PATH (w64devkit provides it on Windows)")
		}
	}

	if buildDryRun {
		fmt.Fprintf(stdout, "cd %s && %s %s\n", srcDir, makeExe, strings.Join(args, " "))
		return nil
	}

	slog.Debug("Running make", "dir", srcDir, "args", args)
	fmt.Fprintf(stdout, "Building project using '%s'...\n", makeExe)
	c := exec.CommandContext(ctx, makeExe, args...)
	c.Dir = srcDir
	c.Stdout = stdout
	c.Stderr = stderr
	if err := c.Run(); err != nil {
		return err
	}
	return nil
}

// findProjectFile returns the single .rpc file in dir.
func findProjectFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.rpc"))
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no .rpc project file found in %s", dir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("more than one .rpc project file found in %s", dir)
	}
}

var makePlatforms = map[string]string{
	"windows": "PLATFORM_DESKTOP",
	"linux":   "PLATFORM_DESKTOP",
	"macos":   "PLATFORM_DESKTOP",
	"android": "PLATFORM_ANDROID",
	"web":     "PLATFORM_WEB",
}

// makeArgs translates the build settings into make variable assignments.
func makeArgs(cfg *config.Config) ([]string, error) {
	platform := "PLATFORM_DESKTOP"
	if p := cfg.Build.TargetPlatform; p != "" {
		var ok bool
		if platform, ok = makePlatforms[strings.ToLower(p)]; !ok {
			return nil, fmt.Errorf("%w: platform %q (supported: %s)", config.ErrInvalidValue, p, strings.Join(config.SupportedPlatforms, ", "))
		}
	}

	mode, libType := "RELEASE", "STATIC"
	switch strings.ToUpper(cfg.Build.TargetMode) {
	case "", "RELEASE":
	case "DEBUG":
		mode = "DEBUG"
	case "DEBUG_DLL":
		mode, libType = "DEBUG", "SHARED"
	case "RELEASE_DLL":
		libType = "SHARED"
	default:
		return nil, fmt.Errorf("%w: mode %q (supported: %s)", config.ErrInvalidValue, cfg.Build.TargetMode, strings.Join(config.SupportedModes, ", "))
	}

	args := []string{
		"PLATFORM=" + platform,
		"BUILD_MODE=" + mode,
		"RAYLIB_LIBTYPE=" + libType,
	}
	if cfg.Raylib.SrcPath != "" {
		args = append(args, "RAYLIB_SRC_PATH="+cfg.Raylib.SrcPath)
	}
	if strings.EqualFold(cfg.Build.TargetPlatform, "windows") && cfg.Platform.Windows.W64DevkitPath != "" {
		args = append(args, "COMPILER_PATH="+cfg.Platform.Windows.W64DevkitPath+"/bin")
	}
	if platform == "PLATFORM_WEB" {
		h := cfg.Platform.HTML5
		if h.EmsdkPath != "" {
			args = append(args, "EMSDK_PATH="+h.EmsdkPath)
		}
		if h.HeapMemorySize > 0 {
			args = append(args, "BUILD_WEB_HEAP_SIZE="+strconv.Itoa(h.HeapMemorySize)+"MB")
		}
		if h.UseAsyncify {
			args = append(args, "BUILD_WEB_ASYNCIFY=TRUE")
		}
	}
	return args, nil
}
