package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/raylib-tools/rpc/internal/appconfig"
	"github.com/raylib-tools/rpc/internal/ui"
	"github.com/raylib-tools/rpc/pkg/log"
)

var (
	logLevel     string
	logFile      string
	settingsPath string

	// settingsFile is the rpc.ini path in use, empty when none could be resolved.
	settingsFile string

	// settings holds the user defaults loaded before every command.
	settings = appconfig.Defaults()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rpc",
	Short: "A tool to create raylib projects with ready to use build systems",
	Long: `rpc creates new raylib C projects from a template: source code, Makefile,
VSCode and VS2022 projects, CMake, build scripts and GitHub Actions workflows.
Project properties are stored in a .rpc file next to the sources.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		exit(1)
	}
	log.Close()
}

// exit flushes the log file and terminates the process.
func exit(code int) {
	log.Close()
	os.Exit(code)
}

// fail reports err and exits with status 1.
func fail(err error) {
	ui.PrintError("Error", err.Error())
	exit(1)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from rpc.ini)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Path to rpc.ini (default is the user config directory)")
}

// loadSettings reads rpc.ini and configures logging. Flags win over the file.
func loadSettings(cmd *cobra.Command, args []string) error {
	path := settingsPath
	if path == "" {
		p, err := appconfig.DefaultPath()
		if err != nil {
			slog.Warn("Using default settings", "error", err)
		}
		path = p
	}
	if path != "" {
		s, err := appconfig.Load(path)
		if err != nil {
			return err
		}
		settings = s
	}
	settingsFile = path

	level := settings.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	file := settings.LogPath
	if logFile != "" {
		file = logFile
	}
	if err := log.Init(file, level); err != nil {
		return err
	}
	slog.Debug("Settings loaded", "path", path)
	return nil
}
