package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/raylib-tools/rpc/internal/appconfig"
	"github.com/raylib-tools/rpc/internal/ui"
)

var settingsForce bool

// settingsCmd groups the rpc.ini commands.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and edit the rpc.ini user settings",
	Long: `The settings in rpc.ini fill the project properties that are not given
on the command line or in a project file. Use --settings to work on another file.`,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write rpc.ini with the default settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSettingsInit(settingsFile, settingsForce); err != nil {
			fail(err)
		}
		ui.PrintSuccess("Created", settingsFile)
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSettingsShow(ui.Out, settings, settingsFile); err != nil {
			fail(err)
		}
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <KEY>",
	Short: "Print the value of one setting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := settings.Get(args[0])
		if err != nil {
			fail(err)
		}
		fmt.Fprintln(ui.Out, v)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <KEY> <VALUE>",
	Short: "Change one setting and save rpc.ini",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSettingsSet(&settings, settingsFile, args[0], args[1]); err != nil {
			fail(err)
		}
	},
}

func init() {
	settingsInitCmd.Flags().BoolVar(&settingsForce, "force", false, "Overwrite an existing file")

	settingsCmd.AddCommand(settingsInitCmd, settingsShowCmd, settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var errNoSettingsFile = errors.New("no settings file location, pass --settings")

func runSettingsInit(path string, force bool) error {
	if path == "" {
		return errNoSettingsFile
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, fs.ErrExist)
	}
	return appconfig.Defaults().Save(path)
}

func runSettingsShow(w io.Writer, s appconfig.Settings, path string) error {
	if path != "" {
		fmt.Fprintf(w, "# %s\n", path)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, key := range appconfig.Keys() {
		v, err := s.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%q\t# %s\n", key, v, appconfig.Describe(key))
	}
	return tw.Flush()
}

// runSettingsSet stores value under key and writes every setting to path.
func runSettingsSet(s *appconfig.Settings, path, key, value string) error {
	if path == "" {
		return errNoSettingsFile
	}
	if err := s.Set(key, value); err != nil {
		return err
	}
	return s.Save(path)
}
