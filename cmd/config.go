package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/raylib-tools/rpc/internal/appconfig"
	"github.com/raylib-tools/rpc/internal/config"
	"github.com/raylib-tools/rpc/internal/ui"
)

var (
	configForce    bool
	configYAML     bool
	configCategory string
)

// configCmd groups the project file commands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit .rpc project files",
}

var configInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Create a project file with every known key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runConfigInit(args[0], settings, configForce); err != nil {
			fail(err)
		}
		ui.PrintSuccess("Created", args[0])
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a project file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runConfigShow(ui.Out, args[0], configYAML, configCategory); err != nil {
			fail(err)
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <file> <KEY>",
	Short: "Print the value of one key",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := runConfigGet(args[0], args[1])
		if err != nil {
			fail(err)
		}
		fmt.Fprintln(ui.Out, v)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <file> <KEY> <VALUE>",
	Short: "Change the value of one key",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runConfigSet(args[0], args[1], args[2]); err != nil {
			fail(err)
		}
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys a project file can hold",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := printKeys(ui.Out, configCategory); err != nil {
			fail(err)
		}
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit a project file interactively",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runConfigEdit(cmd.Context(), args[0], ui.NewForm(), configCategory); err != nil {
			if errors.Is(err, ui.ErrAborted) {
				ui.PrintWarning("Aborted", "no changes saved")
				return
			}
			fail(err)
		}
		ui.PrintSuccess("Saved", args[0])
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
	configShowCmd.Flags().BoolVar(&configYAML, "yaml", false, "Print the typed configuration as YAML")
	configShowCmd.Flags().StringVar(&configCategory, "category", "", "Only print one category (PROJECT, BUILD, PLATFORM, DEPLOY, IMAGERY, RAYLIB)")
	configEditCmd.Flags().StringVar(&configCategory, "category", "", "Only edit one category")
	configKeysCmd.Flags().StringVar(&configCategory, "category", "", "Only list one category")

	configCmd.AddCommand(configInitCmd, configShowCmd, configGetCmd, configSetCmd, configKeysCmd, configEditCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigInit writes a project file named after path with defaults applied.
func runConfigInit(path string, s appconfig.Settings, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, fs.ErrExist)
	}

	cfg := &config.Config{}
	cfg.Project.InternalName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s.Apply(cfg)
	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	return config.NewRaw(cfg).Save(path)
}

func runConfigShow(w io.Writer, path string, asYAML bool, category string) error {
	raw, err := config.LoadRaw(path)
	if err != nil {
		return err
	}

	if asYAML {
		cfg := &config.Config{}
		config.Sync(raw, cfg)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}

	if category != "" {
		cat, err := config.ParseCategory(category)
		if err != nil {
			return err
		}
		raw = &config.Raw{Entries: raw.Filter(cat)}
	}
	return raw.Write(w)
}

func runConfigGet(path, key string) (string, error) {
	raw, err := config.LoadRaw(path)
	if err != nil {
		return "", err
	}
	e := raw.Lookup(key)
	if e == nil {
		return "", fmt.Errorf("%w: %s", config.ErrUnknownKey, key)
	}
	return e.Text, nil
}

// runConfigSet stores value under key. Known keys missing from the file are added.
func runConfigSet(path, key, value string) error {
	raw, err := config.LoadRaw(path)
	if err != nil {
		return err
	}
	if raw.Lookup(key) == nil {
		if err := raw.Add(key); err != nil {
			return err
		}
	}
	if err := raw.Set(key, value); err != nil {
		return err
	}
	return raw.Save(path)
}

func runConfigEdit(ctx context.Context, path string, form *ui.Form, category string) error {
	raw, err := config.LoadRaw(path)
	if err != nil {
		return err
	}

	if category != "" {
		var cat config.Category
		if cat, err = config.ParseCategory(category); err != nil {
			return err
		}
		err = form.EditCategory(ctx, raw, cat)
	} else {
		err = form.Edit(ctx, raw)
	}
	if err != nil {
		return err
	}
	return raw.Save(path)
}

// printKeys writes every known key of category, or of all categories when it
// is empty, with its description.
func printKeys(w io.Writer, category string) error {
	var (
		cat config.Category
		err error
	)
	if category != "" {
		if cat, err = config.ParseCategory(category); err != nil {
			return err
		}
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, key := range config.Keys() {
		if category != "" && config.NewEntry(key, "", "", false).Category != cat {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", key, config.Describe(key))
	}
	return tw.Flush()
}
