package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/raylib-tools/rpc/internal/appconfig"
	"github.com/raylib-tools/rpc/internal/config"
	"github.com/raylib-tools/rpc/internal/scaffold"
	"github.com/raylib-tools/rpc/internal/templates"
	"github.com/raylib-tools/rpc/internal/ui"
)

// newOptions holds the flags of the new command.
type newOptions struct {
	name        string
	srcFiles    []string
	product     string
	desc        string
	dev         string
	devWeb      string
	raylib      string
	comp        string
	out         string
	configFile  string
	template    string
	source      string
	systems     string
	interactive bool
	force       bool
}

var newOpts newOptions

// newCmd represents the new command.
var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new raylib project",
	Long: `Creates a new raylib project from the template. Values are taken from the
flags first, then from the project file given with --config, then from rpc.ini.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			newOpts.name = args[0]
		}
		var driver ui.Driver
		if newOpts.interactive {
			driver = ui.SurveyDriver{}
		}

		cfg, opts, err := resolveNew(cmd.Context(), newOpts, settings, driver)
		if err != nil {
			fail(err)
		}

		var res *scaffold.Result
		err = ui.RunSpinner("Generating project...", func(s *ui.Spinner) error {
			opts.Progress = func(step string, done, total int) {
				s.Update(fmt.Sprintf("Generating project... %s (%d/%d)", step, done, total))
			}
			var err error
			res, err = runNew(cmd.Context(), newOpts, settings, cfg, opts)
			return err
		})
		if err != nil {
			fail(err)
		}
		printResult(res)
		if err := welcome(ui.Out, &settings, settingsFile); err != nil {
			slog.Warn("Failed to save settings", "error", err)
		}
	},
}

func init() {
	f := newCmd.Flags()
	f.StringSliceVarP(&newOpts.srcFiles, "src", "i", nil, "Source code files to include (comma separated)")
	f.StringVarP(&newOpts.product, "product", "p", "", "Product commercial name")
	f.StringVar(&newOpts.desc, "desc", "", "Product description")
	f.StringVar(&newOpts.dev, "dev", "", "Developer name")
	f.StringVar(&newOpts.devWeb, "devweb", "", "Developer webpage")
	f.StringVar(&newOpts.raylib, "raylib", "", "raylib source path")
	f.StringVar(&newOpts.comp, "comp", "", "w64devkit compiler path")
	f.StringVarP(&newOpts.out, "out", "o", "", "Output directory")
	f.StringVarP(&newOpts.configFile, "config", "c", "", "Load project properties from a .rpc file")
	f.StringVar(&newOpts.template, "template", "", "Template directory or git repository URL")
	f.StringVar(&newOpts.source, "source", "", "Project source: basic, advanced or custom")
	f.StringVar(&newOpts.systems, "systems", "", "Build systems to generate (comma separated, default all)")
	f.BoolVar(&newOpts.interactive, "interactive", false, "Ask for project properties")
	f.BoolVar(&newOpts.force, "force", false, "Generate into a non-empty directory")
	rootCmd.AddCommand(newCmd)
}

// resolveNew builds the project configuration and generation options from the
// flags, the optional project file and the settings. A nil driver disables the
// interactive prompts.
func resolveNew(ctx context.Context, o newOptions, s appconfig.Settings, driver ui.Driver) (*config.Config, scaffold.Options, error) {
	cfg := &config.Config{}
	if o.configFile != "" {
		raw, err := config.LoadRaw(o.configFile)
		if err != nil {
			return nil, scaffold.Options{}, err
		}
		config.Sync(raw, cfg)
	}
	applyNewFlags(cfg, o)
	s.Apply(cfg)

	source := config.SourceBasic
	switch {
	case o.source != "":
		var err error
		if source, err = config.ParseSource(o.source); err != nil {
			return nil, scaffold.Options{}, err
		}
	case len(o.srcFiles) > 0:
		source = config.SourceCustom
	}
	systems, err := config.ParseBuildSystems(o.systems)
	if err != nil {
		return nil, scaffold.Options{}, err
	}

	if driver != nil {
		if source, err = ui.SelectSource(ctx, driver, source); err != nil {
			return nil, scaffold.Options{}, err
		}
		if systems, err = ui.SelectBuildSystems(ctx, driver, systems); err != nil {
			return nil, scaffold.Options{}, err
		}
		raw := config.NewRaw(cfg)
		form := &ui.Form{Driver: driver, CheckPaths: true}
		if err := form.EditCategory(ctx, raw, config.CategoryProject); err != nil {
			return nil, scaffold.Options{}, err
		}
		config.Sync(raw, cfg)
	}

	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, scaffold.Options{}, err
	}

	opts := scaffold.Options{
		Source:       source,
		BuildSystems: systems,
		Force:        o.force,
	}
	if len(o.srcFiles) > 0 {
		root, rels, err := splitSources(o.srcFiles)
		if err != nil {
			return nil, scaffold.Options{}, err
		}
		cfg.Project.SourceFilePaths = rels
		opts.Sources = osfs.New(root)
	} else if source == config.SourceCustom && cfg.Project.SourcePath != "" {
		opts.Sources = osfs.New(cfg.Project.SourcePath)
	}
	if cfg.Project.AssetsPath != "" {
		if info, err := os.Stat(cfg.Project.AssetsPath); err != nil || !info.IsDir() {
			return nil, scaffold.Options{}, fmt.Errorf("assets path %s is not a directory", cfg.Project.AssetsPath)
		}
		opts.Assets = osfs.New(cfg.Project.AssetsPath)
	}

	return cfg, opts, nil
}

// runNew opens the template and generates the project described by cfg.
func runNew(ctx context.Context, o newOptions, s appconfig.Settings, cfg *config.Config, opts scaffold.Options) (*scaffold.Result, error) {
	location := o.template
	if location == "" {
		location = s.TemplatePath
	}
	tfs, err := templates.Open(ctx, location)
	if err != nil {
		return nil, err
	}

	out, err := filepath.Abs(cfg.Project.GenerationOutPath)
	if err != nil {
		return nil, fmt.Errorf("invalid output directory: %w", err)
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	cfg.Project.GenerationOutPath = out
	return scaffold.Generate(ctx, tfs, osfs.New(filepath.VolumeName(out)+string(filepath.Separator)), cfg, opts)
}

// applyNewFlags copies the non-empty flag values into cfg.
func applyNewFlags(cfg *config.Config, o newOptions) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Project.InternalName, o.name)
	set(&cfg.Project.CommercialName, o.product)
	set(&cfg.Project.Description, o.desc)
	set(&cfg.Project.DeveloperName, o.dev)
	set(&cfg.Project.DeveloperURL, o.devWeb)
	set(&cfg.Raylib.SrcPath, o.raylib)
	set(&cfg.Platform.Windows.W64DevkitPath, o.comp)
	set(&cfg.Project.GenerationOutPath, o.out)
}

// splitSources returns the deepest directory holding every file and the
// file paths relative to it, slash separated.
func splitSources(files []string) (string, []string, error) {
	abs := make([]string, len(files))
	for i, f := range files {
		a, err := filepath.Abs(f)
		if err != nil {
			return "", nil, err
		}
		if _, err := os.Stat(a); err != nil {
			return "", nil, fmt.Errorf("source file: %w", err)
		}
		abs[i] = a
	}

	root := filepath.Dir(abs[0])
	for _, a := range abs[1:] {
		for !within(root, a) {
			parent := filepath.Dir(root)
			if parent == root {
				break
			}
			root = parent
		}
	}

	rels := make([]string, len(abs))
	for i, a := range abs {
		rel, err := filepath.Rel(root, a)
		if err != nil {
			return "", nil, err
		}
		rels[i] = filepath.ToSlash(rel)
	}
	return root, rels, nil
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func printResult(res *scaffold.Result) {
	ui.PrintHeader("Project generated")
	ui.PrintSuccess("Location", res.Root)
	ui.PrintSuccess("Files", fmt.Sprintf("%d written", len(res.Files)))
	for _, w := range res.Warnings {
		ui.PrintWarning("Warning", w)
	}
	fmt.Fprintln(ui.Out, "Next steps:")
	fmt.Fprintf(ui.Out, "  cd %s\n", res.Root)
	fmt.Fprintln(ui.Out, "  rpc build      # (Run this to build the project with make)")
}

// welcome prints the first-run message when the settings ask for it, then
// turns it off in the settings file at path.
func welcome(w io.Writer, s *appconfig.Settings, path string) error {
	if !s.ShowWelcome {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Welcome to rpc, the raylib project creator.")
	fmt.Fprintln(w, "  rpc settings set DEFAULT_DEVELOPER_NAME <name>   # (Default developer for new projects)")
	fmt.Fprintln(w, "  rpc settings set DEFAULT_RAYLIB_SRC_PATH <dir>   # (raylib sources used by the build systems)")
	fmt.Fprintln(w, "  rpc doctor                                       # (Check compilers and paths)")
	fmt.Fprintln(w, "This message is shown once. Turn it back on with 'rpc settings set SHOW_WELCOME 1'.")

	s.ShowWelcome = false
	if path == "" {
		return nil
	}
	return s.Save(path)
}
