// Package scaffold generates a raylib project tree from a template directory.
package scaffold

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"

	"github.com/raylib-tools/rpc/internal/config"
	"github.com/raylib-tools/rpc/internal/scan"
)

var (
	// ErrNoSourceFiles is returned when a custom source provides no code file.
	ErrNoSourceFiles = errors.New("no source code files (.c/.cpp) found")
	// ErrOutputExists is returned when the output directory is not empty.
	ErrOutputExists = errors.New("output directory already exists and is not empty")
)

// Options contains optional settings for project generation.
type Options struct {
	// Source selects the code the project starts from.
	Source config.Source
	// BuildSystems lists the build systems to generate. Empty means all.
	BuildSystems []config.BuildSystem
	// Sources is rooted at the custom source directory. Required for SourceCustom.
	// When cfg.Project.SourceFilePaths is set, only those files are copied.
	Sources billy.Filesystem
	// Assets is rooted at the project assets directory. Nil skips the copy.
	Assets billy.Filesystem
	// Force allows generating into a non-empty directory.
	Force bool
	// NoProjectFile skips writing <name>.rpc into the project.
	NoProjectFile bool
	// Progress, if set, is called after each completed step.
	Progress func(step string, done, total int)
}

// Result describes a generated project.
type Result struct {
	// Root is the project directory inside the destination filesystem.
	Root string
	// Files lists the written files relative to Root, in write order.
	Files []string
	// Warnings lists non-fatal problems, such as missing resources.
	Warnings []string
}

type step struct {
	name   string
	system config.BuildSystem
	run    func(g *generator) error
}

var steps = []step{
	{name: "sources", run: (*generator).writeSources},
	{name: "script", system: config.BuildScript, run: (*generator).writeScript},
	{name: "makefile", system: config.BuildMakefile, run: (*generator).writeMakefile},
	{name: "vs2022", system: config.BuildVS2022, run: (*generator).writeVS2022},
	{name: "vscode", system: config.BuildVSCode, run: (*generator).writeVSCode},
	{name: "cmake", system: config.BuildCMake, run: (*generator).writeCMake},
	{name: "github", system: config.BuildGitHub, run: (*generator).writeGitHub},
	{name: "resources", run: (*generator).writeResources},
	{name: "docs", run: (*generator).writeDocs},
	{name: "assets", run: (*generator).writeAssets},
	{name: "project file", run: (*generator).writeProjectFile},
}

// sourceFile is a custom code file to copy into src/.
type sourceFile struct {
	from, to string
}

type generator struct {
	src, dst billy.Filesystem
	cfg      *config.Config
	opts     Options

	name      string
	root      string
	custom    []sourceFile
	codeFiles []string
	code      []string

	generic, vs *strings.Replacer
	result      *Result
}

// Generate writes a new project named after cfg.Project.InternalName into dst,
// reading template files from src. The project directory is the lower case
// internal name inside cfg.Project.GenerationOutPath, resolved against dst.
// A volume name on the output path is ignored.
func Generate(ctx context.Context, src, dst billy.Filesystem, cfg *config.Config, opts Options) (*Result, error) {
	if cfg.Project.InternalName == "" {
		return nil, fmt.Errorf("%w: %s is required", config.ErrInvalidValue, config.KeyProjectInternalName)
	}

	g := &generator{
		src:  src,
		dst:  dst,
		cfg:  cfg,
		opts: opts,
		name: strings.ToLower(cfg.Project.InternalName),
	}
	g.root = path.Join(outDir(cfg.Project.GenerationOutPath), g.name)
	g.result = &Result{Root: dst.Join(dst.Root(), g.root)}

	systems := opts.BuildSystems
	if len(systems) == 0 {
		systems = config.AllBuildSystems
	}
	cfg.Project.SelectedSource = opts.Source
	cfg.Build.RequestedBuildSystems = systems

	if err := g.prepareSources(); err != nil {
		return nil, err
	}
	if err := g.checkOutput(); err != nil {
		return nil, err
	}
	g.generic, g.vs = newReplacers(cfg, g.name, g.codeFiles, strings.ToUpper(uuid.NewString()))

	var run []step
	for _, s := range steps {
		if s.system == "" || slices.Contains(systems, s.system) {
			run = append(run, s)
		}
	}

	for i, s := range run {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slog.Debug("Generating", "step", s.name, "project", g.name)
		if err := s.run(g); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		if opts.Progress != nil {
			opts.Progress(s.name, i+1, len(run))
		}
	}

	return g.result, nil
}

// prepareSources resolves the code files of the project before anything is written.
func (g *generator) prepareSources() error {
	switch g.opts.Source {
	case config.SourceBasic:
		g.codeFiles = []string{g.name + ".c"}
	case config.SourceAdvanced:
		g.codeFiles = append([]string{g.name + ".c"}, screenFiles()...)
	case config.SourceCustom:
		if g.opts.Sources == nil {
			return ErrNoSourceFiles
		}
		files := g.cfg.Project.SourceFilePaths
		if len(files) == 0 {
			var err error
			files, err = scan.SourceFiles(g.opts.Sources, ".")
			if err != nil {
				return fmt.Errorf("failed to scan sources: %w", err)
			}
		}
		byName := make(map[string]string, len(files))
		for _, f := range files {
			to := path.Base(f)
			if prev, ok := byName[to]; ok {
				return fmt.Errorf("%w: sources %s and %s are both copied to src/%s", config.ErrInvalidValue, prev, f, to)
			}
			byName[to] = f
			g.custom = append(g.custom, sourceFile{from: f, to: to})
		}
		for _, sf := range g.custom {
			if len(scan.CodeFiles([]string{sf.to})) > 0 {
				g.codeFiles = append(g.codeFiles, sf.to)
			}
		}
		if len(g.codeFiles) == 0 {
			return ErrNoSourceFiles
		}
		g.cfg.Project.SourceFilePaths = files
	default:
		return fmt.Errorf("%w: source %d", config.ErrInvalidValue, g.opts.Source)
	}
	return nil
}

func outDir(p string) string {
	p = filepath.ToSlash(p)
	return strings.TrimPrefix(p, filepath.VolumeName(p))
}

var screens = []string{"logo", "title", "options", "gameplay", "ending"}

func screenFiles() []string {
	out := make([]string, len(screens))
	for i, s := range screens {
		out[i] = "screen_" + s + ".c"
	}
	return out
}

func (g *generator) checkOutput() error {
	entries, err := g.dst.ReadDir(g.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", g.result.Root, err)
	}
	if len(entries) > 0 && !g.opts.Force {
		return fmt.Errorf("%w: %s", ErrOutputExists, g.result.Root)
	}
	return nil
}

func (g *generator) readTemplate(name string) ([]byte, error) {
	data, err := util.ReadFile(g.src, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return data, nil
}

// write stores data at the project relative path rel.
func (g *generator) write(rel string, data []byte) error {
	full := path.Join(g.root, rel)
	if err := util.WriteFile(g.dst, full, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", full, err)
	}
	g.result.Files = append(g.result.Files, rel)
	return nil
}

// render copies a template file, substituting tokens in text files.
// project_name in the target path is renamed to the project name.
func (g *generator) render(from, to string, r *strings.Replacer) error {
	data, err := g.readTemplate(from)
	if err != nil {
		return err
	}
	if isText(data) {
		data = []byte(r.Replace(string(data)))
	}
	return g.write(strings.ReplaceAll(to, tokenName, g.name), data)
}

func (g *generator) renderAll(r *strings.Replacer, names ...string) error {
	for _, n := range names {
		if err := g.render(n, n, r); err != nil {
			return err
		}
	}
	return nil
}

func isText(data []byte) bool {
	return bytes.IndexByte(data, 0) < 0
}

func (g *generator) writeSources() error {
	switch g.opts.Source {
	case config.SourceBasic:
		if err := g.render("src/project_name.c", "src/project_name.c", g.generic); err != nil {
			return err
		}
	case config.SourceAdvanced:
		if err := g.render("src/raylib_advanced.c", "src/project_name.c", g.generic); err != nil {
			return err
		}
		names := []string{"src/screens.h"}
		for _, f := range screenFiles() {
			names = append(names, "src/"+f)
		}
		if err := g.renderAll(g.generic, names...); err != nil {
			return err
		}
	case config.SourceCustom:
		for _, sf := range g.custom {
			data, err := util.ReadFile(g.opts.Sources, sf.from)
			if err != nil {
				return fmt.Errorf("failed to read source %s: %w", sf.from, err)
			}
			if err := g.write(path.Join("src", sf.to), data); err != nil {
				return err
			}
			g.code = append(g.code, string(data))
		}
		return nil
	}

	for _, f := range g.codeFiles {
		data, err := util.ReadFile(g.dst, path.Join(g.root, "src", f))
		if err != nil {
			return err
		}
		g.code = append(g.code, string(data))
	}
	return nil
}

func (g *generator) writeScript() error {
	return g.renderAll(g.generic, "projects/scripts/build.bat")
}

func (g *generator) writeMakefile() error {
	return g.renderAll(g.generic, "src/Makefile")
}

func (g *generator) writeVS2022() error {
	return g.renderAll(g.vs,
		"projects/VS2022/project_name.sln",
		"projects/VS2022/project_name/project_name.vcxproj",
		"projects/VS2022/raylib/raylib.vcxproj",
	)
}

func (g *generator) writeVSCode() error {
	return g.renderAll(g.generic,
		"projects/VSCode/.vscode/launch.json",
		"projects/VSCode/.vscode/c_cpp_properties.json",
		"projects/VSCode/.vscode/tasks.json",
		"projects/VSCode/.vscode/settings.json",
		"projects/VSCode/main.code-workspace",
		"projects/VSCode/README.md",
	)
}

func (g *generator) writeCMake() error {
	return g.renderAll(g.generic, "projects/CMake/CMakeLists.txt")
}

func (g *generator) writeGitHub() error {
	return g.renderAll(g.generic,
		".github/workflows/windows.yml",
		".github/workflows/linux.yml",
		".github/workflows/macos.yml",
		".github/workflows/webassembly.yml",
	)
}

const (
	iconFile = "src/project_name.ico"
	rcFile   = "src/project_name.rc"
)

func (g *generator) writeResources() error {
	hasIcon := true
	for _, icon := range []string{iconFile, "src/project_name.icns"} {
		if _, err := g.src.Stat(icon); err != nil {
			slog.Warn("Template icon not found, skipping", "file", icon)
			if icon == iconFile {
				hasIcon = false
			}
			continue
		}
		if err := g.render(icon, icon, g.generic); err != nil {
			return err
		}
	}

	rc, err := g.readTemplate(rcFile)
	if err != nil {
		return err
	}
	text := string(rc)
	if !hasIcon {
		// windres fails on a missing icon file.
		text = dropIconLines(text)
	}
	if err := g.write(strings.ReplaceAll(rcFile, tokenName, g.name), []byte(g.generic.Replace(text))); err != nil {
		return err
	}
	return g.renderAll(g.generic, "src/Info.plist", "src/minshell.html")
}

// dropIconLines removes ICON resource statements from a Windows resource script.
func dropIconLines(rc string) string {
	lines := strings.SplitAfter(rc, "\n")
	out := lines[:0]
	for _, l := range lines {
		if f := strings.Fields(l); len(f) >= 2 && f[1] == "ICON" {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "")
}

func (g *generator) writeDocs() error {
	return g.renderAll(g.generic, "README.md", "LICENSE", "CONVENTIONS.md", ".gitignore")
}

func (g *generator) writeAssets() error {
	var assets []string
	if g.opts.Assets != nil {
		var err error
		assets, err = scan.AssetFiles(g.opts.Assets, ".")
		if err != nil {
			return fmt.Errorf("failed to scan assets: %w", err)
		}
		out := g.cfg.Project.AssetsOutPath
		if out == "" {
			out = "src/resources"
		}
		for _, a := range assets {
			if err := g.copyAsset(a, path.Join(out, a)); err != nil {
				return err
			}
		}
		g.cfg.Project.AssetFilePaths = assets
	}

	var refs []string
	for _, code := range g.code {
		for _, r := range scan.ResourceRefs(code) {
			if !slices.Contains(refs, r) {
				refs = append(refs, r)
			}
		}
	}
	for _, m := range scan.MissingResources(refs, assets) {
		g.result.Warnings = append(g.result.Warnings, fmt.Sprintf("resource %q is referenced in code but not found in assets", m))
	}
	return nil
}

func (g *generator) copyAsset(from, to string) error {
	in, err := g.opts.Assets.Open(from)
	if err != nil {
		return fmt.Errorf("failed to open asset %s: %w", from, err)
	}
	defer in.Close()

	full := path.Join(g.root, to)
	if err := g.dst.MkdirAll(path.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", path.Dir(full), err)
	}
	out, err := g.dst.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", full, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", full, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", full, err)
	}
	g.result.Files = append(g.result.Files, to)
	return nil
}

func (g *generator) writeProjectFile() error {
	if g.opts.NoProjectFile {
		return nil
	}
	var buf bytes.Buffer
	if err := config.NewRaw(g.cfg).Write(&buf); err != nil {
		return err
	}
	return g.write(g.name+".rpc", buf.Bytes())
}
