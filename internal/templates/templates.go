// Package templates provides the template directory new projects are generated from.
package templates

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/memory"
)

//go:embed all:files
var filesFS embed.FS

// Required lists the template files generation depends on. Icons are optional.
var Required = []string{
	"src/project_name.c",
	"src/raylib_advanced.c",
	"src/screens.h",
	"src/screen_logo.c",
	"src/screen_title.c",
	"src/screen_options.c",
	"src/screen_gameplay.c",
	"src/screen_ending.c",
	"src/Makefile",
	"src/project_name.rc",
	"src/Info.plist",
	"src/minshell.html",
	"projects/scripts/build.bat",
	"projects/VS2022/project_name.sln",
	"projects/VS2022/project_name/project_name.vcxproj",
	"projects/VS2022/raylib/raylib.vcxproj",
	"projects/VSCode/.vscode/launch.json",
	"projects/VSCode/.vscode/c_cpp_properties.json",
	"projects/VSCode/.vscode/tasks.json",
	"projects/VSCode/.vscode/settings.json",
	"projects/VSCode/main.code-workspace",
	"projects/VSCode/README.md",
	"projects/CMake/CMakeLists.txt",
	".github/workflows/windows.yml",
	".github/workflows/linux.yml",
	".github/workflows/macos.yml",
	".github/workflows/webassembly.yml",
	"README.md",
	"LICENSE",
	"CONVENTIONS.md",
	".gitignore",
}

// Default loads the embedded template into an in-memory filesystem.
func Default() (billy.Filesystem, error) {
	mfs := memfs.New()
	err := fs.WalkDir(filesFS, "files", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, "files"), "/")
		if rel == "" {
			return nil
		}
		if d.IsDir() {
			return mfs.MkdirAll(rel, 0755)
		}
		data, err := filesFS.ReadFile(p)
		if err != nil {
			return err
		}
		return util.WriteFile(mfs, rel, data, 0644)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded template: %w", err)
	}
	return mfs, nil
}

// Open returns the template found at location: the embedded default when
// location is empty, a local directory, or a git repository URL cloned in memory.
func Open(ctx context.Context, location string) (billy.Filesystem, error) {
	if location == "" {
		return Default()
	}

	if info, err := os.Stat(location); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("template %s is not a directory", location)
		}
		slog.Debug("Using template directory", "path", location)
		return osfs.New(location), nil
	}

	if !isRepoURL(location) {
		return nil, fmt.Errorf("template %s: %w", location, fs.ErrNotExist)
	}

	slog.Debug("Cloning template repository", "url", location)
	mfs := memfs.New()
	_, err := git.CloneContext(ctx, memory.NewStorage(), mfs, &git.CloneOptions{
		URL:   location,
		Depth: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clone template %s: %w", location, err)
	}
	return mfs, nil
}

func isRepoURL(s string) bool {
	return strings.Contains(s, "://") || strings.HasPrefix(s, "git@") || path.Ext(s) == ".git"
}

// Missing returns the required files that tfs does not provide.
func Missing(tfs billy.Filesystem) []string {
	var missing []string
	for _, name := range Required {
		if _, err := tfs.Stat(name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}
