// Package scan discovers code files and assets, and the resources code refers to.
package scan

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

var (
	sourceExts = []string{".c", ".cpp", ".h", ".hpp"}
	codeExts   = []string{".c", ".cpp"}
)

// AssetExts lists the extensions recognized as resource references in code.
var AssetExts = []string{
	"png", "jpg", "bmp", "gif", "qoi",
	"wav", "ogg", "mp3", "flac", "xm", "mod", "qoa",
	"ttf", "otf", "fnt",
	"obj", "gltf", "glb", "iqm", "vox", "m3d",
	"fs", "vs", "glsl",
	"txt", "json", "rgs",
}

var resourceRegex = regexp.MustCompile(`"([^"\n]+\.(?i:` + strings.Join(AssetExts, "|") + `))"`)

// SourceFiles returns the C/C++ source and header files under dir, sorted and
// relative to dir.
func SourceFiles(fsys billy.Filesystem, dir string) ([]string, error) {
	return walkFiles(fsys, dir, func(name string) bool {
		return slices.Contains(sourceExts, strings.ToLower(path.Ext(name)))
	})
}

// CodeFiles keeps the translation units (.c/.cpp) of files.
func CodeFiles(files []string) []string {
	var out []string
	for _, f := range files {
		if slices.Contains(codeExts, strings.ToLower(path.Ext(f))) {
			out = append(out, f)
		}
	}
	return out
}

// AssetFiles returns every non-hidden regular file under dir, sorted and
// relative to dir.
func AssetFiles(fsys billy.Filesystem, dir string) ([]string, error) {
	return walkFiles(fsys, dir, func(string) bool { return true })
}

func walkFiles(fsys billy.Filesystem, dir string, keep func(name string) bool) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	var out []string
	err := util.Walk(fsys, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") && p != dir {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !info.Mode().IsRegular() || !keep(name) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(out)
	return out, nil
}

// ResourceRefs extracts the string literals in C code that name an asset file.
// Results are deduplicated, in order of appearance.
func ResourceRefs(code string) []string {
	var refs []string
	for _, m := range resourceRegex.FindAllStringSubmatch(code, -1) {
		if !slices.Contains(refs, m[1]) {
			refs = append(refs, m[1])
		}
	}
	return refs
}

// MissingResources returns the references whose base name matches no asset.
func MissingResources(refs, assets []string) []string {
	names := make(map[string]bool, len(assets))
	for _, a := range assets {
		names[path.Base(a)] = true
	}
	var missing []string
	for _, r := range refs {
		if !names[path.Base(strings.ReplaceAll(r, "\\", "/"))] {
			missing = append(missing, r)
		}
	}
	return missing
}
