package scaffold

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raylib-tools/rpc/internal/config"
)

// Placeholders found in template files.
const (
	tokenSourceList  = "project_name.c"
	tokenName        = "project_name"
	tokenCompileList = "<!--Additional Compile Items-->"
	tokenGUID        = "ProjectGUID"
	rcProductKey     = `VALUE "ProductName"`
)

// tokenPairs returns the ordered old/new pairs used on every template file.
// Longer tokens come before their prefixes. Pairs whose value is empty are
// dropped so the template default stays in place.
func tokenPairs(cfg *config.Config, name, sourceList, guid string) []string {
	p := cfg.Project
	year := ""
	if p.Year > 0 {
		year = strconv.Itoa(p.Year)
	}

	pairs := [][2]string{
		// The VERSIONINFO key in .rc files must survive the ProductName token.
		{rcProductKey, rcProductKey},
		{tokenSourceList, sourceList},
		{tokenName, name},
		{"CommercialName", p.CommercialName},
		{"ProductName", p.CommercialName},
		{"ProjectDescription", p.Description},
		{"ProjectDev", p.DeveloperName},
		{"project_dev", strings.ToLower(p.DeveloperName)},
		{"developer_web", strings.ToLower(p.DeveloperURL)},
		{"ProjectYear", year},
		{"ProjectVersion", p.Version},
		{`C:\raylib\raylib\src`, cfg.Raylib.SrcPath},
		{"C:/raylib/raylib/src", cfg.Raylib.SrcPath},
		{`C:\raylib\w64devkit`, cfg.Platform.Windows.W64DevkitPath},
		{"C:/raylib/w64devkit", cfg.Platform.Windows.W64DevkitPath},
		{"C:/emsdk", cfg.Platform.HTML5.EmsdkPath},
		{tokenGUID, guid},
	}

	var out []string
	for _, pr := range pairs {
		if pr[1] == "" {
			continue
		}
		out = append(out, pr[0], pr[1])
	}
	return out
}

// vsCompileItems renders the ClCompile entries for the code files after the first.
func vsCompileItems(codeFiles []string) string {
	if len(codeFiles) < 2 {
		return ""
	}
	items := make([]string, 0, len(codeFiles)-1)
	for _, f := range codeFiles[1:] {
		items = append(items, fmt.Sprintf(`<ClCompile Include="..\..\..\src\%s" />`, strings.ReplaceAll(f, "/", `\`)))
	}
	return strings.Join(items, "\n    ")
}

// newReplacers builds the replacer for generic files and the one for VS2022
// project files, where the source token names only the main translation unit.
func newReplacers(cfg *config.Config, name string, codeFiles []string, guid string) (generic, vs *strings.Replacer) {
	generic = strings.NewReplacer(tokenPairs(cfg, name, strings.Join(codeFiles, " "), guid)...)

	main := ""
	if len(codeFiles) > 0 {
		main = strings.ReplaceAll(codeFiles[0], "/", `\`)
	}
	// An empty item list still has to clear the placeholder.
	vsPairs := []string{tokenCompileList, vsCompileItems(codeFiles)}
	vsPairs = append(vsPairs, tokenPairs(cfg, name, main, guid)...)
	vs = strings.NewReplacer(vsPairs...)
	return generic, vs
}
