package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/golang-cz/textcase"
)

// DefaultRaylibVersion is the raylib release generated projects target.
const DefaultRaylibVersion = "5.5"

var (
	SupportedPlatforms     = []string{"Windows", "Linux", "macOS", "Android", "Web"}
	SupportedArchitectures = []string{"x86-64", "Win32", "arm64"}
	SupportedModes         = []string{"DEBUG", "RELEASE", "DEBUG_DLL", "RELEASE_DLL"}
)

var nameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// now is replaced in tests.
var now = time.Now

// ApplyDefaults fills derived and missing values of cfg.
func ApplyDefaults(cfg *Config) {
	p := &cfg.Project
	p.Year = now().Year()

	if p.InternalName == "" && p.CommercialName != "" {
		p.InternalName = textcase.SnakeCase(p.CommercialName)
	}
	if p.CommercialName == "" && p.InternalName != "" {
		p.CommercialName = p.InternalName
	}
	if p.RepoName == "" && p.InternalName != "" {
		p.RepoName = textcase.KebabCase(p.InternalName)
	}
	if p.ShortName == "" && p.InternalName != "" {
		p.ShortName = shortName(p.InternalName)
	}
	if p.Version == "" {
		p.Version = "1.0"
	}
	if p.AssetsOutPath == "" {
		p.AssetsOutPath = "src/resources"
	}
	if p.PublisherName == "" {
		p.PublisherName = p.DeveloperName
	}

	if cfg.Build.OutputPath == "" {
		cfg.Build.OutputPath = "build"
	}
	if cfg.Raylib.Version == "" {
		cfg.Raylib.Version = DefaultRaylibVersion
	}
	if cfg.Platform.MacOS.BundleName == "" {
		cfg.Platform.MacOS.BundleName = p.CommercialName
	}
	if cfg.Platform.MacOS.BundleVersion == "" {
		cfg.Platform.MacOS.BundleVersion = p.Version
	}
}

// shortName keeps the initials of a multi word name, or the first
// characters of a single word.
func shortName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	if len(words) > 1 {
		var b strings.Builder
		for _, w := range words {
			b.WriteString(strings.ToLower(w[:1]))
		}
		return b.String()
	}
	if len(name) > 8 {
		return strings.ToLower(name[:8])
	}
	return strings.ToLower(name)
}

// Validate checks cfg for values generation and building cannot work with.
// All problems are reported together.
func Validate(cfg *Config) error {
	var errs []error

	switch name := cfg.Project.InternalName; {
	case name == "":
		errs = append(errs, fmt.Errorf("%w: %s is required", ErrInvalidValue, KeyProjectInternalName))
	case !nameRegex.MatchString(name):
		errs = append(errs, fmt.Errorf("%w: %s %q must contain only letters, digits, '_' or '-'", ErrInvalidValue, KeyProjectInternalName, name))
	}

	checkOneOf := func(key, value string, allowed []string) {
		if value == "" {
			return
		}
		if !slices.ContainsFunc(allowed, func(s string) bool { return strings.EqualFold(s, value) }) {
			errs = append(errs, fmt.Errorf("%w: %s %q (supported: %s)", ErrInvalidValue, key, value, strings.Join(allowed, ", ")))
		}
	}
	checkOneOf(KeyBuildTargetPlatform, cfg.Build.TargetPlatform, SupportedPlatforms)
	checkOneOf(KeyBuildTargetArchitecture, cfg.Build.TargetArchitecture, SupportedArchitectures)
	checkOneOf(KeyBuildTargetMode, cfg.Build.TargetMode, SupportedModes)

	checkPositive := func(key string, n int) {
		if n < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidValue, key, n))
		}
	}
	checkPositive(KeyHTML5HeapMemorySize, cfg.Platform.HTML5.HeapMemorySize)
	checkPositive(KeyAndroidMinSDKVersion, cfg.Platform.Android.MinSDKVersion)
	checkPositive(KeyAndroidTargetSDKVersion, cfg.Platform.Android.TargetSDKVersion)

	return errors.Join(errs...)
}
