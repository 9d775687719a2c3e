package config

import (
	"fmt"
	"slices"
	"strings"
)

// Config represents a raylib project configuration, organized by category.
// It is the typed counterpart of Raw: every persisted field is bound to exactly
// one configuration key (see keys.go). Fields tagged yaml:"-" are filled by the
// tool at runtime and never written to the project file.
type Config struct {
	// Project contains the project definition required for generation.
	Project ProjectConfig `yaml:"project"`
	// Build contains generic build properties for all platforms.
	Build BuildConfig `yaml:"build"`
	// Platform contains platform-specific build properties.
	Platform PlatformConfig `yaml:"platform"`
	// Deploy contains packaging and distribution options.
	Deploy DeployConfig `yaml:"deploy"`
	// Imagery contains the images used for stores and marketing.
	Imagery ImageryConfig `yaml:"imagery"`
	// Raylib contains library options.
	Raylib RaylibConfig `yaml:"raylib"`
}

// ProjectConfig describes the project itself.
type ProjectConfig struct {
	// CommercialName is used for docs and web.
	CommercialName string `yaml:"commercial_name"`
	// RepoName is the repository name used for VCS (GitHub, GitLab).
	RepoName string `yaml:"repo_name"`
	// InternalName is used for the executable and the VS2022 project.
	InternalName string `yaml:"internal_name"`
	// ShortName is used for icons.
	ShortName string `yaml:"short_name"`
	// Year is set automatically when the project is created.
	Year int `yaml:"year"`
	// Version is the project version.
	Version string `yaml:"version"`
	// Description is a one line project description.
	Description string `yaml:"description"`
	// PublisherName is the publisher of the product.
	PublisherName string `yaml:"publisher_name"`
	// DeveloperName is the developer or company name.
	DeveloperName string `yaml:"developer_name"`
	// DeveloperURL is the developer webpage.
	DeveloperURL string `yaml:"developer_url"`
	// DeveloperEmail is the developer contact email.
	DeveloperEmail string `yaml:"developer_email"`
	// IconFile is the application icon (.ico/.icns).
	IconFile string `yaml:"icon_file"`
	// SourcePath is scanned for code files (.c/.cpp/.h).
	SourcePath string `yaml:"source_path"`
	// AssetsPath contains all project resources.
	AssetsPath string `yaml:"assets_path"`
	// AssetsOutPath is where assets are copied inside the generated project.
	AssetsOutPath string `yaml:"assets_output_path"`

	SourceFilePaths   []string `yaml:"-"`
	AssetFilePaths    []string `yaml:"-"`
	SelectedSource    Source   `yaml:"-"`
	GenerationOutPath string   `yaml:"-"`
}

// BuildConfig contains build settings shared by all platforms.
type BuildConfig struct {
	// OutputPath is the build output directory.
	OutputPath string `yaml:"output_path"`
	// AssetsValidation requests assets validation on building.
	AssetsValidation bool `yaml:"assets_validation"`
	// AssetsPackaging requests assets packaging on building.
	AssetsPackaging bool `yaml:"assets_packaging"`
	// RRPPackagerPath is the path to the rrespacker tool.
	RRPPackagerPath string `yaml:"rrp_packager_path"`
	// TargetPlatform is one of SupportedPlatforms.
	TargetPlatform string `yaml:"target_platform"`
	// TargetArchitecture is one of SupportedArchitectures.
	TargetArchitecture string `yaml:"target_architecture"`
	// TargetMode is one of SupportedModes.
	TargetMode string `yaml:"target_mode"`

	RequestedBuildSystems []BuildSystem `yaml:"-"`
}

// PlatformConfig groups the per-platform settings.
type PlatformConfig struct {
	Windows   WindowsConfig   `yaml:"windows"`
	Linux     LinuxConfig     `yaml:"linux"`
	MacOS     MacOSConfig     `yaml:"macos"`
	HTML5     HTML5Config     `yaml:"html5"`
	Android   AndroidConfig   `yaml:"android"`
	DRM       DRMConfig       `yaml:"drm"`
	Dreamcast DreamcastConfig `yaml:"dreamcast"`
}

type WindowsConfig struct {
	MSBuildPath   string `yaml:"msbuild_path"`
	W64DevkitPath string `yaml:"w64devkit_path"`
	SigntoolPath  string `yaml:"signtool_path"`
	SignCertFile  string `yaml:"signcert_file"`
}

type LinuxConfig struct {
	UseCrossCompiler  bool   `yaml:"cross_compile"`
	CrossCompilerPath string `yaml:"cross_compiler_path"`
}

type MacOSConfig struct {
	BundleInfoFile string `yaml:"bundle_info_file"`
	BundleName     string `yaml:"bundle_name"`
	BundleVersion  string `yaml:"bundle_version"`
	BundleIconFile string `yaml:"bundle_icon_file"`
}

type HTML5Config struct {
	EmsdkPath string `yaml:"emsdk_path"`
	ShellFile string `yaml:"shell_file"`
	// HeapMemorySize is the required heap size in MB.
	HeapMemorySize int  `yaml:"heap_memory_size"`
	UseAsyncify    bool `yaml:"use_asyncify"`
	// UseWebGL2 selects WebGL2 (OpenGL ES 3.0) over the default WebGL1.
	UseWebGL2 bool `yaml:"use_webgl2"`
}

type AndroidConfig struct {
	SDKPath          string `yaml:"sdk_path"`
	NDKPath          string `yaml:"ndk_path"`
	JavaSDKPath      string `yaml:"java_sdk_path"`
	ManifestFile     string `yaml:"manifest_file"`
	MinSDKVersion    int    `yaml:"min_sdk_version"`
	TargetSDKVersion int    `yaml:"target_sdk_version"`
}

type DRMConfig struct {
	UseCrossCompiler  bool   `yaml:"cross_compile"`
	CrossCompilerPath string `yaml:"cross_compiler_path"`
}

type DreamcastConfig struct {
	// SDKPath points to KallistiOS.
	SDKPath string `yaml:"sdk_path"`
}

// DeployConfig contains packaging options.
type DeployConfig struct {
	ZipPackage       bool   `yaml:"zip_package"`
	RIFInstaller     bool   `yaml:"rif_installer"`
	RIFInstallerPath string `yaml:"rif_installer_path"`
	IncludeREADME    bool   `yaml:"include_readme"`
	READMEPath       string `yaml:"readme_file"`
	IncludeEULA      bool   `yaml:"include_eula"`
	EULAPath         string `yaml:"eula_file"`
}

// ImageryConfig contains the source images for store imagery.
type ImageryConfig struct {
	LogoFile     string `yaml:"logo_file"`
	SplashFile   string `yaml:"splash_file"`
	GenerateAuto bool   `yaml:"generate"`
}

// RaylibConfig contains raylib library options.
type RaylibConfig struct {
	SrcPath   string `yaml:"src_path"`
	Version   string `yaml:"version"`
	GLVersion string `yaml:"opengl_version"`
}

// Source selects the code the generated project starts from.
type Source int

const (
	// SourceBasic uses the single-file template sample.
	SourceBasic Source = iota
	// SourceAdvanced uses the screen manager sample (multiple files).
	SourceAdvanced
	// SourceCustom uses the files found under Project.SourcePath.
	SourceCustom
)

var sourceNames = []string{"basic", "advanced", "custom"}

func (s Source) String() string {
	if s < 0 || int(s) >= len(sourceNames) {
		return "unknown"
	}
	return sourceNames[s]
}

// ParseSource parses a source name as printed by Source.String.
func ParseSource(s string) (Source, error) {
	for i, name := range sourceNames {
		if name == s {
			return Source(i), nil
		}
	}
	return 0, fmt.Errorf("%w: source %q (allowed: %s)", ErrInvalidValue, s, strings.Join(sourceNames, ", "))
}

// BuildSystem identifies one generated build system.
type BuildSystem string

const (
	BuildScript   BuildSystem = "script"
	BuildMakefile BuildSystem = "makefile"
	BuildVSCode   BuildSystem = "vscode"
	BuildVS2022   BuildSystem = "vs2022"
	BuildCMake    BuildSystem = "cmake"
	BuildGitHub   BuildSystem = "github"
)

// AllBuildSystems lists every build system in generation order.
var AllBuildSystems = []BuildSystem{BuildScript, BuildMakefile, BuildVS2022, BuildVSCode, BuildCMake, BuildGitHub}

// ParseBuildSystems parses a comma separated list such as "makefile,vscode".
// An empty list selects all build systems.
func ParseBuildSystems(s string) ([]BuildSystem, error) {
	if strings.TrimSpace(s) == "" {
		return AllBuildSystems, nil
	}
	var out []BuildSystem
	for _, part := range strings.Split(s, ",") {
		name := BuildSystem(strings.ToLower(strings.TrimSpace(part)))
		if !slices.Contains(AllBuildSystems, name) {
			return nil, fmt.Errorf("%w: build system %q", ErrInvalidValue, part)
		}
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out, nil
}
