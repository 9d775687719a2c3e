package config

import "strings"

// Configuration keys bound to Config fields.
const (
	KeyProjectInternalName   = "PROJECT_INTERNAL_NAME"
	KeyProjectRepoName       = "PROJECT_REPO_NAME"
	KeyProjectCommercialName = "PROJECT_COMMERCIAL_NAME"
	KeyProjectShortName      = "PROJECT_SHORT_NAME"
	KeyProjectVersion        = "PROJECT_VERSION"
	KeyProjectDescription    = "PROJECT_DESCRIPTION"
	KeyProjectPublisherName  = "PROJECT_PUBLISHER_NAME"
	KeyProjectDeveloperName  = "PROJECT_DEVELOPER_NAME"
	KeyProjectDeveloperURL   = "PROJECT_DEVELOPER_URL"
	KeyProjectDeveloperEmail = "PROJECT_DEVELOPER_EMAIL"
	KeyProjectIconFile       = "PROJECT_ICON_FILE"
	KeyProjectSourcePath     = "PROJECT_SOURCE_PATH"
	KeyProjectAssetsPath     = "PROJECT_ASSETS_PATH"
	KeyProjectAssetsOutPath  = "PROJECT_ASSETS_OUTPUT_PATH"

	KeyBuildOutputPath         = "BUILD_OUTPUT_PATH"
	KeyBuildTargetPlatform     = "BUILD_TARGET_PLATFORM"
	KeyBuildTargetArchitecture = "BUILD_TARGET_ARCHITECTURE"
	KeyBuildTargetMode         = "BUILD_TARGET_MODE"
	KeyBuildAssetsValidation   = "BUILD_FLAG_ASSETS_VALIDATION"
	KeyBuildAssetsPackaging    = "BUILD_FLAG_ASSETS_PACKAGING"
	KeyBuildRRPPackagerPath    = "BUILD_RRP_PACKAGER_PATH"

	KeyWindowsMSBuildPath      = "PLATFORM_WINDOWS_MSBUILD_PATH"
	KeyWindowsW64DevkitPath    = "PLATFORM_WINDOWS_W64DEVKIT_PATH"
	KeyWindowsSigntoolPath     = "PLATFORM_WINDOWS_SIGNTOOL_PATH"
	KeyWindowsSignCertFile     = "PLATFORM_WINDOWS_SIGNCERT_FILE"
	KeyLinuxCrossCompile       = "PLATFORM_LINUX_FLAG_CROSS_COMPILE"
	KeyLinuxCrossCompilerPath  = "PLATFORM_LINUX_CROSS_COMPILER_PATH"
	KeyMacOSBundleInfoFile     = "PLATFORM_MACOS_BUNDLE_INFO_FILE"
	KeyMacOSBundleName         = "PLATFORM_MACOS_BUNDLE_NAME"
	KeyMacOSBundleVersion      = "PLATFORM_MACOS_BUNDLE_VERSION"
	KeyMacOSBundleIconFile     = "PLATFORM_MACOS_BUNDLE_ICON_FILE"
	KeyHTML5EmsdkPath          = "PLATFORM_HTML5_EMSDK_PATH"
	KeyHTML5ShellFile          = "PLATFORM_HTML5_SHELL_FILE"
	KeyHTML5HeapMemorySize     = "PLATFORM_HTML5_HEAP_MEMORY_SIZE"
	KeyHTML5UseAsyncify        = "PLATFORM_HTML5_FLAG_USE_ASINCIFY"
	KeyHTML5UseWebGL2          = "PLATFORM_HTML5_FLAG_USE_WEBGL2"
	KeyAndroidSDKPath          = "PLATFORM_ANDROID_SDK_PATH"
	KeyAndroidNDKPath          = "PLATFORM_ANDROID_NDK_PATH"
	KeyAndroidJavaSDKPath      = "PLATFORM_ANDROID_JAVA_SDK_PATH"
	KeyAndroidManifestFile     = "PLATFORM_ANDROID_MANIFEST_FILE"
	KeyAndroidMinSDKVersion    = "PLATFORM_ANDROID_MIN_SDK_VERSION"
	KeyAndroidTargetSDKVersion = "PLATFORM_ANDROID_TARGET_SDK_VERSION"
	KeyDRMCrossCompile         = "PLATFORM_DRM_FLAG_CROSS_COMPILE"
	KeyDRMCrossCompilerPath    = "PLATFORM_DRM_CROSS_COMPILER_PATH"
	KeyDreamcastSDKPath        = "PLATFORM_DREAMCAST_SDK_PATH"

	KeyDeployZipPackage       = "DEPLOY_FLAG_ZIP_PACKAGE"
	KeyDeployRIFInstaller     = "DEPLOY_FLAG_RIF_INSTALLER"
	KeyDeployRIFInstallerPath = "DEPLOY_RIF_INSTALLER_PATH"
	KeyDeployIncludeREADME    = "DEPLOY_FLAG_INCLUDE_README"
	KeyDeployREADMEFile       = "DEPLOY_README_FILE"
	KeyDeployIncludeEULA      = "DEPLOY_FLAG_INCLUDE_EULA"
	KeyDeployEULAFile         = "DEPLOY_EULA_FILE"

	KeyImageryLogoFile   = "IMAGERY_LOGO_FILE"
	KeyImagerySplashFile = "IMAGERY_SPLASH_FILE"
	KeyImageryGenerate   = "IMAGERY_FLAG_GENERATE"

	KeyRaylibSrcPath   = "RAYLIB_SRC_PATH"
	KeyRaylibVersion   = "RAYLIB_VERSION"
	KeyRaylibGLVersion = "RAYLIB_OPENGL_VERSION"
)

// legacyKeys maps misspelled keys written by older project files.
var legacyKeys = map[string]string{
	"DEPLOY_FLAG_INCUDE_README": KeyDeployIncludeREADME,
	"DEPLOY_FLAG_INCUDE_EULA":   KeyDeployIncludeEULA,
}

func canonicalKey(key string) string {
	key = strings.ToUpper(strings.TrimSpace(key))
	if k, ok := legacyKeys[key]; ok {
		return k
	}
	return key
}

// binding ties a key to one Config field. Exactly one accessor is set.
type binding struct {
	key  string
	desc string

	text func(c *Config) *string
	num  func(c *Config) *int
	flag func(c *Config) *bool
}

var bindings = []binding{
	{key: KeyProjectInternalName, desc: "Project internal name, used for executable and project files", text: func(c *Config) *string { return &c.Project.InternalName }},
	{key: KeyProjectRepoName, desc: "Project repository name, used for VCS (GitHub, GitLab)", text: func(c *Config) *string { return &c.Project.RepoName }},
	{key: KeyProjectCommercialName, desc: "Project commercial name, used for docs and web", text: func(c *Config) *string { return &c.Project.CommercialName }},
	{key: KeyProjectShortName, desc: "Project short name, used for icons", text: func(c *Config) *string { return &c.Project.ShortName }},
	{key: KeyProjectVersion, desc: "Project version", text: func(c *Config) *string { return &c.Project.Version }},
	{key: KeyProjectDescription, desc: "Project description", text: func(c *Config) *string { return &c.Project.Description }},
	{key: KeyProjectPublisherName, desc: "Project publisher name", text: func(c *Config) *string { return &c.Project.PublisherName }},
	{key: KeyProjectDeveloperName, desc: "Project developer name", text: func(c *Config) *string { return &c.Project.DeveloperName }},
	{key: KeyProjectDeveloperURL, desc: "Project developer webpage url", text: func(c *Config) *string { return &c.Project.DeveloperURL }},
	{key: KeyProjectDeveloperEmail, desc: "Project developer email", text: func(c *Config) *string { return &c.Project.DeveloperEmail }},
	{key: KeyProjectIconFile, desc: "Project icon file", text: func(c *Config) *string { return &c.Project.IconFile }},
	{key: KeyProjectSourcePath, desc: "Project source directory, including all required code files (C/C++)", text: func(c *Config) *string { return &c.Project.SourcePath }},
	{key: KeyProjectAssetsPath, desc: "Project assets directory, including all required assets", text: func(c *Config) *string { return &c.Project.AssetsPath }},
	{key: KeyProjectAssetsOutPath, desc: "Project assets destination path", text: func(c *Config) *string { return &c.Project.AssetsOutPath }},

	{key: KeyBuildOutputPath, desc: "Build output path", text: func(c *Config) *string { return &c.Build.OutputPath }},
	{key: KeyBuildTargetPlatform, desc: "Build target platform (Supported: Windows, Linux, macOS, Android, Web)", text: func(c *Config) *string { return &c.Build.TargetPlatform }},
	{key: KeyBuildTargetArchitecture, desc: "Build target architecture (Supported: x86-64, Win32, arm64)", text: func(c *Config) *string { return &c.Build.TargetArchitecture }},
	{key: KeyBuildTargetMode, desc: "Build target mode (Supported: DEBUG, RELEASE, DEBUG_DLL, RELEASE_DLL)", text: func(c *Config) *string { return &c.Build.TargetMode }},
	{key: KeyBuildAssetsValidation, desc: "Flag: request assets validation on building", flag: func(c *Config) *bool { return &c.Build.AssetsValidation }},
	{key: KeyBuildAssetsPackaging, desc: "Flag: request assets packaging on building", flag: func(c *Config) *bool { return &c.Build.AssetsPackaging }},
	{key: KeyBuildRRPPackagerPath, desc: "Path to rrespacker tool, required for assets packaging", text: func(c *Config) *string { return &c.Build.RRPPackagerPath }},

	{key: KeyWindowsMSBuildPath, desc: "Path to MSBuild system, required to build VS2022 solution", text: func(c *Config) *string { return &c.Platform.Windows.MSBuildPath }},
	{key: KeyWindowsW64DevkitPath, desc: "Path to w64devkit (GCC), required to use Makefile building", text: func(c *Config) *string { return &c.Platform.Windows.W64DevkitPath }},
	{key: KeyWindowsSigntoolPath, desc: "Path to signtool, required to sign the executable", text: func(c *Config) *string { return &c.Platform.Windows.SigntoolPath }},
	{key: KeyWindowsSignCertFile, desc: "Path to a valid certificate to sign the executable", text: func(c *Config) *string { return &c.Platform.Windows.SignCertFile }},
	{key: KeyLinuxCrossCompile, desc: "Flag: request cross-compiler usage", flag: func(c *Config) *bool { return &c.Platform.Linux.UseCrossCompiler }},
	{key: KeyLinuxCrossCompilerPath, desc: "Path to GCC cross-compiler", text: func(c *Config) *string { return &c.Platform.Linux.CrossCompilerPath }},
	{key: KeyMacOSBundleInfoFile, desc: "Path to macOS bundle options (Info.plist)", text: func(c *Config) *string { return &c.Platform.MacOS.BundleInfoFile }},
	{key: KeyMacOSBundleName, desc: "Bundle name", text: func(c *Config) *string { return &c.Platform.MacOS.BundleName }},
	{key: KeyMacOSBundleVersion, desc: "Bundle version", text: func(c *Config) *string { return &c.Platform.MacOS.BundleVersion }},
	{key: KeyMacOSBundleIconFile, desc: "Bundle icon file (.icns)", text: func(c *Config) *string { return &c.Platform.MacOS.BundleIconFile }},
	{key: KeyHTML5EmsdkPath, desc: "Path to emsdk, required for Web building", text: func(c *Config) *string { return &c.Platform.HTML5.EmsdkPath }},
	{key: KeyHTML5ShellFile, desc: "Path to shell file to be used by emscripten", text: func(c *Config) *string { return &c.Platform.HTML5.ShellFile }},
	{key: KeyHTML5HeapMemorySize, desc: "Required heap memory size in MB (required for assets loading)", num: func(c *Config) *int { return &c.Platform.HTML5.HeapMemorySize }},
	{key: KeyHTML5UseAsyncify, desc: "Flag: use ASYNCIFY mode on building", flag: func(c *Config) *bool { return &c.Platform.HTML5.UseAsyncify }},
	{key: KeyHTML5UseWebGL2, desc: "Flag: use WebGL2 (OpenGL ES 3.0) instead of default WebGL1 (OpenGL ES 2.0)", flag: func(c *Config) *bool { return &c.Platform.HTML5.UseWebGL2 }},
	{key: KeyAndroidSDKPath, desc: "Path to Android SDK, required for Android App building", text: func(c *Config) *string { return &c.Platform.Android.SDKPath }},
	{key: KeyAndroidNDKPath, desc: "Path to Android NDK, required for C native building to Android", text: func(c *Config) *string { return &c.Platform.Android.NDKPath }},
	{key: KeyAndroidJavaSDKPath, desc: "Path to Java SDK, required for some tools", text: func(c *Config) *string { return &c.Platform.Android.JavaSDKPath }},
	{key: KeyAndroidManifestFile, desc: "Path to Android manifest, including build options", text: func(c *Config) *string { return &c.Platform.Android.ManifestFile }},
	{key: KeyAndroidMinSDKVersion, desc: "Minimum SDK version required", num: func(c *Config) *int { return &c.Platform.Android.MinSDKVersion }},
	{key: KeyAndroidTargetSDKVersion, desc: "Target SDK version", num: func(c *Config) *int { return &c.Platform.Android.TargetSDKVersion }},
	{key: KeyDRMCrossCompile, desc: "Flag: request cross-compiler usage", flag: func(c *Config) *bool { return &c.Platform.DRM.UseCrossCompiler }},
	{key: KeyDRMCrossCompilerPath, desc: "Path to DRM cross-compiler for target ABI", text: func(c *Config) *string { return &c.Platform.DRM.CrossCompilerPath }},
	{key: KeyDreamcastSDKPath, desc: "Path to Dreamcast SDK (KallistiOS)", text: func(c *Config) *string { return &c.Platform.Dreamcast.SDKPath }},

	{key: KeyDeployZipPackage, desc: "Flag: request package to be zipped for distribution", flag: func(c *Config) *bool { return &c.Deploy.ZipPackage }},
	{key: KeyDeployRIFInstaller, desc: "Flag: request installer creation using rInstallFriendly tool", flag: func(c *Config) *bool { return &c.Deploy.RIFInstaller }},
	{key: KeyDeployRIFInstallerPath, desc: "Path to rInstallFriendly tool", text: func(c *Config) *string { return &c.Deploy.RIFInstallerPath }},
	{key: KeyDeployIncludeREADME, desc: "Flag: include README file on package", flag: func(c *Config) *bool { return &c.Deploy.IncludeREADME }},
	{key: KeyDeployREADMEFile, desc: "Project README document, contains product information", text: func(c *Config) *string { return &c.Deploy.READMEPath }},
	{key: KeyDeployIncludeEULA, desc: "Flag: include EULA file on package (vs LICENSE file for FOSS)", flag: func(c *Config) *bool { return &c.Deploy.IncludeEULA }},
	{key: KeyDeployEULAFile, desc: "Project End-User-License-Agreement", text: func(c *Config) *string { return &c.Deploy.EULAPath }},

	{key: KeyImageryLogoFile, desc: "Project logo image, useful for imagery generation", text: func(c *Config) *string { return &c.Imagery.LogoFile }},
	{key: KeyImagerySplashFile, desc: "Project splash image, useful for imagery generation", text: func(c *Config) *string { return &c.Imagery.SplashFile }},
	{key: KeyImageryGenerate, desc: "Flag: request project imagery generation: social cards, itch.io, Steam", flag: func(c *Config) *bool { return &c.Imagery.GenerateAuto }},

	{key: KeyRaylibSrcPath, desc: "Path to raylib source code, to be built for target platform", text: func(c *Config) *string { return &c.Raylib.SrcPath }},
	{key: KeyRaylibVersion, desc: "raylib version used by the project", text: func(c *Config) *string { return &c.Raylib.Version }},
	{key: KeyRaylibGLVersion, desc: "OpenGL version to be used by raylib, platform dependant", text: func(c *Config) *string { return &c.Raylib.GLVersion }},
}

var bindingIndex = func() map[string]int {
	m := make(map[string]int, len(bindings))
	for i, b := range bindings {
		m[b.key] = i
	}
	return m
}()

func lookupBinding(key string) (binding, bool) {
	i, ok := bindingIndex[key]
	if !ok {
		return binding{}, false
	}
	return bindings[i], true
}

// Keys returns every bound configuration key in canonical order.
func Keys() []string {
	keys := make([]string, len(bindings))
	for i, b := range bindings {
		keys[i] = b.key
	}
	return keys
}

// IsKnownKey reports whether key is bound to a Config field. Legacy spellings are accepted.
func IsKnownKey(key string) bool {
	_, ok := bindingIndex[canonicalKey(key)]
	return ok
}
