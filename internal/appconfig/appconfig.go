// Package appconfig manages the rpc application settings stored in rpc.ini.
package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/raylib-tools/rpc/internal/config"
	"github.com/raylib-tools/rpc/internal/rini"
)

// FileName is the settings file name inside the user config directory.
const FileName = "rpc.ini"

const (
	keyLogLevel      = "LOG_LEVEL"
	keyLogPath       = "LOG_PATH"
	keyTemplatePath  = "TEMPLATE_PATH"
	keyDeveloperName = "DEFAULT_DEVELOPER_NAME"
	keyDeveloperURL  = "DEFAULT_DEVELOPER_URL"
	keyRaylibSrcPath = "DEFAULT_RAYLIB_SRC_PATH"
	keyW64DevkitPath = "DEFAULT_W64DEVKIT_PATH"
	keyOutputPath    = "DEFAULT_OUTPUT_PATH"
	keyShowWelcome   = "SHOW_WELCOME"
)

// Settings holds the user defaults applied to every new project.
type Settings struct {
	LogLevel      string
	LogPath       string
	TemplatePath  string
	DeveloperName string
	DeveloperURL  string
	RaylibSrcPath string
	W64DevkitPath string
	OutputPath    string
	ShowWelcome   bool
}

// Defaults returns the settings used when no rpc.ini exists.
func Defaults() Settings {
	return Settings{
		LogLevel:      "warn",
		RaylibSrcPath: "C:/raylib/raylib/src",
		W64DevkitPath: "C:/raylib/w64devkit",
		OutputPath:    ".",
		ShowWelcome:   true,
	}
}

// DefaultPath returns <user config dir>/rpc/rpc.ini.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "rpc", FileName), nil
}

// ErrUnknownSetting is returned for keys that rpc.ini does not define.
var ErrUnknownSetting = errors.New("unknown setting")

type field struct {
	key  string
	desc string
	text func(*Settings) *string
	flag func(*Settings) *bool
}

var fields = []field{
	{key: keyLogLevel, desc: "Log level: debug, info, warn, error", text: func(s *Settings) *string { return &s.LogLevel }},
	{key: keyLogPath, desc: "Log file, empty logs to stderr", text: func(s *Settings) *string { return &s.LogPath }},
	{key: keyTemplatePath, desc: "Template directory, empty uses the embedded template", text: func(s *Settings) *string { return &s.TemplatePath }},
	{key: keyDeveloperName, desc: "Developer name for new projects", text: func(s *Settings) *string { return &s.DeveloperName }},
	{key: keyDeveloperURL, desc: "Developer webpage for new projects", text: func(s *Settings) *string { return &s.DeveloperURL }},
	{key: keyRaylibSrcPath, desc: "raylib source path for new projects", text: func(s *Settings) *string { return &s.RaylibSrcPath }},
	{key: keyW64DevkitPath, desc: "w64devkit path for new projects", text: func(s *Settings) *string { return &s.W64DevkitPath }},
	{key: keyOutputPath, desc: "Directory new projects are generated in", text: func(s *Settings) *string { return &s.OutputPath }},
	{key: keyShowWelcome, desc: "Show welcome message", flag: func(s *Settings) *bool { return &s.ShowWelcome }},
}

func lookupField(key string) (field, bool) {
	key = strings.ToUpper(key)
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

// Keys returns the setting keys in file order.
func Keys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

// Describe returns the description written next to key in rpc.ini.
func Describe(key string) string {
	f, _ := lookupField(key)
	return f.desc
}

// Load reads the settings at path. A missing file yields Defaults.
func Load(path string) (Settings, error) {
	s := Defaults()
	data, err := rini.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to load settings: %w", err)
	}

	for _, f := range fields {
		if f.text != nil {
			*f.text(&s) = data.GetText(f.key, *f.text(&s))
			continue
		}
		*f.flag(&s) = data.GetInt(f.key, boolToInt(*f.flag(&s))) != 0
	}
	return s, nil
}

// Save writes every setting to path, creating the parent directory.
func (s Settings) Save(path string) error {
	data := rini.New()
	data.AddComment("")
	data.AddComment("rpc initialization configuration options")
	data.AddComment("")
	data.AddComment("NOTE: This file is loaded at startup,")
	data.AddComment("if file is not found, default values are applied")
	data.AddComment("")
	data.AddBlank()

	for _, f := range fields {
		if f.text != nil {
			data.SetText(f.key, *f.text(&s), f.desc)
			continue
		}
		data.SetInt(f.key, boolToInt(*f.flag(&s)), f.desc)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := data.Save(path); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Get returns the value of key as it is written to rpc.ini.
func (s Settings) Get(key string) (string, error) {
	f, ok := lookupField(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	if f.text != nil {
		return *f.text(&s), nil
	}
	return strconv.Itoa(boolToInt(*f.flag(&s))), nil
}

// Set stores value under key. Flags accept 1/0 and true/false.
func (s *Settings) Set(key, value string) error {
	f, ok := lookupField(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	if f.text != nil {
		*f.text(s) = value
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s expects 0 or 1, got %q", config.ErrInvalidValue, f.key, value)
	}
	*f.flag(s) = b
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Apply fills the empty fields of cfg from the settings.
func (s Settings) Apply(cfg *config.Config) {
	setIfEmpty(&cfg.Project.DeveloperName, s.DeveloperName)
	setIfEmpty(&cfg.Project.DeveloperURL, s.DeveloperURL)
	setIfEmpty(&cfg.Raylib.SrcPath, s.RaylibSrcPath)
	setIfEmpty(&cfg.Platform.Windows.W64DevkitPath, s.W64DevkitPath)
	setIfEmpty(&cfg.Project.GenerationOutPath, s.OutputPath)
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
