package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/raylib-tools/rpc/internal/rini"
)

var (
	// ErrUnknownKey is returned when a key is not present in a Raw configuration.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrInvalidValue is returned when a value cannot be stored in an entry.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Category is the first word of a configuration key.
type Category int

const (
	CategoryProject Category = iota
	CategoryBuild
	CategoryPlatform
	CategoryDeploy
	CategoryImagery
	CategoryRaylib
)

var categoryNames = []string{"PROJECT", "BUILD", "PLATFORM", "DEPLOY", "IMAGERY", "RAYLIB"}

// Categories lists all categories in file order.
var Categories = []Category{CategoryProject, CategoryBuild, CategoryPlatform, CategoryDeploy, CategoryImagery, CategoryRaylib}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "UNKNOWN"
	}
	return categoryNames[c]
}

// ParseCategory parses a category name, case insensitive.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: category %q", ErrInvalidValue, s)
}

// Platform is the second word of PLATFORM_* keys.
type Platform int

const (
	PlatformWindows Platform = iota
	PlatformLinux
	PlatformMacOS
	PlatformHTML5
	PlatformAndroid
	PlatformDRM
	PlatformSwitch
	PlatformDreamcast
	PlatformFreeBSD
	PlatformAny
)

var platformNames = []string{"WINDOWS", "LINUX", "MACOS", "HTML5", "ANDROID", "DRM", "SWITCH", "DREAMCAST", "FREEBSD", "ANY"}

func (p Platform) String() string {
	if p < 0 || int(p) >= len(platformNames) {
		return "ANY"
	}
	return platformNames[p]
}

// EntryType is the kind of data an entry holds, sniffed from its key.
type EntryType int

const (
	TypeBool EntryType = iota
	TypeValue
	TypeText
	TypeFile
	TypePath
)

var typeNames = []string{"bool", "value", "text", "file", "path"}

func (t EntryType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// IsNumeric reports whether the entry stores an integer (Bool or Value).
func (t EntryType) IsNumeric() bool {
	return t == TypeBool || t == TypeValue
}

// Entry is a single property of a raw project configuration.
type Entry struct {
	// Key is the entry key as read from the file.
	Key string
	// Text is the entry data. For numeric entries it holds the decimal form of Value.
	Text string
	// Desc is the entry description, shown as help when editing.
	Desc string

	// Name is a display label computed from Key.
	Name     string
	Category Category
	Platform Platform
	Type     EntryType
	// Value is the integer data of Bool and Value entries.
	Value int
}

// Raw is a generic, ordered list of configuration entries, as stored on disk.
type Raw struct {
	Entries []Entry
	// Header holds the comment lines found before the first entry.
	Header []string
}

// NewEntry builds a classified entry from a key and its raw text.
// isText tells whether the value was stored as text (quoted) in the file.
func NewEntry(key, text, desc string, isText bool) Entry {
	e := Entry{Key: key, Desc: desc}
	e.Category, e.Platform, e.Name = classifyKey(key)

	if !isText {
		if strings.Contains(key, "_FLAG") {
			e.Type = TypeBool
		} else {
			e.Type = TypeValue
		}
		e.Value, _ = strconv.Atoi(text)
		e.Text = strconv.Itoa(e.Value)
		return e
	}

	switch {
	case strings.HasSuffix(key, "_FILE"), strings.HasSuffix(key, "_FILES"):
		e.Type = TypeFile
	case strings.HasSuffix(key, "_PATH"):
		e.Type = TypePath
	default:
		e.Type = TypeText
	}
	e.Text = text
	return e
}

// classifyKey extracts the category, platform and display name from a key
// such as PLATFORM_HTML5_HEAP_MEMORY_SIZE -> (PLATFORM, HTML5, "HEAP MEMORY SIZE").
func classifyKey(key string) (Category, Platform, string) {
	cat := Category(-1)
	plat := PlatformAny

	head, rest, _ := strings.Cut(key, "_")
	for i, name := range categoryNames {
		if head == name {
			cat = Category(i)
		}
	}
	if cat < 0 {
		// Keys without a known category keep their full name.
		return CategoryProject, PlatformAny, strings.ReplaceAll(key, "_", " ")
	}

	if cat == CategoryPlatform {
		pname, prest, _ := strings.Cut(rest, "_")
		for i, name := range platformNames[:len(platformNames)-1] {
			if pname == name {
				plat = Platform(i)
				rest = prest
			}
		}
	}
	return cat, plat, strings.ReplaceAll(rest, "_", " ")
}

// ParseRaw reads a raw configuration from r.
func ParseRaw(r io.Reader) (*Raw, error) {
	data, err := rini.Parse(r)
	if err != nil {
		return nil, err
	}
	return fromRini(data), nil
}

// LoadRaw reads a raw configuration from a .rpc file.
func LoadRaw(path string) (*Raw, error) {
	data, err := rini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}
	return fromRini(data), nil
}

func fromRini(data *rini.Data) *Raw {
	raw := &Raw{
		Entries: make([]Entry, 0, len(data.Values)),
		Header:  data.Header(),
	}
	// A legacy spelling and its corrected key are one entry: the later value
	// wins and the first position is kept.
	seen := make(map[string]int, len(data.Values))
	for _, v := range data.Values {
		key := canonicalKey(v.Key)
		if i, ok := seen[key]; ok {
			desc := v.Desc
			if desc == "" {
				desc = raw.Entries[i].Desc
			}
			raw.Entries[i] = NewEntry(key, v.Text, desc, v.IsText)
			continue
		}
		seen[key] = len(raw.Entries)
		raw.Entries = append(raw.Entries, NewEntry(key, v.Text, v.Desc, v.IsText))
	}
	return raw
}

// Lookup returns the entry stored under key, or nil.
func (raw *Raw) Lookup(key string) *Entry {
	key = canonicalKey(key)
	for i := range raw.Entries {
		if raw.Entries[i].Key == key {
			return &raw.Entries[i]
		}
	}
	return nil
}

// Set parses value according to the entry type and stores it.
// Flags accept true/false, yes/no, on/off and integers.
func (raw *Raw) Set(key, value string) error {
	e := raw.Lookup(key)
	if e == nil {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if !e.Type.IsNumeric() {
		e.Text = value
		return nil
	}

	n, err := parseInt(value, e.Type == TypeBool)
	if err != nil {
		return fmt.Errorf("%w: %s expects %s, got %q", ErrInvalidValue, e.Key, e.Type, value)
	}
	e.setValue(n)
	return nil
}

func (e *Entry) setValue(n int) {
	e.Value = n
	e.Text = strconv.Itoa(n)
}

func parseInt(s string, flag bool) (int, error) {
	s = strings.TrimSpace(s)
	if flag {
		switch strings.ToLower(s) {
		case "true", "yes", "on":
			return 1, nil
		case "false", "no", "off":
			return 0, nil
		}
	}
	return strconv.Atoi(s)
}

// Filter returns the entries of the given category, in order.
func (raw *Raw) Filter(cat Category) []Entry {
	var out []Entry
	for _, e := range raw.Entries {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

var fileHeader = []string{
	"",
	"raylib project configuration",
	"",
	"This file contains all required data to define a raylib C/C++ project",
	"and allow building it for multiple platforms",
	"",
	"CATEGORIES:",
	"   - PROJECT: Project definition properties, required for project generation",
	"   - BUILD: Project build properties, generic for all platforms",
	"   - PLATFORM: Platform-specific properties, required for building for that platform",
	"   - DEPLOY: Deployment properties, required to distribute the generated build",
	"   - IMAGERY: Project imagery properties, required for distribution on some stores",
	"   - RAYLIB: raylib library properties",
	"",
	"CONVENTIONS:",
	"   - ID containing _FLAG: Value is considered a boolean (0/1)",
	"   - ID with unquoted integer value: Value is considered an integer",
	"   - ID ends with _FILE or _FILES: Value is a file path",
	"   - ID ends with _PATH: Value is a directory path",
	"",
	"NOTE: The description of each entry is used as help text when editing",
}

var sectionTitles = map[Category]string{
	CategoryProject:  "Project settings",
	CategoryBuild:    "Build settings",
	CategoryPlatform: "Platform settings",
	CategoryDeploy:   "Deploy settings",
	CategoryImagery:  "Imagery settings",
	CategoryRaylib:   "raylib settings",
}

// Write serializes the entries grouped by category and platform, independently
// of the order they were loaded in.
func (raw *Raw) Write(w io.Writer) error {
	data := rini.New()
	for _, line := range fileHeader {
		data.AddComment(line)
	}

	for _, cat := range Categories {
		group := raw.Filter(cat)
		if len(group) == 0 {
			continue
		}
		if cat == CategoryPlatform {
			slices.SortStableFunc(group, func(a, b Entry) int { return int(a.Platform) - int(b.Platform) })
		}

		data.AddBlank()
		data.AddComment(sectionTitles[cat])
		data.AddComment(strings.Repeat("-", 84))
		for _, e := range group {
			if e.Type.IsNumeric() {
				data.SetInt(e.Key, e.Value, e.Desc)
			} else {
				data.SetText(e.Key, e.Text, e.Desc)
			}
		}
	}
	return data.Write(w)
}

// Save writes the configuration to a .rpc file.
func (raw *Raw) Save(path string) error {
	var buf bytes.Buffer
	if err := raw.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to save project config: %w", err)
	}
	return nil
}
