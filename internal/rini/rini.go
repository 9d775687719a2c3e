// Package rini reads and writes the line-oriented key/value text format used by
// raylib project files (.rpc) and the rpc application settings (rpc.ini).
//
//	# header comment
//	KEY_NAME        = 123          # description
//	TEXT_KEY        = "some text"  # description
package rini

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("rini: syntax error")

// Value is a single KEY = VALUE entry.
type Value struct {
	Key    string
	Text   string
	Desc   string
	IsText bool
}

// Int returns the integer form of the value, or 0 if it is not numeric.
func (v Value) Int() int {
	n, err := strconv.Atoi(v.Text)
	if err != nil {
		return 0
	}
	return n
}

// line is an element of the file body: a comment, a blank, or a reference to a value.
type line struct {
	comment string
	isBlank bool
	value   int // index into Data.Values, -1 for comment lines
}

// Data holds a parsed configuration, preserving the order of values and comments.
type Data struct {
	Values []Value

	lines []line
	index map[string]int
}

// New returns an empty Data.
func New() *Data {
	return &Data{index: make(map[string]int)}
}

// Parse reads configuration data from r.
func Parse(r io.Reader) (*Data, error) {
	d := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if n == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		switch {
		case text == "":
			continue
		case text[0] == '#' || text[0] == ';':
			d.lines = append(d.lines, line{comment: strings.TrimSpace(text[1:]), value: -1})
			continue
		}

		v, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, n, err)
		}
		d.set(v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// Load parses the file at path.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func parseLine(text string) (Value, error) {
	eq := strings.IndexByte(text, '=')
	if eq < 0 {
		return Value{}, fmt.Errorf("missing '=' in %q", text)
	}
	key := strings.TrimSpace(text[:eq])
	if key == "" {
		return Value{}, fmt.Errorf("empty key")
	}
	if strings.ContainsAny(key, " \t") {
		return Value{}, fmt.Errorf("invalid key %q", key)
	}

	v := Value{Key: key}
	rest := strings.TrimSpace(text[eq+1:])
	if strings.HasPrefix(rest, "\"") {
		unq, n, ok := unquote(rest)
		if !ok {
			return Value{}, fmt.Errorf("unterminated text value for %s", key)
		}
		v.Text = unq
		v.IsText = true
		rest = strings.TrimSpace(rest[n:])
	} else {
		raw := rest
		if hash := strings.IndexByte(rest, '#'); hash >= 0 {
			raw = rest[:hash]
			rest = rest[hash:]
		} else {
			rest = ""
		}
		v.Text = strings.TrimSpace(raw)
		if _, err := strconv.Atoi(v.Text); err != nil {
			v.IsText = true
		}
	}

	if strings.HasPrefix(rest, "#") {
		v.Desc = strings.TrimSpace(rest[1:])
	} else if rest != "" {
		return Value{}, fmt.Errorf("unexpected trailing text %q", rest)
	}
	return v, nil
}

func (d *Data) set(v Value) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[v.Key]; ok {
		if v.Desc == "" {
			v.Desc = d.Values[i].Desc
		}
		d.Values[i] = v
		return
	}
	d.index[v.Key] = len(d.Values)
	d.lines = append(d.lines, line{value: len(d.Values)})
	d.Values = append(d.Values, v)
}

// Get returns the value stored under key.
func (d *Data) Get(key string) (Value, bool) {
	i, ok := d.index[key]
	if !ok {
		return Value{}, false
	}
	return d.Values[i], true
}

// GetInt returns the integer value stored under key, or fallback.
func (d *Data) GetInt(key string, fallback int) int {
	v, ok := d.Get(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v.Text)
	if err != nil {
		return fallback
	}
	return n
}

// GetText returns the text stored under key, or fallback.
func (d *Data) GetText(key, fallback string) string {
	v, ok := d.Get(key)
	if !ok {
		return fallback
	}
	return v.Text
}

// SetInt stores a numeric value. An empty desc keeps the previous description.
func (d *Data) SetInt(key string, value int, desc string) {
	d.set(Value{Key: key, Text: strconv.Itoa(value), Desc: desc})
}

// SetText stores a text value. An empty desc keeps the previous description.
func (d *Data) SetText(key, text, desc string) {
	d.set(Value{Key: key, Text: text, Desc: desc, IsText: true})
}

// AddComment appends a comment line. An empty comment writes a bare '#'.
func (d *Data) AddComment(comment string) {
	d.lines = append(d.lines, line{comment: comment, value: -1})
}

// AddBlank appends an empty line.
func (d *Data) AddBlank() {
	d.lines = append(d.lines, line{isBlank: true, value: -1})
}

// Header returns the comment lines found before the first value.
func (d *Data) Header() []string {
	var out []string
	for _, l := range d.lines {
		if l.value >= 0 {
			break
		}
		if !l.isBlank {
			out = append(out, l.comment)
		}
	}
	return out
}

// Write serializes the data, aligning keys and quoting text values.
func (d *Data) Write(w io.Writer) error {
	keyWidth, valWidth := 0, 0
	for _, v := range d.Values {
		keyWidth = max(keyWidth, len(v.Key))
		valWidth = max(valWidth, len(formatValue(v)))
	}

	bw := bufio.NewWriter(w)
	for _, l := range d.lines {
		switch {
		case l.isBlank:
			bw.WriteString("\n")
		case l.value < 0:
			if l.comment == "" {
				bw.WriteString("#\n")
			} else {
				fmt.Fprintf(bw, "# %s\n", l.comment)
			}
		default:
			v := d.Values[l.value]
			if v.Desc == "" {
				fmt.Fprintf(bw, "%-*s = %s\n", keyWidth, v.Key, formatValue(v))
			} else {
				fmt.Fprintf(bw, "%-*s = %-*s    # %s\n", keyWidth, v.Key, valWidth, formatValue(v), v.Desc)
			}
		}
	}
	return bw.Flush()
}

// Save writes the data to path, creating or truncating the file.
func (d *Data) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func formatValue(v Value) string {
	if v.IsText {
		return quote(v.Text)
	}
	return v.Text
}

// quote wraps s in double quotes. Quotes are escaped with a backslash, and a
// backslash is doubled only where it precedes a quote, another backslash or
// the closing quote, so Windows paths stay as typed.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\' && (i+1 == len(s) || s[i+1] == '"' || s[i+1] == '\\'):
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// unquote reads the quoted value at the start of s and returns its text and
// the number of bytes consumed. \" and \\ are unescaped, any other backslash
// is kept.
func unquote(s string) (string, int, bool) {
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			return b.String(), i + 1, true
		case c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\'):
			i++
			b.WriteByte(s[i])
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, false
}
