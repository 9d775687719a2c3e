package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Sync copies the raw entries into the typed configuration. Entries with
// unknown keys are ignored.
func Sync(raw *Raw, cfg *Config) {
	for _, e := range raw.Entries {
		b, ok := lookupBinding(e.Key)
		if !ok {
			continue
		}
		switch {
		case b.text != nil:
			*b.text(cfg) = e.Text
		case b.num != nil:
			*b.num(cfg) = entryInt(e, false)
		case b.flag != nil:
			*b.flag(cfg) = entryInt(e, true) != 0
		}
	}
}

// entryInt returns the integer data of e, parsing its text when the value
// was stored quoted.
func entryInt(e Entry, flag bool) int {
	if e.Type.IsNumeric() {
		return e.Value
	}
	n, err := parseInt(e.Text, flag)
	if err != nil {
		return 0
	}
	return n
}

// SyncRaw copies the typed configuration back into the raw entries. Only
// entries already present are updated.
func SyncRaw(cfg *Config, raw *Raw) {
	for i := range raw.Entries {
		e := &raw.Entries[i]
		b, ok := lookupBinding(e.Key)
		if !ok {
			continue
		}

		switch {
		case b.text != nil:
			if e.Type.IsNumeric() {
				*e = NewEntry(e.Key, *b.text(cfg), e.Desc, true)
				continue
			}
			e.Text = *b.text(cfg)
		case b.num != nil:
			setNumeric(e, *b.num(cfg))
		case b.flag != nil:
			setNumeric(e, boolToInt(*b.flag(cfg)))
		}
	}
}

func setNumeric(e *Entry, n int) {
	if !e.Type.IsNumeric() {
		*e = NewEntry(e.Key, strconv.Itoa(n), e.Desc, false)
		return
	}
	e.setValue(n)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// NewRaw builds a raw configuration holding every known key in canonical
// order, filled from cfg.
func NewRaw(cfg *Config) *Raw {
	raw := &Raw{
		Entries: make([]Entry, 0, len(bindings)),
		Header:  fileHeader,
	}
	for _, b := range bindings {
		var e Entry
		switch {
		case b.text != nil:
			e = NewEntry(b.key, *b.text(cfg), b.desc, true)
		case b.num != nil:
			e = NewEntry(b.key, strconv.Itoa(*b.num(cfg)), b.desc, false)
		case b.flag != nil:
			e = NewEntry(b.key, strconv.Itoa(boolToInt(*b.flag(cfg))), b.desc, false)
		}
		raw.Entries = append(raw.Entries, e)
	}
	return raw
}

// Add appends the known key with its default description and an empty value.
// It fails with ErrUnknownKey for unbound keys and is a no-op when the
// entry already exists.
func (raw *Raw) Add(key string) error {
	key = canonicalKey(key)
	b, ok := lookupBinding(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if raw.Lookup(key) != nil {
		return nil
	}
	value := "0"
	if b.text != nil {
		value = ""
	}
	raw.Entries = append(raw.Entries, NewEntry(key, value, b.desc, b.text != nil))
	return nil
}

// Describe returns the description of a known key, or an empty string.
func Describe(key string) string {
	b, ok := lookupBinding(canonicalKey(key))
	if !ok {
		return ""
	}
	return strings.TrimSpace(b.desc)
}
