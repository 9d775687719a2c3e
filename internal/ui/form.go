package ui

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/raylib-tools/rpc/internal/config"
)

// Form edits the entries of a raw project configuration through a Driver.
type Form struct {
	Driver Driver
	// CheckPaths rejects File and Path values that do not exist on disk.
	CheckPaths bool
}

// NewForm returns a form prompting on the terminal.
func NewForm() *Form {
	return &Form{Driver: SurveyDriver{}}
}

// EditCategory prompts for every entry of cat, in file order, and stores the answers.
func (f *Form) EditCategory(ctx context.Context, raw *config.Raw, cat config.Category) error {
	for i := range raw.Entries {
		if raw.Entries[i].Category != cat {
			continue
		}
		if err := f.editEntry(ctx, &raw.Entries[i]); err != nil {
			return err
		}
	}
	return nil
}

// Edit asks which categories to edit, then edits each of them.
func (f *Form) Edit(ctx context.Context, raw *config.Raw) error {
	names := make([]string, len(config.Categories))
	for i, c := range config.Categories {
		names[i] = c.String()
	}
	picked, err := f.Driver.MultiSelect(ctx, SelectConfig{
		Message:  "Categories to edit",
		Options:  names,
		Defaults: []int{0},
	})
	if err != nil {
		return err
	}
	for _, idx := range picked {
		if err := f.EditCategory(ctx, raw, config.Categories[idx]); err != nil {
			return err
		}
	}
	return nil
}

func (f *Form) editEntry(ctx context.Context, e *config.Entry) error {
	label := e.Name
	if e.Platform != config.PlatformAny {
		label = e.Platform.String() + " " + label
	}

	switch e.Type {
	case config.TypeBool:
		ok, err := f.Driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: e.Value != 0,
			Help:    e.Desc,
		})
		if err != nil {
			return err
		}
		e.Value = 0
		if ok {
			e.Value = 1
		}
		e.Text = strconv.Itoa(e.Value)

	case config.TypeValue:
		s, err := f.Driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   e.Text,
			Help:      e.Desc,
			Validator: validateInt,
		})
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Key, err)
		}
		e.Value = n
		e.Text = s

	default:
		var validator func(string) error
		if f.CheckPaths && (e.Type == config.TypeFile || e.Type == config.TypePath) {
			validator = validateExists
		}
		s, err := f.Driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   e.Text,
			Help:      e.Desc,
			Validator: validator,
		})
		if err != nil {
			return err
		}
		e.Text = s
	}
	return nil
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("%q is not an integer", s)
	}
	return nil
}

func validateExists(s string) error {
	if s == "" {
		return nil
	}
	if _, err := os.Stat(s); err != nil {
		return fmt.Errorf("%s does not exist", s)
	}
	return nil
}

// SelectSource asks which code the project starts from.
func SelectSource(ctx context.Context, d Driver, def config.Source) (config.Source, error) {
	options := []string{
		config.SourceBasic.String(),
		config.SourceAdvanced.String(),
		config.SourceCustom.String(),
	}
	idx, err := d.Select(ctx, SelectConfig{
		Message:      "Project source",
		Options:      options,
		DefaultIndex: int(def),
		Help:         "basic: single file sample, advanced: screen manager sample, custom: your own files",
	})
	if err != nil {
		return def, err
	}
	if idx < 0 {
		return def, nil
	}
	return config.Source(idx), nil
}

// SelectBuildSystems asks which build systems to generate.
func SelectBuildSystems(ctx context.Context, d Driver, def []config.BuildSystem) ([]config.BuildSystem, error) {
	options := make([]string, len(config.AllBuildSystems))
	var defaults []int
	for i, bs := range config.AllBuildSystems {
		options[i] = string(bs)
		for _, sel := range def {
			if sel == bs {
				defaults = append(defaults, i)
			}
		}
	}
	picked, err := d.MultiSelect(ctx, SelectConfig{
		Message:  "Build systems",
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return def, err
	}
	out := make([]config.BuildSystem, 0, len(picked))
	for _, idx := range picked {
		out = append(out, config.AllBuildSystems[idx])
	}
	return out, nil
}
