// Package config loads caller-level settings files.
//
// A settings file holds the same display options as a document's config
// block, plus an optional output section:
//
//	title_height = 20
//	show_pauses  = true
//	wrap_hour    = "12:00"
//
//	[output]
//	format = "svg"
//
// TOML and YAML are accepted, chosen by file extension. Unknown keys are
// rejected so that typos do not go unnoticed.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/timetable/pkg/errors"
	"github.com/matzehuels/timetable/pkg/layout"
	"github.com/matzehuels/timetable/pkg/timetable"
)

// File is the content of a settings file.
type File struct {
	timetable.Settings `yaml:",inline"`

	Output Output `toml:"output" yaml:"output"`
}

// Output holds render options that are not per-page settings. Empty
// fields leave the caller's choice untouched.
type Output struct {
	Format        string `toml:"format" yaml:"format"`
	Engine        string `toml:"engine" yaml:"engine"`
	FontDir       string `toml:"font_dir" yaml:"font_dir"`
	RemovedMarker string `toml:"removed_marker" yaml:"removed_marker"`
	Lint          *bool  `toml:"lint" yaml:"lint"`
}

// Load reads and validates the settings file at path.
func Load(path string) (*File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "settings file %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return DecodeTOML(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "settings file %s: unknown extension %q (want .toml, .yaml or .yml)", path, ext)
	}
}

// DecodeTOML parses a TOML settings file.
func DecodeTOML(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSettings, err, "toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidSettings, "toml: unknown keys %s", strings.Join(keys, ", "))
	}
	return &f, f.Validate()
}

// DecodeYAML parses a YAML settings file. An empty document yields an
// empty File.
func DecodeYAML(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidSettings, err, "yaml")
	}
	return &f, f.Validate()
}

// Validate checks ranges the decoders cannot express.
func (f *File) Validate() error {
	s := f.Settings
	for name, v := range map[string]*float64{
		"title_height": s.TitleHeight,
		"hours_width":  s.HoursWidth,
		"day_height":   s.DayHeight,
	} {
		if v != nil && *v < 0 {
			return errors.New(errors.ErrCodeInvalidSettings, "%s must not be negative, got %g", name, *v)
		}
	}
	if s.HourInterval != nil && s.HourInterval.Total() <= 0 {
		return errors.New(errors.ErrCodeInvalidSettings, "hour_interval must be positive, got %s", s.HourInterval)
	}
	if _, err := layout.CompileOrdinals(s.Ordinals); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSettings, err, "ordinals")
	}
	if strings.ContainsAny(f.Output.RemovedMarker, " \t\n") {
		return errors.New(errors.ErrCodeInvalidSettings, "removed_marker must not contain spaces: %q", f.Output.RemovedMarker)
	}
	return nil
}
