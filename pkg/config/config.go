// Package config loads plot document descriptions.
//
// A [Description] is the declarative form of a [script.Document]. It can be
// written in TOML, YAML or JSON:
//
//	title = "Signals"
//	pre_init = ["reset"]
//
//	[terminal]
//	type = "png size 800,600"
//	output = "signals.png"
//
//	[layout]
//	aspect = "wide"
//
//	[[set]]
//	key = "grid"
//
//	[[graph]]
//	  [[graph.axis]]
//	  name = "x"
//	  label = "time"
//	  min = 0.0
//	  max = 10.0
//
//	  [[graph.plot]]
//	  function = "sin(x)"
//	  title = "sine"
//	  style = "lines"
//
// [Description.Build] validates the description and returns the document.
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/plotscript/pkg/errors"
	"github.com/matzehuels/plotscript/pkg/terminal"
)

// Format is a description encoding.
type Format string

// Supported description encodings.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Description declares a plot document.
type Description struct {
	Title    string        `json:"title,omitempty" toml:"title" yaml:"title"`
	Terminal terminal.Spec `json:"terminal,omitempty" toml:"terminal" yaml:"terminal"`
	Layout   LayoutSpec    `json:"layout,omitempty" toml:"layout" yaml:"layout"`
	PreInit  []string      `json:"pre_init,omitempty" toml:"pre_init" yaml:"pre_init"`
	PostInit []string      `json:"post_init,omitempty" toml:"post_init" yaml:"post_init"`
	Set      []Property    `json:"set,omitempty" toml:"set" yaml:"set"`
	Unset    []string      `json:"unset,omitempty" toml:"unset" yaml:"unset"`
	Graphs   []GraphSpec   `json:"graphs,omitempty" toml:"graph" yaml:"graphs"`
}

// LayoutSpec configures the page grid. The grid is always the smallest one
// holding every graph; Aspect picks the orientation of non-square grids.
type LayoutSpec struct {
	Aspect string `json:"aspect,omitempty" toml:"aspect" yaml:"aspect"`
}

// Property is one generic "set" entry.
type Property struct {
	Key   string `json:"key" toml:"key" yaml:"key"`
	Value string `json:"value,omitempty" toml:"value" yaml:"value"`
}

// GraphSpec declares one graph.
type GraphSpec struct {
	Axes  []AxisSpec `json:"axes,omitempty" toml:"axis" yaml:"axes"`
	Plots []PlotSpec `json:"plots,omitempty" toml:"plot" yaml:"plots"`
}

// AxisSpec declares one axis.
type AxisSpec struct {
	Name   string   `json:"name" toml:"name" yaml:"name"`
	Label  string   `json:"label,omitempty" toml:"label" yaml:"label"`
	Min    *float64 `json:"min,omitempty" toml:"min" yaml:"min"`
	Max    *float64 `json:"max,omitempty" toml:"max" yaml:"max"`
	Log    bool     `json:"log,omitempty" toml:"log" yaml:"log"`
	Format string   `json:"format,omitempty" toml:"format" yaml:"format"`
}

// PlotSpec declares one series. Exactly one of Function, File and Data
// must be set.
type PlotSpec struct {
	Function string      `json:"function,omitempty" toml:"function" yaml:"function"`
	File     string      `json:"file,omitempty" toml:"file" yaml:"file"`
	Data     [][]float64 `json:"data,omitempty" toml:"data" yaml:"data"`
	Title    string      `json:"title,omitempty" toml:"title" yaml:"title"`
	NoTitle  bool        `json:"notitle,omitempty" toml:"notitle" yaml:"notitle"`
	Style    string      `json:"style,omitempty" toml:"style" yaml:"style"`
	Using    string      `json:"using,omitempty" toml:"using" yaml:"using"`
	Extra    string      `json:"extra,omitempty" toml:"extra" yaml:"extra"`
}

// Parse decodes data in the given format. Keys that match no field are
// rejected in every format.
func Parse(data []byte, format Format) (*Description, error) {
	var d Description
	var err error
	switch format {
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&d)
		if undecoded := md.Undecoded(); err == nil && len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q in toml description", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&d); err == io.EOF {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&d)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported description format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s description", format)
	}
	return &d, nil
}

// Load reads and decodes the description at path, choosing the format from
// the file extension.
func Load(path string) (*Description, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "description %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return Parse(data, format)
}

// FormatFromPath maps .toml, .yaml, .yml and .json to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer description format from %q (use .toml, .yaml or .json)", path)
}

// FormatFromContentType maps an HTTP Content-Type to a Format.
// An empty content type is read as JSON.
func FormatFromContentType(ct string) (Format, error) {
	mediaType, _, _ := strings.Cut(ct, ";")
	switch strings.TrimSpace(strings.ToLower(mediaType)) {
	case "", "application/json":
		return FormatJSON, nil
	case "application/toml", "text/toml", "application/x-toml":
		return FormatTOML, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported content type %q", ct)
}
