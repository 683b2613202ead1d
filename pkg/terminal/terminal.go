// Package terminal describes the gnuplot output device.
//
// A [Terminal] contributes two optional commands to a compiled script:
// "set term <type>" when Type is non-empty and "set output '<path>'" when
// Output is non-empty. [Spec] is the plain value form; the constructors
// cover the devices plotscript renders most often.
package terminal

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/plotscript/pkg/errors"
)

// Terminal is the device descriptor consumed by the compiler.
type Terminal interface {
	// Type is the terminal type with its options, e.g. "pngcairo size 800,600".
	// Empty leaves gnuplot's default terminal in place.
	Type() string

	// Output is the output file path. Empty writes to the engine's stdout.
	Output() string
}

// Spec is a Terminal value.
type Spec struct {
	Device string `json:"type,omitempty" toml:"type" yaml:"type"`
	Path   string `json:"output,omitempty" toml:"output" yaml:"output"`
}

// Type implements Terminal.
func (s Spec) Type() string { return s.Device }

// Output implements Terminal.
func (s Spec) Output() string { return s.Path }

// Name returns the bare terminal name without options.
func (s Spec) Name() string {
	name, _, _ := strings.Cut(strings.TrimSpace(s.Device), " ")
	return name
}

// Validate checks the output path. The type is passed to gnuplot verbatim.
func (s Spec) Validate() error {
	if strings.ContainsAny(s.Device, "\r\n") {
		return errors.New(errors.ErrCodeInvalidTerminal, "terminal type cannot span lines: %q", s.Device)
	}
	if s.Path == "" {
		return nil
	}
	return errors.ValidatePath(s.Path)
}

// WithOutput returns a copy of s writing to path.
func (s Spec) WithOutput(path string) Spec {
	s.Path = path
	return s
}

// Default leaves both the device and the output untouched.
func Default() Spec { return Spec{} }

// PNG renders a width x height PNG image to path.
func PNG(path string, width, height int) Spec {
	return Spec{Device: fmt.Sprintf("png size %d,%d", width, height), Path: path}
}

// SVG renders a width x height SVG document to path.
func SVG(path string, width, height int) Spec {
	return Spec{Device: fmt.Sprintf("svg size %d,%d", width, height), Path: path}
}

// PDF renders a PDF document to path.
func PDF(path string) Spec {
	return Spec{Device: "pdfcairo", Path: path}
}

// Dumb renders ASCII art of width x height characters to stdout.
func Dumb(width, height int) Spec {
	return Spec{Device: fmt.Sprintf("dumb size %d,%d", width, height)}
}

// extensions maps terminal names to file extensions.
var extensions = map[string]string{
	"png":        ".png",
	"pngcairo":   ".png",
	"svg":        ".svg",
	"pdf":        ".pdf",
	"pdfcairo":   ".pdf",
	"jpeg":       ".jpg",
	"gif":        ".gif",
	"dumb":       ".txt",
	"postscript": ".ps",
	"epscairo":   ".eps",
}

// Names returns the terminal names with a known file extension, sorted.
func Names() []string {
	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Extension returns the file extension for the terminal's output, falling
// back to the output path's own extension and then to ".out".
func Extension(t Terminal) string {
	name, _, _ := strings.Cut(strings.TrimSpace(t.Type()), " ")
	if ext, ok := extensions[name]; ok {
		return ext
	}
	if ext := filepath.Ext(t.Output()); ext != "" {
		return ext
	}
	return ".out"
}
