// Package pipeline turns plot descriptions into scripts and rendered output.
//
// The CLI and the HTTP API share this package so both compile and render
// descriptions the same way. A [Runner] has two stages:
//
//  1. Compile: build the [script.Document] and produce its script
//  2. Render: pipe the script through the plotting engine and collect the
//     output file, consulting the artifact cache first
//
// # Usage
//
//	eng, _ := engine.New("gnuplot")
//	runner := pipeline.NewRunner(cache, nil, eng, logger)
//	desc, _ := config.Load("signals.toml")
//
//	res, err := runner.Compile(ctx, desc)
//	fmt.Print(res.Script)
//
//	res, err = runner.Render(ctx, desc, pipeline.RenderOptions{})
//	os.WriteFile("signals.png", res.Artifact, 0644)
//
// [script.Document]: github.com/matzehuels/plotscript/pkg/script.Document
package pipeline

import (
	"time"
)

// RenderOptions controls a render.
type RenderOptions struct {
	// Refresh skips the cache lookup. The new artifact is still stored.
	Refresh bool
}

// Result is the outcome of Compile or Render.
type Result struct {
	// Script is the compiled script, targeting the description's terminal.
	Script string

	// Artifact is the rendered output (Render only).
	Artifact []byte

	// Extension is the file extension matching Artifact, e.g. ".png".
	Extension string

	// Graphs is the number of graphs in the document.
	Graphs int

	// Warnings holds diagnostics the engine printed while accepting the script.
	Warnings []string

	// Cached reports whether Artifact came from the cache.
	Cached bool

	Stats Stats
}

// Stats records stage timings.
type Stats struct {
	CompileTime time.Duration
	RenderTime  time.Duration
}
