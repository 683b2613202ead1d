package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotscript/pkg/cache"
	"github.com/matzehuels/plotscript/pkg/config"
	"github.com/matzehuels/plotscript/pkg/engine"
	"github.com/matzehuels/plotscript/pkg/errors"
	"github.com/matzehuels/plotscript/pkg/observability"
	"github.com/matzehuels/plotscript/pkg/script"
	"github.com/matzehuels/plotscript/pkg/terminal"
)

// Runner compiles and renders descriptions with caching.
//
// The Runner holds no per-request state, so one Runner may serve several
// goroutines as long as its Cache does. Each call builds its own Document.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Engine *engine.Engine
	Logger *log.Logger
}

// NewRunner creates a runner.
// A nil cache disables caching, a nil keyer uses DefaultKeyer and a nil
// logger uses log.Default(). A nil engine limits the runner to Compile.
func NewRunner(c cache.Cache, keyer cache.Keyer, eng *engine.Engine, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Engine: eng, Logger: logger}
}

// Compile builds the document and compiles it for the description's terminal.
func (r *Runner) Compile(ctx context.Context, desc *config.Description) (*Result, error) {
	doc, err := desc.Build()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	s, err := r.compile(ctx, doc, desc.Terminal)
	if err != nil {
		return nil, err
	}

	res := &Result{Script: s, Graphs: len(doc.Graphs())}
	res.Stats.CompileTime = time.Since(start)
	r.Logger.Debug("compiled script",
		"graphs", res.Graphs,
		"bytes", len(s),
		"duration", res.Stats.CompileTime)
	return res, nil
}

func (r *Runner) compile(ctx context.Context, doc *script.Document, term terminal.Terminal) (string, error) {
	hooks := observability.Pipeline()
	graphs := len(doc.Graphs())
	start := time.Now()
	hooks.OnCompileStart(ctx, graphs)
	s, err := doc.Compile(term)
	hooks.OnCompileComplete(ctx, graphs, len(s), time.Since(start), err)
	return s, err
}

// Render compiles the description and runs it through the engine.
//
// The engine writes into a temporary file that replaces the terminal's
// output path; the file's contents become Result.Artifact. Artifacts are
// cached by the script compiled without an output path, so the same plot
// rendered to different destinations shares one entry.
func (r *Runner) Render(ctx context.Context, desc *config.Description, opts RenderOptions) (*Result, error) {
	if r.Engine == nil {
		return nil, errors.New(errors.ErrCodeEngineNotFound, "no plotting engine configured")
	}
	term := desc.Terminal
	if term.Type() == "" {
		return nil, errors.New(errors.ErrCodeInvalidTerminal, "rendering needs a terminal type (e.g. \"png size 800,600\")")
	}

	res, err := r.Compile(ctx, desc)
	if err != nil {
		return nil, err
	}
	res.Extension = terminal.Extension(term)

	doc, err := desc.Build()
	if err != nil {
		return nil, err
	}
	keyScript, err := doc.Compile(term.WithOutput(""))
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(keyScript)), cache.ArtifactKeyOpts{
		Terminal: term.Type(),
		Engine:   r.Engine.String(),
	})

	cacheHooks := observability.Cache()
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			res.Artifact = data
			res.Cached = true
			r.Logger.Debug("artifact cache hit", "terminal", term.Name())
			return res, nil
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	artifact, warnings, err := r.run(ctx, doc, term)
	res.Stats.RenderTime = time.Since(start)
	if err != nil {
		return nil, err
	}
	res.Artifact = artifact
	res.Warnings = warnings

	for _, w := range warnings {
		r.Logger.Warn("engine", "message", w)
	}
	r.Logger.Info("rendered plot",
		"terminal", term.Name(),
		"bytes", len(artifact),
		"duration", res.Stats.RenderTime)

	if err := r.Cache.Set(ctx, key, artifact, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, "artifact", len(artifact))
	}
	return res, nil
}

// run executes one engine invocation against a temporary output file.
func (r *Runner) run(ctx context.Context, doc *script.Document, term terminal.Spec) ([]byte, []string, error) {
	tmp, err := os.CreateTemp("", "plotscript-*"+terminal.Extension(term))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "create output file")
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(path)

	s, err := r.compile(ctx, doc, term.WithOutput(path))
	if err != nil {
		return nil, nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, term.Type())
	start := time.Now()
	out, err := r.Engine.Run(ctx, s)
	if err != nil {
		hooks.OnRenderComplete(ctx, term.Type(), 0, time.Since(start), err)
		return nil, nil, err
	}

	artifact, err := os.ReadFile(path)
	if err == nil && len(artifact) == 0 {
		err = errors.New(errors.ErrCodeEngineFailed, "engine produced no output for terminal %q", term.Type())
	}
	hooks.OnRenderComplete(ctx, term.Type(), len(artifact), time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return artifact, out.Warnings(), nil
}
