// internal/figures/registry.go
// Package figures holds the chart pipelines. Each pipeline loads its result
// files, derives the plotted series, hands a render.Figure to the configured
// renderer and prints a console summary.
package figures

import (
	"fmt"
	"io"
	"sort"

	"github.com/mwiater/inaviz/internal/appconfig"
	"github.com/mwiater/inaviz/internal/logging"
	"github.com/mwiater/inaviz/internal/render"
	"github.com/mwiater/inaviz/internal/util"
)

// Env is everything a pipeline needs from the outside world.
type Env struct {
	Config   appconfig.Config
	Renderer render.Renderer
	Out      io.Writer
}

// NewEnv builds an Env with the renderer selected by cfg.
func NewEnv(cfg appconfig.Config, out io.Writer) (Env, error) {
	r, err := render.New(cfg.Backend, cfg.RenderStyle())
	if err != nil {
		return Env{}, err
	}
	return Env{Config: cfg, Renderer: r, Out: out}, nil
}

// label returns the configured translation of key.
func (e Env) label(key string) string {
	return Label(e.Config.Language, key)
}

// Result is the outcome of a pipeline: the figure to draw and the tables
// printed alongside it.
type Result struct {
	Figure    render.Figure
	Summaries []Table
}

// Pipeline is one registered figure.
type Pipeline struct {
	Name        string
	Description string
	// Inputs returns the default input file names, resolved against the
	// results directory.
	Inputs func(cfg appconfig.Config) []string
	// Output is the default file stem under the figures directory.
	Output string
	Build  func(env Env, inputs []string) (Result, error)
}

// RunOptions overrides a pipeline's default input and output paths.
type RunOptions struct {
	Inputs []string
	Output string
}

var registry = map[string]Pipeline{}

// Register adds p to the registry; registering a name twice panics.
func Register(p Pipeline) {
	if _, dup := registry[p.Name]; dup {
		panic(fmt.Sprintf("figures: pipeline %q registered twice", p.Name))
	}
	registry[p.Name] = p
}

// Lookup returns the pipeline registered under name.
func Lookup(name string) (Pipeline, bool) {
	p, ok := registry[name]
	return p, ok
}

// All returns every registered pipeline sorted by name.
func All() []Pipeline {
	out := make([]Pipeline, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered pipeline names in order.
func Names() []string {
	all := All()
	out := make([]string, len(all))
	for i, p := range all {
		out[i] = p.Name
	}
	return out
}

// InputPaths resolves the pipeline inputs for cfg, preferring overrides.
func (p Pipeline) InputPaths(cfg appconfig.Config, overrides []string) []string {
	names := overrides
	if len(names) == 0 {
		names = p.Inputs(cfg)
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = cfg.ResultPath(n)
	}
	return out
}

// OutputPath resolves the pipeline output for cfg, preferring override.
func (p Pipeline) OutputPath(cfg appconfig.Config, override string) string {
	if override != "" {
		return override
	}
	return cfg.FigurePath(p.Output)
}

// Run executes the named pipeline and returns the written figure path.
func Run(env Env, name string, opts RunOptions) (string, error) {
	p, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown figure %q (available: %v)", name, Names())
	}
	inputs := p.InputPaths(env.Config, opts.Inputs)
	output := p.OutputPath(env.Config, opts.Output)

	logging.LogStage(name, "load", map[string]any{"inputs": inputs})
	res, err := p.Build(env, inputs)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if err := Draw(env, name, res.Figure, output); err != nil {
		return "", err
	}
	for _, t := range res.Summaries {
		if err := t.Print(env.Out); err != nil {
			return "", err
		}
	}
	return output, nil
}

// Draw renders fig to output, creating the output directory first.
func Draw(env Env, name string, fig render.Figure, output string) error {
	if err := util.EnsureParentDir(output); err != nil {
		return fmt.Errorf("%s: create output directory: %w", name, err)
	}
	logging.LogStage(name, "render", map[string]any{"output": output, "panels": len(fig.Panels)})
	if err := env.Renderer.Render(fig, output); err != nil {
		return fmt.Errorf("%s: render %s: %w", name, output, err)
	}
	return nil
}

// requireInputs checks the number of resolved input paths.
func requireInputs(inputs []string, n int) error {
	if len(inputs) != n {
		return fmt.Errorf("expected %d input file(s), got %d", n, len(inputs))
	}
	return nil
}

func fixedInputs(names ...string) func(appconfig.Config) []string {
	return func(appconfig.Config) []string { return names }
}

// color returns palette entry i of the configured style.
func (e Env) color(i int) string {
	p := e.Config.Style.Palette
	if len(p) == 0 {
		p = render.DefaultPalette
	}
	return p[i%len(p)]
}
