package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/shirt-mockup-mcp/internal/detection"
	"github.com/ironsheep/shirt-mockup-mcp/internal/imaging"
	"github.com/ironsheep/shirt-mockup-mcp/internal/placement"
)

// ErrDuplicateOutput is recorded for a pair whose output path was already
// claimed by an earlier pair in the same run.
var ErrDuplicateOutput = errors.New("duplicate output name")

// Source is a decoded design or template with the label used in output names.
type Source struct {
	Label string
	Path  string
	Image image.Image
}

// LoadError reports a file that could not be turned into a Source.
type LoadError struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Err   error  `json:"-"`
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadSources decodes paths through cache. Labels default to the file stem;
// labels maps a path to an override. Files that fail to decode are returned
// as LoadErrors and do not stop the remaining files from loading.
func LoadSources(cache *imaging.ImageCache, paths []string, labels map[string]string) ([]Source, []*LoadError) {
	sources := make([]Source, 0, len(paths))
	var failed []*LoadError

	for _, p := range paths {
		label := imaging.Label(p)
		if l, ok := labels[p]; ok && l != "" {
			label = l
		}

		img, err := cache.Load(p)
		if err != nil {
			failed = append(failed, &LoadError{Path: p, Label: label, Err: err})
			continue
		}
		sources = append(sources, Source{Label: label, Path: p, Image: img})
	}
	return sources, failed
}

// Outcome is the result of compositing one design onto one template.
type Outcome struct {
	Design     string                  `json:"design"`
	Template   string                  `json:"template"`
	Category   placement.Category      `json:"category"`
	Detected   bool                    `json:"detected"`
	Rect       *detection.BoundingRect `json:"rect,omitempty"`
	Result     placement.Result        `json:"placement"`
	OutputPath string                  `json:"output_path,omitempty"`
	Error      string                  `json:"error,omitempty"`

	// Err is the failure, if any. Error carries its text for JSON output.
	Err error `json:"-"`

	// Image holds the composite when the runner has no output directory.
	Image *image.NRGBA `json:"-"`
}

// OK reports whether the pair was rendered.
func (o *Outcome) OK() bool {
	return o.Err == nil
}

func (o *Outcome) fail(err error) {
	o.Err = err
	o.Error = err.Error()
}

// Report aggregates a batch run. Outcomes are ordered design-major in the
// order the designs and templates were given.
type Report struct {
	Outcomes  []Outcome `json:"outcomes"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
}

// Failures returns the outcomes that did not render.
func (r *Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// Runner composites every design onto every template.
//
// Print-area detection runs once per template and is shared by every design.
// Pairs are rendered concurrently on at most Workers goroutines; source
// images are only read, so a Runner can share them with other readers.
type Runner struct {
	// Profiles supplies placement parameters per template category.
	Profiles placement.Profiles

	// Detect configures print-area detection.
	Detect detection.Options

	// Filter names the resampling filter (see placement.FilterByName).
	Filter string

	// Workers bounds concurrency. Zero or negative means runtime.NumCPU().
	Workers int

	// Layout arranges files under OutDir.
	Layout Layout

	// OutDir receives PNG files. When empty, composites are returned in
	// Outcome.Image instead of being written.
	OutDir string
}

// Run renders all pairs. It returns an error only when the runner itself is
// misconfigured; per-pair failures are recorded in the report and logged.
//
// Cancelling ctx stops new pairs from being scheduled. Pairs that never ran
// carry ctx's error.
func (r *Runner) Run(ctx context.Context, designs, templates []Source) (*Report, error) {
	filter, err := placement.FilterByName(r.Filter)
	if err != nil {
		return nil, err
	}
	if err := r.Profiles.Validate(); err != nil {
		return nil, fmt.Errorf("invalid placement profiles: %w", err)
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rects := r.detectAll(ctx, templates, workers)

	report := &Report{Outcomes: make([]Outcome, len(designs)*len(templates))}
	claimed := make(map[string]bool)

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for di, d := range designs {
		for ti, t := range templates {
			o := &report.Outcomes[di*len(templates)+ti]
			o.Design = d.Label
			o.Template = t.Label
			o.Rect = rects[ti]
			o.Detected = rects[ti] != nil

			var params placement.Params
			o.Category, params = r.Profiles.ForLabel(t.Label)

			if err := ctx.Err(); err != nil {
				o.fail(err)
				continue
			}

			var path string
			if r.OutDir != "" {
				path = OutputPath(r.OutDir, r.Layout, d.Label, t.Label)
				if claimed[path] {
					o.fail(fmt.Errorf("%w: %s", ErrDuplicateOutput, path))
					continue
				}
				claimed[path] = true
			}

			d, t := d, t
			g.Go(func() error {
				r.render(ctx, o, d, t, params, filter, path)
				return nil
			})
		}
	}
	_ = g.Wait()

	for i := range report.Outcomes {
		o := &report.Outcomes[i]
		if o.OK() {
			report.Succeeded++
			continue
		}
		report.Failed++
		log.Printf("mockup %s x %s failed: %v", o.Design, o.Template, o.Err)
	}
	return report, nil
}

// detectAll finds the print area of every template. A nil entry means no
// print area was found and placement falls back to centering.
func (r *Runner) detectAll(ctx context.Context, templates []Source, workers int) []*detection.BoundingRect {
	rects := make([]*detection.BoundingRect, len(templates))

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, t := range templates {
		if ctx.Err() != nil {
			break
		}
		if t.Image == nil {
			continue
		}
		i, t := i, t
		g.Go(func() error {
			if rect, ok := detection.DetectPrintArea(t.Image, r.Detect); ok {
				rects[i] = &rect
			}
			return nil
		})
	}
	_ = g.Wait()
	return rects
}

func (r *Runner) render(ctx context.Context, o *Outcome, d, t Source, params placement.Params, filter placement.Filter, path string) {
	if err := ctx.Err(); err != nil {
		o.fail(err)
		return
	}
	if d.Image == nil || t.Image == nil {
		o.fail(errors.New("source image not loaded"))
		return
	}

	out, res, err := placement.Composite(d.Image, t.Image, o.Rect, params, placement.WithFilter(filter))
	if err != nil {
		o.fail(err)
		return
	}
	o.Result = res

	if path == "" {
		o.Image = out
		return
	}
	if err := imaging.SavePNG(out, path); err != nil {
		o.fail(err)
		return
	}
	o.OutputPath = path
}
