package main

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// A Reconstructor recovers cable centerlines from the pairs of parallel
// B-spline rails that a CAD exporter writes for each cable.
//
// Reconstruction is a pure function of the exchange file and the
// configuration; a Reconstructor may be reused for any number of files.
type Reconstructor struct {
	cfg Config
	log *zap.Logger
	m   *runMetrics
}

type Option func(*Reconstructor)

func WithLogger(l *zap.Logger) Option {
	return func(r *Reconstructor) { r.log = l }
}

func WithMetrics(m *runMetrics) Option {
	return func(r *Reconstructor) { r.m = m }
}

func NewReconstructor(cfg Config, opts ...Option) *Reconstructor {
	r := &Reconstructor{cfg: cfg, log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// A Result is the outcome of one reconstruction.
type Result struct {
	Cables      []*Cable
	Diagnostics []Diagnostic

	Entities  int // Entity statements in the file
	Splines   int // B-spline curves extracted
	Discarded int // Cables dropped as noise
	Stitched  int // Segments absorbed by stitching
}

func (r *Reconstructor) ReconstructFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.ReconstructReader(f)
}

func (r *Reconstructor) ReconstructReader(rd io.Reader) (*Result, error) {
	store, err := ReadSTEP(rd)
	if err != nil {
		return nil, err
	}
	return r.Reconstruct(store), nil
}

// Reconstruct runs the full pipeline over an already parsed store.
func (r *Reconstructor) Reconstruct(store *EntityStore) *Result {
	cfg := &r.cfg
	diags := &diagSink{log: r.log, m: r.m}
	for _, d := range store.Duplicates {
		diags.entity(DiagDuplicateEntity, d.ID, d)
	}

	res := newResolver(store, diags)
	splines := extractSplines(store, res)
	r.m.parsed(store.Len(), len(splines))
	r.log.Debug("extracted splines", zap.Int("entities", store.Len()), zap.Int("splines", len(splines)))

	// Pair and chain in one pass so that splines taken by a cable are
	// no longer candidates for the next one.
	used := make(usedSet)
	var cables []*Cable
	for i := range splines {
		if used[i] {
			continue
		}
		p := pairSpline(splines, i, used, cfg)
		if !p.beginsCable() {
			continue
		}
		c := chainCable(splines, i, p, used, cfg)
		if c.Capped {
			diags.cable(DiagRunawayChain, c, &RunawayChainError{Stage: "chain", Steps: cfg.MaxChainSteps})
		}
		r.log.Debug("chained cable",
			zap.Int("start", splines[i].ID),
			zap.Int("segments", len(c.Rail1)),
			zap.Float64("diameter", c.Diameter))
		cables = append(cables, c)
	}
	for _, c := range cables {
		c.Centerline = buildCenterline(c, cfg.MaxDistance)
	}

	out := &Result{Entities: store.Len(), Splines: len(splines)}
	if cfg.AttachSegments {
		cables, out.Stitched = stitchCables(cables, cfg, diags)
		for _, c := range cables {
			c.Centerline = buildCenterline(c, cfg.MaxDistance)
		}
		r.m.absorbed(out.Stitched)
		r.log.Debug("stitched segments", zap.Int("absorbed", out.Stitched))
	}

	for i, c := range cables {
		if err := checkRails(c); err != nil {
			diags.cable(DiagMalformedCable, c, err)
			continue
		}
		if len(c.Centerline) < cfg.MinPoints || len(c.Rail1) < cfg.MinSplines {
			out.Discarded++
			r.m.noise()
			r.log.Debug("discarded cable as noise",
				zap.Int("cable", i),
				zap.Int("points", len(c.Centerline)),
				zap.Int("segments", len(c.Rail1)))
			continue
		}
		r.m.cable(c)
		out.Cables = append(out.Cables, c)
	}
	out.Diagnostics = diags.diags
	return out
}

// checkRails verifies that a cable's rails pair up spline for spline.
func checkRails(c *Cable) error {
	if len(c.Rail1) != len(c.Rail2) {
		return &MalformedCableError{Start: c.Start(), Rail1: len(c.Rail1), Rail2: len(c.Rail2)}
	}
	return nil
}
