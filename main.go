// Command stepcable reconstructs cable harness centerlines from a STEP
// exchange file.
//
// CAD tools export a cable as two parallel B-spline "rails" running along
// opposite sides of it. stepcable finds those rail pairs, chains them end
// to end into whole cables, and averages them into centerlines that can
// be rendered or inspected as a point cloud.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by all subcommands for one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	metricsOut string

	cfg Config
	log *zap.Logger
	reg *prometheus.Registry
	m   *runMetrics
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:          "stepcable",
		Short:        "Reconstruct cable centerlines from STEP files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.finish()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (any format viper reads)")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", "console", "log format (console or json)")
	pf.StringVar(&a.metricsOut, "metrics-out", "", "write Prometheus metrics to this file")
	addConfigFlags(pf)

	root.AddCommand(
		newCablesCmd(a),
		newRenderCmd(a),
		newCloudCmd(a),
		newGraphCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log, err = newLogger(a.logLevel, a.logFormat)
	if err != nil {
		return err
	}
	a.reg = prometheus.NewRegistry()
	a.m = newRunMetrics(a.reg)
	return nil
}

func (a *app) finish() error {
	if a.log != nil {
		a.log.Sync()
	}
	if a.metricsOut == "" {
		return nil
	}
	return prometheus.WriteToTextfile(a.metricsOut, a.reg)
}

// newLogger builds a zap logger writing to stderr.
func newLogger(level, format string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("bad log level: %w", err)
	}
	zc.Level = lvl
	switch format {
	case "console":
		zc.Encoding = "console"
	case "json":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("bad log format %q", format)
	}
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

func (a *app) reconstruct(path string) (*Result, error) {
	r := NewReconstructor(a.cfg, WithLogger(a.log.With(zap.String("file", path))), WithMetrics(a.m))
	start := time.Now()
	res, err := r.ReconstructFile(path)
	if err != nil {
		return nil, err
	}
	a.log.Info("reconstructed",
		zap.Int("cables", len(res.Cables)),
		zap.Int("diagnostics", len(res.Diagnostics)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// createOutput opens path for writing, or returns stdout for "" or "-".
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func newCablesCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "cables FILE",
		Short: "List reconstructed cables and diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.reconstruct(args[0])
			if err != nil {
				return err
			}
			switch format {
			case "text":
				return writeSummary(cmd.OutOrStdout(), res)
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summarize(res))
			}
			return fmt.Errorf("unknown format %q", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text or json)")
	return cmd
}

type cableSummary struct {
	Segments int     `json:"segments"`
	Diameter float64 `json:"diameter"`
	Points   int     `json:"points"`
	Capped   bool    `json:"capped,omitempty"`
}

type runSummary struct {
	Entities    int            `json:"entities"`
	Splines     int            `json:"splines"`
	Discarded   int            `json:"discarded"`
	Stitched    int            `json:"stitched"`
	Fingerprint string         `json:"fingerprint"`
	Cables      []cableSummary `json:"cables"`
	Diagnostics []string       `json:"diagnostics,omitempty"`
}

func summarize(res *Result) runSummary {
	s := runSummary{
		Entities:    res.Entities,
		Splines:     res.Splines,
		Discarded:   res.Discarded,
		Stitched:    res.Stitched,
		Fingerprint: Fingerprint(res.Cables),
	}
	for _, c := range res.Cables {
		s.Cables = append(s.Cables, cableSummary{len(c.Rail1), c.Diameter, len(c.Centerline), c.Capped})
	}
	for _, d := range res.Diagnostics {
		s.Diagnostics = append(s.Diagnostics, d.String())
	}
	return s
}

func writeSummary(w io.Writer, res *Result) error {
	s := summarize(res)
	fmt.Fprintf(w, "%d entities, %d splines, %d cables (%d discarded, %d stitched)\n",
		s.Entities, s.Splines, len(s.Cables), s.Discarded, s.Stitched)
	for i, c := range s.Cables {
		capped := ""
		if c.Capped {
			capped = " (capped)"
		}
		fmt.Fprintf(w, "  cable %d: %d segments, diameter %.3f, %d points%s\n", i+1, c.Segments, c.Diameter, c.Points, capped)
	}
	for _, d := range s.Diagnostics {
		fmt.Fprintf(w, "  warning: %s\n", d)
	}
	_, err := fmt.Fprintf(w, "fingerprint %s\n", s.Fingerprint)
	return err
}

func newRenderCmd(a *app) *cobra.Command {
	var out, format string
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Write reconstructed cables for a renderer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.reconstruct(args[0])
			if err != nil {
				return err
			}
			f, err := createOutput(out)
			if err != nil {
				return err
			}
			defer f.Close()
			switch format {
			case "pov":
				pov := newPOVRenderer(f)
				if err := Deliver(res.Cables, pov); err != nil {
					return err
				}
				if err := pov.Close(); err != nil {
					return err
				}
			case "jsonl":
				if err := Deliver(res.Cables, newJSONLRenderer(f)); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "-", "output file")
	cmd.Flags().StringVar(&format, "format", "pov", "output format (pov or jsonl)")
	return cmd
}

func newCloudCmd(a *app) *cobra.Command {
	var pngPath, arrowPath, plane string
	var seed int64
	cmd := &cobra.Command{
		Use:   "cloud FILE",
		Short: "Export centerlines as a colored point cloud",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pngPath == "" && arrowPath == "" {
				return fmt.Errorf("nothing to do: pass --png and/or --arrow")
			}
			res, err := a.reconstruct(args[0])
			if err != nil {
				return err
			}
			pc := NewPointCloud(res.Cables, rand.New(rand.NewSource(seed)))
			if arrowPath != "" {
				f, err := os.Create(arrowPath)
				if err != nil {
					return err
				}
				if err := pc.WriteArrow(f); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			}
			if pngPath != "" {
				plt, err := pc.Plot(plane)
				if err != nil {
					return err
				}
				if err := plt.Save(20*vg.Centimeter, 20*vg.Centimeter, pngPath); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pngPath, "png", "", "write a projected plot (format from extension)")
	cmd.Flags().StringVar(&arrowPath, "arrow", "", "write an Arrow IPC stream of positions and colors")
	cmd.Flags().StringVar(&plane, "plane", "xy", "projection plane for --png (xy, xz, or yz)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for cable colors")
	return cmd
}

func newGraphCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Write the entity reference graph in DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()
			store, err := ReadSTEP(in)
			if err != nil {
				return err
			}
			f, err := createOutput(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := WriteReferenceDOT(f, store); err != nil {
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "-", "output file")
	return cmd
}
