package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the reconstruction parameters. Distances are in file
// units (millimeters for the exporters we've seen).
type Config struct {
	// Tolerance is the slack for every geometric distance comparison.
	Tolerance float64 `mapstructure:"tolerance"`

	// PairTolerance is the allowed difference between the start-to-start
	// and end-to-end separations of two splines that form a rail pair.
	PairTolerance float64 `mapstructure:"pair-tolerance"`

	// MaxDistance is the largest gap allowed between consecutive
	// centerline points. Larger gaps are filled by interpolation.
	MaxDistance float64 `mapstructure:"max-distance"`

	// AttachSegments enables stitching cables that were broken into
	// collinear pieces.
	AttachSegments bool `mapstructure:"attach-segments"`

	// StitchForwardOnly requires a stitched segment to start ahead of
	// the previous segment's end, not merely on the same line. Disabling
	// it restores the plain collinearity test, which can join segments
	// that point at each other.
	StitchForwardOnly bool `mapstructure:"stitch-forward-only"`

	// LocalityWindow is how far apart, in declaration order, the two
	// splines continuing a cable may be.
	LocalityWindow int `mapstructure:"locality-window"`

	// MaxChainSteps caps chaining and stitching loops.
	MaxChainSteps int `mapstructure:"max-chain-steps"`

	// Cables with fewer centerline points or fewer splines per rail are
	// discarded as noise.
	MinPoints  int `mapstructure:"min-points"`
	MinSplines int `mapstructure:"min-splines"`
}

func DefaultConfig() Config {
	return Config{
		Tolerance:         0.1,
		PairTolerance:     0.01,
		MaxDistance:       0.1,
		AttachSegments:    false,
		StitchForwardOnly: true,
		LocalityWindow:    4,
		MaxChainSteps:     300,
		MinPoints:         50,
		MinSplines:        3,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("tolerance must be positive, got %v", c.Tolerance))
	}
	if c.PairTolerance <= 0 {
		errs = append(errs, fmt.Errorf("pair-tolerance must be positive, got %v", c.PairTolerance))
	}
	if c.MaxDistance <= 0 {
		errs = append(errs, fmt.Errorf("max-distance must be positive, got %v", c.MaxDistance))
	}
	if c.LocalityWindow < 1 {
		errs = append(errs, fmt.Errorf("locality-window must be at least 1, got %d", c.LocalityWindow))
	}
	if c.MaxChainSteps < 1 {
		errs = append(errs, fmt.Errorf("max-chain-steps must be at least 1, got %d", c.MaxChainSteps))
	}
	if c.MinPoints < 0 || c.MinSplines < 0 {
		errs = append(errs, errors.New("min-points and min-splines must not be negative"))
	}
	return errors.Join(errs...)
}

// addConfigFlags registers a flag for every Config key, defaulting to
// DefaultConfig.
func addConfigFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.Float64("tolerance", d.Tolerance, "geometric matching tolerance")
	fs.Float64("pair-tolerance", d.PairTolerance, "separation mismatch allowed between paired rails")
	fs.Float64("max-distance", d.MaxDistance, "maximum spacing between centerline points")
	fs.Bool("attach-segments", d.AttachSegments, "stitch collinear cable segments together")
	fs.Bool("stitch-forward-only", d.StitchForwardOnly, "only stitch segments that lie ahead of the previous one")
	fs.Int("locality-window", d.LocalityWindow, "maximum declaration distance between continuing splines")
	fs.Int("max-chain-steps", d.MaxChainSteps, "iteration cap for chaining and stitching")
	fs.Int("min-points", d.MinPoints, "discard cables with fewer centerline points")
	fs.Int("min-splines", d.MinSplines, "discard cables with fewer splines per rail")
}

// loadConfig merges defaults, an optional config file, STEPCABLE_*
// environment variables, and flags, in increasing order of precedence.
func loadConfig(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("tolerance", d.Tolerance)
	v.SetDefault("pair-tolerance", d.PairTolerance)
	v.SetDefault("max-distance", d.MaxDistance)
	v.SetDefault("attach-segments", d.AttachSegments)
	v.SetDefault("stitch-forward-only", d.StitchForwardOnly)
	v.SetDefault("locality-window", d.LocalityWindow)
	v.SetDefault("max-chain-steps", d.MaxChainSteps)
	v.SetDefault("min-points", d.MinPoints)
	v.SetDefault("min-splines", d.MinSplines)

	v.SetEnvPrefix("STEPCABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, cfg.Validate()
}
