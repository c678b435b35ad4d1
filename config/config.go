package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/jhnwu3/Sig-GMM/stats"
)

const (
	ConfigDataset       = "dataset"
	ConfigTime          = "time"
	ConfigDataDir       = "data-dir"
	ConfigOutputDir     = "output-dir"
	ConfigFormat        = "format"
	ConfigZ             = "z"
	ConfigConfidence    = "confidence"
	ConfigLabels        = "labels"
	ConfigReference     = "reference"
	ConfigTitle         = "title"
	ConfigWidth         = "width"
	ConfigHeight        = "height"
	ConfigHistogramBins = "histogram-bins"
	ConfigSummary       = "summary"
	ConfigDebug         = "debug"
	ConfigCPUProfile    = "cpu-profile"
	ConfigFile          = "config-file"
)

// ErrMalformedSelector is returned when the data-set or time selector
// is missing from the invocation.
var ErrMalformedSelector = errors.New("missing selector")

type Config struct {
	*viper.Viper
}

func DefaultConfig() *Config {
	c := &Config{}
	// Parsing no arguments cannot fail.
	_ = c.Load(nil)
	return c
}

// Load parses args and layers them over environment variables
// (SIGGMM_ prefix), an optional YAML config file and defaults.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	fs := pflag.NewFlagSet("graph", pflag.ContinueOnError)
	fs.StringP(ConfigDataset, "e", "", "data-set identifier; reads <data-dir>/<dataset>_estimates.csv")
	fs.StringP(ConfigTime, "t", "", "time tag shown in the chart title")
	fs.String(ConfigDataDir, "./frontend/graph", "directory holding estimates files")
	fs.String(ConfigOutputDir, ".", "directory the chart is written to")
	fs.String(ConfigFormat, "png", "image format: png, svg, pdf, jpg, tif")
	fs.Float64(ConfigZ, 0, "z multiplier; 0 derives it from --confidence")
	fs.Float64(ConfigConfidence, 95, "confidence level in percent")
	fs.String(ConfigLabels, "kbirth,kdeath", "comma-separated tick label per column")
	fs.String(ConfigReference, "", "comma-separated true value per column; leave an entry empty to skip it")
	fs.String(ConfigTitle, "", "chart title")
	fs.String(ConfigWidth, "6in", "image width")
	fs.String(ConfigHeight, "4in", "image height")
	fs.Int(ConfigHistogramBins, 0, "print a text histogram per column with this many bins")
	fs.Bool(ConfigSummary, false, "print the intervals as YAML")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this path")
	fs.String(ConfigFile, "", "optional YAML config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.SetEnvPrefix("siggmm")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cf := c.GetString(ConfigFile); cf != "" {
		c.SetConfigFile(cf)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

// Selectors returns the data-set identifier and the time tag. Both are
// required; no default is substituted.
func (c *Config) Selectors() (dataset, tag string, err error) {
	dataset = strings.TrimSpace(c.GetString(ConfigDataset))
	tag = strings.TrimSpace(c.GetString(ConfigTime))
	if dataset == "" {
		return "", "", fmt.Errorf("%w: -e <dataset>", ErrMalformedSelector)
	}
	if tag == "" {
		return "", "", fmt.Errorf("%w: -t <time>", ErrMalformedSelector)
	}
	return dataset, tag, nil
}

// ZScore returns the explicit z multiplier if one is set, otherwise the
// two-tailed z for the configured confidence level.
func (c *Config) ZScore() (float64, error) {
	if z := c.GetFloat64(ConfigZ); z != 0 {
		if z < 0 {
			return 0, fmt.Errorf("z must be positive, got %v", z)
		}
		return z, nil
	}
	return stats.ZForConfidence(c.GetFloat64(ConfigConfidence))
}

// Labels returns n tick labels, filling in theta<i> past the configured
// ones.
func (c *Config) Labels(n int) []string {
	configured := splitList(c.GetString(ConfigLabels))
	labels := make([]string, n)
	for i := range labels {
		if i < len(configured) && configured[i] != "" {
			labels[i] = configured[i]
		} else {
			labels[i] = "theta" + strconv.Itoa(i+1)
		}
	}
	return labels
}

// References returns n optional true values. Missing or empty entries
// are nil.
func (c *Config) References(n int) ([]*float64, error) {
	raw := splitList(c.GetString(ConfigReference))
	if len(raw) > n {
		return nil, fmt.Errorf("%d reference values for %d columns", len(raw), n)
	}
	refs := make([]*float64, n)
	for i, r := range raw {
		if r == "" {
			continue
		}
		v, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, fmt.Errorf("reference value %d: %w", i+1, err)
		}
		refs[i] = &v
	}
	return refs, nil
}

func (c *Config) Title(tag string) string {
	if t := c.GetString(ConfigTitle); t != "" {
		return t
	}
	return "Confidence Intervals For t=" + tag
}

func (c *Config) ImageSize() (w, h vg.Length, err error) {
	if w, err = vg.ParseLength(c.GetString(ConfigWidth)); err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	if h, err = vg.ParseLength(c.GetString(ConfigHeight)); err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("image size must be positive, got %v x %v", w, h)
	}
	return w, h, nil
}

// OutputPath returns where the chart for dataset is written.
func (c *Config) OutputPath(dataset string) string {
	format := strings.TrimPrefix(strings.ToLower(c.GetString(ConfigFormat)), ".")
	return filepath.Join(c.GetString(ConfigOutputDir), dataset+"_estimates."+format)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
