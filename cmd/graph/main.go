package main

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/jhnwu3/Sig-GMM/config"
	"github.com/jhnwu3/Sig-GMM/estimates"
	"github.com/jhnwu3/Sig-GMM/report"
	"github.com/jhnwu3/Sig-GMM/stats"
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	setupLogging(cfg.GetBool(config.ConfigDebug))
	log.Debug().Interface("settings", cfg.AllSettings()).Msg("loaded-config")

	if path := cfg.GetString(config.ConfigCPUProfile); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Error().Err(err).Msg("graph-failed")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

// run loads the estimates for the selected data set, computes an
// interval per column and writes the chart.
func run(cfg *config.Config, stdout io.Writer) error {
	name, tag, err := cfg.Selectors()
	if err != nil {
		return err
	}
	z, err := cfg.ZScore()
	if err != nil {
		return err
	}
	width, height, err := cfg.ImageSize()
	if err != nil {
		return err
	}

	table, err := estimates.Load(estimates.Path(cfg.GetString(config.ConfigDataDir), name))
	if err != nil {
		return err
	}
	if cfg.GetBool(config.ConfigDebug) {
		table.Summarize()
	}
	cols := table.Columns()
	labels := cfg.Labels(len(cols))
	refs, err := cfg.References(len(cols))
	if err != nil {
		return err
	}

	results, err := stats.EstimateColumns(cols, z)
	if err != nil {
		return err
	}
	if bins := cfg.GetInt(config.ConfigHistogramBins); bins > 0 {
		if err := report.PrintHistograms(stdout, labels, cols, bins); err != nil {
			return err
		}
	}

	points := lo.Map(results, func(r stats.IntervalResult, i int) report.PlotPoint {
		log.Info().Str("parameter", labels[i]).Float64("mean", r.Center).
			Float64("half-width", r.HalfWidth).Msg("interval")
		return report.PlotPoint{
			Position:  float64(i + 1),
			Label:     labels[i],
			Result:    r,
			Reference: refs[i],
		}
	})

	if cfg.GetBool(config.ConfigSummary) {
		if err := report.PrintSummary(stdout, points); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.GetString(config.ConfigOutputDir), 0o755); err != nil {
		return err
	}
	chart := report.NewChart(cfg.Title(tag))
	chart.Width, chart.Height = width, height
	if err := chart.Add(points...); err != nil {
		return err
	}
	return chart.Save(cfg.OutputPath(name))
}
