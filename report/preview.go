package report

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"gopkg.in/yaml.v3"

	"github.com/jhnwu3/Sig-GMM/stats"
)

const histogramWidth = 40

// PrintHistograms writes a text histogram of each column to w.
func PrintHistograms(w io.Writer, labels []string, cols []stats.Sample, bins int) error {
	for i, col := range cols {
		label := fmt.Sprintf("column %d", i)
		if i < len(labels) {
			label = labels[i]
		}
		if _, err := fmt.Fprintf(w, "%s (n=%d)\n", label, len(col)); err != nil {
			return err
		}
		if spread(col) == 0 {
			// uniplot cannot bucket a zero-width range
			if _, err := fmt.Fprintf(w, "all values %v\n", col[0]); err != nil {
				return err
			}
			continue
		}
		h := histogram.Hist(bins, col)
		if err := histogram.Fprint(w, h, histogram.Linear(histogramWidth)); err != nil {
			return err
		}
	}
	return nil
}

func spread(col stats.Sample) float64 {
	if len(col) == 0 {
		return 0
	}
	lo, hi := col[0], col[0]
	for _, v := range col[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return hi - lo
}

type summaryEntry struct {
	Label     string   `yaml:"label"`
	Position  float64  `yaml:"position"`
	Center    float64  `yaml:"center"`
	HalfWidth float64  `yaml:"half_width"`
	Lower     float64  `yaml:"lower"`
	Upper     float64  `yaml:"upper"`
	Reference *float64 `yaml:"reference,omitempty"`
}

// PrintSummary writes the plotted intervals to w as YAML.
func PrintSummary(w io.Writer, pts []PlotPoint) error {
	entries := make([]summaryEntry, len(pts))
	for i, pt := range pts {
		entries[i] = summaryEntry{
			Label:     pt.Label,
			Position:  pt.Position,
			Center:    pt.Result.Center,
			HalfWidth: pt.Result.HalfWidth,
			Lower:     pt.Result.Lower(),
			Upper:     pt.Result.Upper(),
			Reference: pt.Reference,
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]summaryEntry{"intervals": entries}); err != nil {
		return err
	}
	return enc.Close()
}
