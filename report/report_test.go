package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jhnwu3/Sig-GMM/stats"
)

func ref(v float64) *float64 { return &v }

func samplePoints() []PlotPoint {
	return []PlotPoint{
		{Position: 1, Label: "kbirth", Result: stats.IntervalResult{Center: 0.236, HalfWidth: 0.016}, Reference: ref(0.24)},
		{Position: 2, Label: "kdeath", Result: stats.IntervalResult{Center: 0.812, HalfWidth: 0.021}, Reference: ref(0.81)},
	}
}

func TestChartWritePNG(t *testing.T) {
	c := NewChart("Confidence Intervals For t=1")
	require.NoError(t, c.Add(samplePoints()...))

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf, "png")
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestChartWithoutReferences(t *testing.T) {
	c := NewChart("no truth")
	require.NoError(t, c.Add(PlotPoint{Position: 1, Label: "kbirth",
		Result: stats.IntervalResult{Center: 0.24}}))
	var buf bytes.Buffer
	_, err := c.WriteTo(&buf, "svg")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
	assert.NotContains(t, buf.String(), "true value")
}

func TestChartNoPoints(t *testing.T) {
	c := NewChart("empty")
	assert.ErrorIs(t, c.Add(), ErrNoPoints)
	_, err := c.WriteTo(&bytes.Buffer{}, "png")
	assert.ErrorIs(t, err, ErrNoPoints)
	assert.ErrorIs(t, Render(nil, "empty", filepath.Join(t.TempDir(), "x.png")), ErrNoPoints)
}

func TestRenderSavesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "6cells_estimates.png")
	require.NoError(t, Render(samplePoints(), "Confidence Intervals For t=1", out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
}

func TestSaveRejectsMissingExtension(t *testing.T) {
	c := NewChart("t")
	require.NoError(t, c.Add(samplePoints()...))
	assert.Error(t, c.Save(filepath.Join(t.TempDir(), "chart")))
}

func TestSaveUnwritableDirectory(t *testing.T) {
	c := NewChart("t")
	require.NoError(t, c.Add(samplePoints()...))
	assert.Error(t, c.Save(filepath.Join(t.TempDir(), "missing", "chart.png")))
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintSummary(&buf, samplePoints()))

	var got struct {
		Intervals []summaryEntry `yaml:"intervals"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Intervals, 2)
	assert.Equal(t, "kdeath", got.Intervals[1].Label)
	assert.InDelta(t, 0.791, got.Intervals[1].Lower, 1e-9)
	require.NotNil(t, got.Intervals[0].Reference)
	assert.Equal(t, 0.24, *got.Intervals[0].Reference)
}

func TestPrintHistograms(t *testing.T) {
	var buf bytes.Buffer
	cols := []stats.Sample{
		{0.21, 0.25, 0.23, 0.27, 0.24, 0.22},
		{0.81, 0.81},
	}
	require.NoError(t, PrintHistograms(&buf, []string{"kbirth"}, cols, 4))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "kbirth (n=6)\n"))
	assert.Contains(t, out, "column 1 (n=2)")
	assert.Contains(t, out, "all values 0.81")
}
