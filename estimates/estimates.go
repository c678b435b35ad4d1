// Package estimates reads the table of simulated parameter estimates
// written by the estimator: one row per trial, one comma-separated
// column per rate parameter, no header.
package estimates

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/jhnwu3/Sig-GMM/stats"
)

const FileSuffix = "_estimates"

var (
	ErrMissingFile    = errors.New("estimates file cannot be read")
	ErrMalformedTable = errors.New("malformed estimates table")
)

// Table holds trials as rows and parameters as columns.
type Table struct {
	m *mat.Dense
}

// Path returns the location of the estimates file for a data set.
func Path(dir, name string) string {
	return filepath.Join(dir, name+FileSuffix+".csv")
}

// Load opens and parses the estimates file at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingFile, err)
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rows, cols := t.Dims()
	log.Info().Str("path", path).Int("trials", rows).Int("parameters", cols).Msg("loaded-estimates")
	return t, nil
}

// Read parses a headerless comma-separated table of floats. Blank
// lines are skipped. Empty fields and "nan" become NaN, like numpy's
// genfromtxt; they are rejected later when a column is estimated.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var data []float64
	rows, cols := 0, 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedTable, err)
		}
		if rows == 0 {
			cols = len(record)
		}
		for j, field := range record {
			v, err := parseField(field)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %q",
					ErrMalformedTable, rows+1, j+1, field)
			}
			data = append(data, v)
		}
		rows++
	}
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedTable)
	}
	return &Table{m: mat.NewDense(rows, cols, data)}, nil
}

func parseField(field string) (float64, error) {
	field = strings.TrimSpace(strings.TrimRight(field, "\r\x00"))
	if field == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(field, 64)
}

// Dims returns the number of trials and parameters.
func (t *Table) Dims() (rows, cols int) {
	return t.m.Dims()
}

// Column copies out the observations of parameter j.
func (t *Table) Column(j int) stats.Sample {
	return mat.Col(nil, j, t.m)
}

// Columns returns every parameter column in order.
func (t *Table) Columns() []stats.Sample {
	_, c := t.m.Dims()
	cols := make([]stats.Sample, c)
	for j := range cols {
		cols[j] = t.Column(j)
	}
	return cols
}

// Summarize streams each column through a running statistic and logs
// its population standard deviation.
func (t *Table) Summarize() []*stats.Statistic {
	r, c := t.m.Dims()
	out := make([]*stats.Statistic, c)
	for j := range out {
		out[j] = &stats.Statistic{}
		for i := 0; i < r; i++ {
			out[j].Push(t.m.At(i, j))
		}
		log.Debug().Int("column", j).Float64("mean", out[j].Mean()).
			Float64("stdev", out[j].PopStdev()).Msg("column-summary")
	}
	return out
}
