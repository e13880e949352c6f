package render

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"housingdash/internal/geometry"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// File names, without extension, used by WriteAll.
const (
	CityFundingFile       = "city_funding"
	ProvincialFundingFile = "provincial_funding"
	CumulativeFundingFile = "cumulative_funding"
)

// Charts is the set of dashboard charts to write. Nil entries are skipped.
type Charts struct {
	Bar  *geometry.BarChart
	Pie  *geometry.PieChart
	Line *geometry.LineChart
}

// WriteAll writes every non-nil chart into dir in parallel and returns the
// written paths in name order. dir is created if needed. The first failure
// cancels the remaining writes.
func (r *Renderer) WriteAll(ctx context.Context, dir string, charts Charts) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	type job struct {
		name  string
		title string
		paint func(io.Writer) error
	}
	var jobs []job
	if charts.Bar != nil {
		jobs = append(jobs, job{CityFundingFile, "City Funding", func(w io.Writer) error {
			return r.Bar(w, *charts.Bar, "City Funding")
		}})
	}
	if charts.Pie != nil {
		jobs = append(jobs, job{ProvincialFundingFile, "Provincial Funding", func(w io.Writer) error {
			return r.Pie(w, *charts.Pie, "Provincial Funding")
		}})
	}
	if charts.Line != nil {
		jobs = append(jobs, job{CumulativeFundingFile, "Cumulative Funding", func(w io.Writer) error {
			return r.Line(w, *charts.Line, "Cumulative Funding")
		}})
	}

	paths := make([]string, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		path := filepath.Join(dir, j.name+r.format.Ext())
		paths[i] = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := writeFile(path, j.paint); err != nil {
				return fmt.Errorf("%s: %w", j.title, err)
			}
			r.logger.Info("chart written", zap.String("path", path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func writeFile(path string, paint func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := paint(bw); err != nil {
		return err
	}
	return bw.Flush()
}
