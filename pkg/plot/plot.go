// Package plot renders experiment data as scatter plots with optional
// error bars and logarithmic axes. The gonum renderer sits behind a
// small interface so output backends can be swapped in tests.
package plot

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/exfortools/exfortab/pkg/errors"
	"github.com/exfortools/exfortab/pkg/exfor"
	"github.com/exfortools/exfortab/pkg/table"
)

// Options controls the rendered figure. The zero value gives linear axes
// at the default 9x6 inch size.
type Options struct {
	XLog   bool
	YLog   bool
	Title  string
	Width  vg.Length
	Height vg.Length
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w == 0 {
		w = 9 * vg.Inch
	}
	if h == 0 {
		h = 6 * vg.Inch
	}
	return w, h
}

// Plotter renders experiment records to an image file.
type Plotter interface {
	// PlotRecord renders one record, titled by the record itself.
	PlotRecord(rec *exfor.Record, path string, opts Options) error
	// PlotRecords renders several records on shared axes with a legend
	// keyed by X4 identifier. All records must share column headers.
	PlotRecords(records []*exfor.Record, path string, opts Options) error
}

// NewGonum returns the gonum-backed renderer.
func NewGonum() Plotter { return gonumPlotter{} }

type gonumPlotter struct{}

func (gonumPlotter) PlotRecord(rec *exfor.Record, path string, opts Options) error {
	if rec.Data.NumRows() == 0 {
		return errors.New(errors.ErrorTypeData, "record has no data to plot")
	}
	if opts.Title == "" {
		opts.Title = rec.Title.String()
	}
	p := newFigure(rec.Data, opts)
	if err := addSeries(p, rec.Data, ""); err != nil {
		return err
	}
	return save(p, path, opts)
}

func (gonumPlotter) PlotRecords(records []*exfor.Record, path string, opts Options) error {
	if len(records) == 0 {
		return errors.New(errors.ErrorTypeData, "no records to plot")
	}
	headers := records[0].Data.Headers()
	for _, rec := range records[1:] {
		if !sameHeaders(headers, rec.Data.Headers()) {
			return errors.New(errors.ErrorTypeData, "records have mismatched column headers")
		}
	}
	if opts.Title == "" {
		opts.Title = "Experiments"
	}

	p := newFigure(records[0].Data, opts)
	for _, rec := range records {
		if err := addSeries(p, rec.Data, rec.X4ID.String()); err != nil {
			return err
		}
	}
	return save(p, path, opts)
}

func newFigure(t *table.Table, opts Options) *plot.Plot {
	p := plot.New()
	p.Title.Text = opts.Title
	headers := t.Headers()
	if len(headers) > 0 {
		p.X.Label.Text = headers[0]
	}
	if len(headers) > 1 {
		p.Y.Label.Text = headers[1]
	}
	if opts.XLog {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if opts.YLog {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	return p
}

// addSeries adds one record's points to the figure. Error bars draw per
// axis only when that uncertainty column holds at least one finite
// non-zero value; rows with a non-finite coordinate are dropped.
func addSeries(p *plot.Plot, t *table.Table, label string) error {
	if t.NumCols() < 4 {
		return errors.New(errors.ErrorTypeData, "plot needs the four positional data columns").
			WithDetail("columns", t.NumCols())
	}

	yErr := !t.AllNaNOrZero(2)
	xErr := !t.AllNaNOrZero(3)

	pts := buildPoints(t)
	if pts.Len() == 0 {
		return errors.New(errors.ErrorTypeData, "no finite points to plot")
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "building scatter series")
	}
	p.Add(scatter)
	if label != "" {
		p.Legend.Add(label, scatter)
	}

	if yErr {
		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeInternal, "building y error bars")
		}
		p.Add(bars)
	}
	if xErr {
		bars, err := plotter.NewXErrorBars(pts)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeInternal, "building x error bars")
		}
		p.Add(bars)
	}
	return nil
}

func save(p *plot.Plot, path string, opts Options) error {
	w, h := opts.size()
	if err := p.Save(w, h, path); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "saving plot").
			WithDetail("path", path)
	}
	return nil
}

// errorPoints carries coordinates plus symmetric per-point errors in the
// form the gonum error-bar plotters consume.
type errorPoints struct {
	xs, ys, xerrs, yerrs []float64
}

func buildPoints(t *table.Table) *errorPoints {
	xCol := t.FloatColumn(0)
	yCol := t.FloatColumn(1)
	yeCol := t.FloatColumn(2)
	xeCol := t.FloatColumn(3)

	pts := &errorPoints{}
	for i := range xCol {
		x, y := xCol[i], yCol[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		pts.xs = append(pts.xs, x)
		pts.ys = append(pts.ys, y)
		pts.xerrs = append(pts.xerrs, finiteOrZero(xeCol[i]))
		pts.yerrs = append(pts.yerrs, finiteOrZero(yeCol[i]))
	}
	return pts
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (e *errorPoints) Len() int                  { return len(e.xs) }
func (e *errorPoints) XY(i int) (float64, float64) { return e.xs[i], e.ys[i] }

// XError and YError return symmetric error magnitudes.
func (e *errorPoints) XError(i int) (float64, float64) { return e.xerrs[i], e.xerrs[i] }
func (e *errorPoints) YError(i int) (float64, float64) { return e.yerrs[i], e.yerrs[i] }

func sameHeaders(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
