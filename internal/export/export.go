// Package export writes an HTML table to an xlsx workbook: cell text,
// merged ranges for spanned cells, and the table's column widths and row
// heights.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/logging"
	"github.com/dshills/tablestorm/internal/table/grid"
)

// DefaultSheet is the name of the worksheet written.
const DefaultSheet = "Sheet1"

// Pixel conversions to spreadsheet units.
const (
	pxPerCharacter = 7.0
	pointsPerPx    = 0.75
)

// Sizes reports track sizes in pixels.
type Sizes interface {
	RowHeights(g *grid.Grid) []float64
	ColumnWidths(g *grid.Grid) []float64
}

// Exporter converts tables to workbooks.
type Exporter struct {
	sizes  Sizes
	sheet  string
	logger *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithSheet sets the worksheet name.
func WithSheet(name string) Option {
	return func(x *Exporter) {
		if name != "" {
			x.sheet = name
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(x *Exporter) {
		if l != nil {
			x.logger = l
		}
	}
}

// New creates an exporter.
func New(sizes Sizes, opts ...Option) *Exporter {
	x := &Exporter{sizes: sizes, sheet: DefaultSheet, logger: logging.Discard()}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Workbook builds a workbook from table. The caller closes the file.
func (x *Exporter) Workbook(table *html.Node) (*excelize.File, error) {
	g := grid.Build(table)
	details := g.Details()
	if len(details) == 0 {
		return nil, ErrEmptyTable
	}

	f := excelize.NewFile()
	if err := x.fill(f, g, details); err != nil {
		f.Close()
		return nil, err
	}
	x.logger.Info("table exported",
		"sheet", x.sheet,
		"rows", g.Rows(),
		"columns", g.Columns(),
		"cells", len(details))
	return f, nil
}

func (x *Exporter) fill(f *excelize.File, g *grid.Grid, details []grid.Detail) error {
	if x.sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, x.sheet); err != nil {
			return &SheetError{Sheet: x.sheet, Err: err}
		}
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return &SheetError{Sheet: x.sheet, Err: fmt.Errorf("creating header style: %w", err)}
	}

	for _, d := range details {
		ref, err := excelize.CoordinatesToCellName(d.Column+1, d.Row+1)
		if err != nil {
			return &SheetError{Sheet: x.sheet, Err: err}
		}
		if err := f.SetCellValue(x.sheet, ref, cellValue(d.Cell)); err != nil {
			return &SheetError{Sheet: x.sheet, Cell: ref, Err: err}
		}

		last := ref
		if d.RowSpan > 1 || d.ColSpan > 1 {
			last, err = excelize.CoordinatesToCellName(d.LastColumn()+1, d.LastRow()+1)
			if err != nil {
				return &SheetError{Sheet: x.sheet, Err: err}
			}
			if err := f.MergeCell(x.sheet, ref, last); err != nil {
				return &SheetError{Sheet: x.sheet, Cell: ref + ":" + last, Err: err}
			}
		}
		if dom.IsElement(d.Cell, "th") {
			if err := f.SetCellStyle(x.sheet, ref, last, header); err != nil {
				return &SheetError{Sheet: x.sheet, Cell: ref, Err: err}
			}
		}
	}

	for c, w := range x.sizes.ColumnWidths(g) {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return &SheetError{Sheet: x.sheet, Err: err}
		}
		if err := f.SetColWidth(x.sheet, name, name, w/pxPerCharacter); err != nil {
			return &SheetError{Sheet: x.sheet, Cell: name, Err: err}
		}
	}
	for r, h := range x.sizes.RowHeights(g) {
		if err := f.SetRowHeight(x.sheet, r+1, h*pointsPerPx); err != nil {
			return &SheetError{Sheet: x.sheet, Cell: strconv.Itoa(r + 1), Err: err}
		}
	}
	return nil
}

// cellValue returns the cell's text with whitespace collapsed; numeric
// text is written as a number.
func cellValue(cell *html.Node) any {
	text := strings.Join(strings.Fields(dom.Text(cell)), " ")
	if n, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return n
	}
	return text
}

// Write encodes the workbook of table to w.
func (x *Exporter) Write(table *html.Node, w io.Writer) error {
	f, err := x.Workbook(table)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteFile saves the workbook of table to path.
func (x *Exporter) WriteFile(table *html.Node, path string) error {
	f, err := x.Workbook(table)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	x.logger.Info("workbook saved", "path", path)
	return nil
}
