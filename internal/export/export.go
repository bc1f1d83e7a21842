// Package export renders finalized orders and history summaries into
// fixed-layout PDF documents, using the Finnish product names regardless
// of the UI language.
package export

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/cleankey/api/internal/history"
	"github.com/cleankey/api/internal/order"
	"github.com/jung-kurt/gofpdf"
)

// ErrEmptyHistory is returned instead of emitting an empty summary
// document; callers show it as an empty-state message.
var ErrEmptyHistory = errors.New("no orders in history yet")

// Layout constants, all in millimetres on an A4 portrait page.
const (
	marginX       = 14.0
	titleY        = 18.0
	noteWrapWidth = 180.0
	totalEdgeX    = 190.0
	rowHeight     = 5.0
	pageBreakY    = 285.0
)

// Fixed column widths for the two table kinds.
var (
	orderColWidths   = []float64{8, 22, 80, 14, 20, 20}
	summaryColWidths = []float64{8, 40, 45, 45, 12, 20}

	orderHeader   = []string{"#", "SKU", "Tuotenimike (FI)", "Määrä", "Hinta €", "Yhteensä €"}
	summaryHeader = []string{"#", "Date", "Customer", "Supervisor", "Items", "Total €"}
)

// WriteOrderPDF renders one finalized order as a printable document.
func WriteOrderPDF(w io.Writer, o order.Order) error {
	return writeOrder(w, o, "Cleankey Order", "Generated by Cleankey ordering tool.")
}

// WriteHistoryOrderPDF renders a past order re-fed from the history
// store; only the title and attribution line differ from WriteOrderPDF.
func WriteHistoryOrderPDF(w io.Writer, o order.Order) error {
	return writeOrder(w, o, "Cleankey Order (History)", "Generated from Cleankey order history.")
}

func writeOrder(w io.Writer, o order.Order, title, footer string) error {
	o = order.Recompute(o)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 18)
	pdf.Text(marginX, titleY, tr(title))

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(marginX, 26, tr("Order time: "+o.Timestamp.UTC().Format(time.RFC3339)))
	pdf.Text(marginX, 32, tr("Customer: "+o.CustomerName))
	if o.SupervisorName != "" {
		pdf.Text(marginX, 38, tr("Supervisor: "+o.SupervisorName))
	}

	// The note block shifts the table start down by the wrapped line count.
	startY := 44.0
	if o.Note != "" {
		pdf.Text(marginX, 44, "Note:")
		lines := pdf.SplitLines([]byte(tr(o.Note)), noteWrapWidth)
		for i, line := range lines {
			pdf.Text(marginX, 50+float64(i)*4, string(line))
		}
		startY = 50 + float64(len(lines))*4 + 6
	}

	rows := make([][]string, len(o.Items))
	for i, it := range o.Items {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			it.SKU,
			it.NameFi,
			strconv.Itoa(it.Quantity),
			it.UnitPrice.StringFixed(2),
			it.LineTotal().StringFixed(2),
		}
	}
	finalY := drawTable(pdf, tr, startY, orderColWidths, orderHeader, rows)

	pdf.SetFont("Helvetica", "", 11)
	totalText := tr("TOTAL: " + o.Total.StringFixed(2) + " €")
	pdf.Text(totalEdgeX-pdf.GetStringWidth(totalText), finalY+10, totalText)

	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(marginX, finalY+18, tr(footer))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write order pdf: %w", err)
	}
	return nil
}

// WriteHistoryPDF renders a one-row-per-order summary of the whole
// history. Empty input is an error, not an empty document.
func WriteHistoryPDF(w io.Writer, records []history.Record, exportedAt time.Time) error {
	if len(records) == 0 {
		return ErrEmptyHistory
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 18)
	pdf.Text(marginX, titleY, "Cleankey Order History")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(marginX, 26, "Exported: "+exportedAt.UTC().Format(time.RFC3339))
	pdf.Text(marginX, 32, "Number of orders: "+strconv.Itoa(len(records)))

	rows := make([][]string, len(records))
	for i, rec := range records {
		o := order.Recompute(rec.Payload)
		rows[i] = []string{
			strconv.Itoa(i + 1),
			o.Timestamp.UTC().Format("2006-01-02 15:04"),
			o.CustomerName,
			o.SupervisorName,
			strconv.Itoa(len(o.Items)),
			o.Total.StringFixed(2),
		}
	}
	drawTable(pdf, tr, 40, summaryColWidths, summaryHeader, rows)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write history pdf: %w", err)
	}
	return nil
}

// drawTable draws a bordered table with a filled header row, breaking to
// a new page (and repeating the header) when a row would run off the
// bottom. Returns the y position just below the last row.
func drawTable(pdf *gofpdf.Fpdf, tr func(string) string, startY float64, widths []float64, header []string, rows [][]string) float64 {
	y := startY

	drawHeader := func() {
		pdf.SetXY(marginX, y)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(27, 58, 87)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range header {
			pdf.CellFormat(widths[i], rowHeight, tr(h), "1", 0, "L", true, 0, "")
		}
		y += rowHeight
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	}

	drawHeader()
	for _, row := range rows {
		if y+rowHeight > pageBreakY {
			pdf.AddPage()
			y = 15
			drawHeader()
		}
		pdf.SetXY(marginX, y)
		for i, cell := range row {
			pdf.CellFormat(widths[i], rowHeight, tr(cell), "1", 0, "L", false, 0, "")
		}
		y += rowHeight
	}
	return y
}

var (
	nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	tsChars  = regexp.MustCompile(`[:T.Z-]`)
)

// OrderFilename derives the export filename for a freshly finalized
// order from its timestamp, to the second.
func OrderFilename(o order.Order) string {
	return "cleankey-order-" + o.Timestamp.UTC().Format("20060102150405") + ".pdf"
}

// HistoryOrderFilename derives the filename for a re-exported history
// order from the customer name and the order timestamp with millisecond
// precision. Two orders finalized in the same millisecond for the same
// customer collide unless their random ID suffixes differ, so uniqueness
// is overwhelmingly likely but not guaranteed.
func HistoryOrderFilename(o order.Order) string {
	customer := nonAlnum.ReplaceAllString(o.CustomerName, "_")
	if customer == "" || customer == "_" {
		customer = "customer"
	}
	ts := tsChars.ReplaceAllString(o.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"), "")
	return "cleankey-order-history-" + customer + "-" + ts + ".pdf"
}

// HistoryFilename derives the filename for a full-history summary export.
func HistoryFilename(exportedAt time.Time) string {
	ts := tsChars.ReplaceAllString(exportedAt.UTC().Format("2006-01-02T15:04:05.000Z"), "")
	return "cleankey-order-history-" + ts + ".pdf"
}
