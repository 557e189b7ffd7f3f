package documents

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

var ErrNoData = errors.New("nothing to chart")

// WriteDailyReport renders the daily figures and the dish ranking as a one page PDF.
func WriteDailyReport(w io.Writer, report services.DailyReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Report "+report.Date, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Daily report "+report.Date, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Turnover (day, paid bills)", utils.FormatCurrency(report.DayTurnover)},
		{"Turnover (month, paid bills)", utils.FormatCurrency(report.MonthTurnover)},
		{"Bills issued", fmt.Sprintf("%d", report.BillsCount)},
	}
	for _, row := range rows {
		pdf.CellFormat(90, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, row[1], "1", 1, "R", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Most ordered dishes", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if len(report.PopularDishes) == 0 {
		pdf.CellFormat(0, 8, "No orders yet", "", 1, "L", false, 0, "")
	}
	for i, dish := range report.PopularDishes {
		pdf.CellFormat(10, 8, fmt.Sprintf("%d.", i+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(110, 8, tr(dish.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", dish.Quantity), "", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}

// WriteTopDishesChart draws the dish ranking as a PNG bar chart.
func WriteTopDishesChart(w io.Writer, dishes []services.DishPopularity) error {
	if len(dishes) == 0 {
		return ErrNoData
	}

	maxQty := 1.0
	bars := make([]chart.Value, 0, len(dishes))
	for _, d := range dishes {
		qty := float64(d.Quantity)
		if qty > maxQty {
			maxQty = qty
		}
		bars = append(bars, chart.Value{Label: d.Name, Value: qty})
	}

	graph := chart.BarChart{
		Title: "Top dishes",
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Width:    800,
		Height:   480,
		BarWidth: 80,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxQty * 1.1},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
