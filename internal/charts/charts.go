package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/fintrack-ai/fintrack/internal/service"
)

// ChartGenerator renders the report aggregations as PNG images.
type ChartGenerator struct{}

func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// CategoryPie renders the expense-by-category breakdown as a pie chart.
// Returns nil when there is nothing to draw.
func (g *ChartGenerator) CategoryPie(slices []service.CategorySlice) ([]byte, error) {
	if len(slices) == 0 {
		return nil, nil
	}

	total := 0.0
	for _, s := range slices {
		total += s.Total.InexactFloat64()
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		amount := s.Total.InexactFloat64()
		percentage := (amount / total) * 100
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %.0f (%.1f%%)", s.Name, amount, percentage),
			Value: amount,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Title:  "Expenses by category",
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category pie chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// Cashflow renders the trailing-week income/expense series.
func (g *ChartGenerator) Cashflow(flow []service.DayFlow) ([]byte, error) {
	if len(flow) == 0 {
		return nil, nil
	}

	xValues := make([]time.Time, len(flow))
	incomeValues := make([]float64, len(flow))
	expenseValues := make([]float64, len(flow))
	for i, day := range flow {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return nil, fmt.Errorf("bad cashflow date %q: %w", day.Date, err)
		}
		xValues[i] = date
		incomeValues[i] = day.Income.InexactFloat64()
		expenseValues[i] = day.Expense.InexactFloat64()
	}

	graph := chart.Chart{
		Title:  "Cashflow, last 7 days",
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02"),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Income",
				XValues: xValues,
				YValues: incomeValues,
				Style: chart.Style{
					StrokeColor: chart.ColorGreen,
					StrokeWidth: 2,
				},
			},
			chart.TimeSeries{
				Name:    "Expenses",
				XValues: xValues,
				YValues: expenseValues,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{
			FontSize:  12,
			FontColor: chart.ColorBlack,
		}),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render cashflow chart: %w", err)
	}
	return buffer.Bytes(), nil
}
