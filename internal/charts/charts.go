// Package charts renders dashboard panels to PNG with go-chart. Renderers only
// see derived tables; they never touch the dataset.
package charts

import (
	"errors"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"vgsales/internal/engine"
	"vgsales/internal/models"
)

// ErrNoData is returned when a panel has nothing to draw.
var ErrNoData = errors.New("charts: nothing to draw")

// ContentType is the MIME type of every rendered chart.
const ContentType = "image/png"

var (
	accent     = drawing.ColorFromHex("00cc96")
	track      = drawing.ColorFromHex("eeeeee")
	background = drawing.ColorTransparent
)

// Series colours, one per regional column.
var palette = []drawing.Color{
	drawing.ColorFromHex("636efa"),
	drawing.ColorFromHex("ef553b"),
	drawing.ColorFromHex("00cc96"),
	drawing.ColorFromHex("ab63fa"),
	drawing.ColorFromHex("ffa15a"),
	drawing.ColorFromHex("19d3f3"),
}

// Size is a chart's pixel size.
type Size struct {
	Width  int
	Height int
}

var (
	DonutSize = Size{Width: 300, Height: 300}
	BarSize   = Size{Width: 900, Height: 500}
	PieSize   = Size{Width: 500, Height: 500}
)

// TopGameDonut draws one game's share of its region as a ring.
func TopGameDonut(w io.Writer, game models.TopGame) error {
	pct := 0.0
	if game.Percentage != nil {
		pct = math.Max(0, math.Min(100, *game.Percentage))
	}

	var values []chart.Value
	if pct > 0 {
		values = append(values, chart.Value{
			Label: game.Label,
			Value: pct,
			Style: chart.Style{FillColor: accent, StrokeColor: accent},
		})
	}
	if rest := 100 - pct; rest > 0 {
		values = append(values, chart.Value{
			Value: rest,
			Style: chart.Style{FillColor: track, StrokeColor: track},
		})
	}

	donut := chart.DonutChart{
		Title:      game.Name,
		TitleStyle: chart.Style{FontColor: accent},
		Width:      DonutSize.Width,
		Height:     DonutSize.Height,
		Background: chart.Style{FillColor: background},
		Values:     values,
	}
	return donut.Render(chart.PNG, w)
}

// GenreBar draws ranked genre sales as bars.
func GenreBar(w io.Writer, items []models.RankedItem) error {
	return rankedBar(w, "Sales (Millions) by Genre", items)
}

func rankedBar(w io.Writer, title string, items []models.RankedItem) error {
	bars := make([]chart.Value, 0, len(items))
	var top float64
	for i, it := range items {
		c := palette[i%len(palette)]
		bars = append(bars, chart.Value{
			Label: it.Name,
			Value: it.Value,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
		top = math.Max(top, it.Value)
	}
	if len(bars) == 0 || top <= 0 {
		return ErrNoData
	}

	bar := chart.BarChart{
		Title:        title,
		Width:        BarSize.Width,
		Height:       BarSize.Height,
		BarWidth:     barWidth(len(bars), BarSize.Width),
		Background:   chart.Style{Padding: chart.Box{Top: 40, Bottom: 40}},
		XAxis:        chart.Style{TextRotationDegrees: 45.0},
		YAxis:        chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1}},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}
	return bar.Render(chart.PNG, w)
}

// PlatformPie draws the platform shares.
func PlatformPie(w io.Writer, items []models.RankedItem) error {
	values := make([]chart.Value, 0, len(items))
	for i, it := range items {
		if it.Value <= 0 {
			continue
		}
		c := palette[i%len(palette)]
		values = append(values, chart.Value{
			Label: it.Name,
			Value: it.Value,
			Style: chart.Style{FillColor: c, StrokeColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	pie := chart.PieChart{
		Width:      PieSize.Width,
		Height:     PieSize.Height,
		Background: chart.Style{FillColor: background},
		Values:     values,
	}
	return pie.Render(chart.PNG, w)
}

// CategoryStackedBar draws regional sales per category value. Each bar stacks
// the regional columns.
func CategoryStackedBar(w io.Writer, cs models.CategorySales) error {
	bars := make([]chart.StackedBar, 0, len(cs.Rows))
	var top float64
	for _, row := range cs.Rows {
		sb := chart.StackedBar{Name: row.Key}
		var total float64
		for i, series := range cs.Series {
			v := row.Sales[series]
			total += v
			c := palette[i%len(palette)]
			sb.Values = append(sb.Values, chart.Value{
				Label: seriesLabel(series),
				Value: v,
				Style: chart.Style{FillColor: c, StrokeColor: c},
			})
		}
		top = math.Max(top, total)
		bars = append(bars, sb)
	}
	if len(bars) == 0 || top <= 0 {
		return ErrNoData
	}

	stacked := chart.StackedBarChart{
		Title:      "Sales by " + cs.Category,
		Width:      BarSize.Width,
		Height:     BarSize.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		XAxis:      chart.Style{TextRotationDegrees: 45.0},
		BarSpacing: 4,
		Bars:       bars,
	}
	return stacked.Render(chart.PNG, w)
}

func seriesLabel(series string) string {
	switch engine.SalesColumn(series) {
	case engine.NASales:
		return string(engine.NorthAmerica)
	case engine.EUSales:
		return string(engine.Europe)
	case engine.JPSales:
		return string(engine.Japan)
	case engine.OtherSales:
		return string(engine.Other)
	}
	return series
}

func barWidth(n, width int) int {
	w := width / (2 * n)
	if w < 8 {
		return 8
	}
	if w > 60 {
		return 60
	}
	return w
}
