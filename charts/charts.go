// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package charts renders PNG charts of team history.
package charts

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	width  = 900
	height = 420

	placeholderWidth  = 400
	placeholderHeight = 200
)

var (
	background  = drawing.ColorFromHex("ffffff")
	textColor   = drawing.ColorFromHex("333333")
	pointsColor = drawing.ColorFromHex("3d195b") // league purple
	forColor    = drawing.ColorFromHex("00a650")
	againstClr  = drawing.ColorFromHex("e90052")
)

// SeasonPoint is one season's figures on the chart
type SeasonPoint struct {
	EndYear      int
	Points       int
	GoalsFor     int
	GoalsAgainst int
}

// TeamHistory draws points, goals for and goals against across seasons.
// Points must be in season order. No points renders a placeholder image.
func TeamHistory(team string, points []SeasonPoint) ([]byte, error) {
	if len(points) == 0 {
		return renderPlaceholder(fmt.Sprintf("No season data for %s", team))
	}

	xs := make([]float64, len(points))
	pts := make([]float64, len(points))
	gf := make([]float64, len(points))
	ga := make([]float64, len(points))
	ticks := make([]chart.Tick, 0, len(points)+2)

	maxY := 0.0
	for i, p := range points {
		xs[i] = float64(p.EndYear)
		pts[i] = float64(p.Points)
		gf[i] = float64(p.GoalsFor)
		ga[i] = float64(p.GoalsAgainst)
		ticks = append(ticks, chart.Tick{Value: xs[i], Label: strconv.Itoa(p.EndYear)})
		for _, v := range []float64{pts[i], gf[i], ga[i]} {
			if v > maxY {
				maxY = v
			}
		}
	}

	series := func(name string, ys []float64, c drawing.Color) chart.ContinuousSeries {
		return chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: c,
				StrokeWidth: 2,
				DotColor:    c,
				DotWidth:    3,
			},
		}
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s by season", team),
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: background,
			Padding:   chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{FillColor: background},
		XAxis: chart.XAxis{
			Name:  "Season ending",
			Style: chart.Style{FontColor: textColor},
			Ticks: padTicks(ticks),
		},
		YAxis: chart.YAxis{
			Name:  "Total",
			Style: chart.Style{FontColor: textColor},
			Range: &chart.ContinuousRange{Min: 0, Max: maxY + 5},
		},
		Series: []chart.Series{
			series("Points", pts, pointsColor),
			series("Goals for", gf, forColor),
			series("Goals against", ga, againstClr),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// padTicks adds an unlabelled tick a season either side. go-chart takes the
// x range from the ticks when they are set, so a lone season would otherwise
// have zero width.
func padTicks(ticks []chart.Tick) []chart.Tick {
	first, last := ticks[0].Value, ticks[len(ticks)-1].Value
	out := make([]chart.Tick, 0, len(ticks)+2)
	out = append(out, chart.Tick{Value: first - 1})
	out = append(out, ticks...)
	return append(out, chart.Tick{Value: last + 1})
}

// renderPlaceholder draws msg centred on a blank canvas
func renderPlaceholder(msg string) ([]byte, error) {
	r, err := chart.PNG(placeholderWidth, placeholderHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	r.SetFillColor(background)
	r.MoveTo(0, 0)
	r.LineTo(placeholderWidth, 0)
	r.LineTo(placeholderWidth, placeholderHeight)
	r.LineTo(0, placeholderHeight)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(textColor)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (placeholderWidth-tb.Width())/2, (placeholderHeight+tb.Height())/2)

	buf := bytes.NewBuffer(nil)
	if err := r.Save(buf); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
