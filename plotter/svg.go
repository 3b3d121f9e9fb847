// Package plotter provides SVG visualization for concentration series,
// with scatter markers for highlighting local extrema.
package plotter

import (
	"fmt"
	"math"
	"strings"

	"github.com/sidd-1337/druglevelmodelingapp/analysis"
	"github.com/sidd-1337/druglevelmodelingapp/kinetics"
)

// Series represents a single line series to plot.
type Series struct {
	X     []float64
	Y     []float64
	Label string
	Color string
}

// MarkerSet represents scatter points drawn over the line series,
// used to highlight local minima and maxima.
type MarkerSet struct {
	X     []float64
	Y     []float64
	Label string
	Color string
}

// SVGPlotter creates SVG plots with customizable styling.
type SVGPlotter struct {
	Width      float64
	Height     float64
	Margin     map[string]float64
	PlotWidth  float64
	PlotHeight float64
	Title      string
	XLabel     string
	YLabel     string
	Series     []Series
	Markers    []MarkerSet
}

var palette = []string{"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00", "#a65628", "#f781bf"}

// NewSVGPlotter creates a new SVG plotter with the given dimensions.
func NewSVGPlotter(width, height float64) *SVGPlotter {
	margin := map[string]float64{"top": 40, "right": 30, "bottom": 50, "left": 60}
	return &SVGPlotter{
		Width:      width,
		Height:     height,
		Margin:     margin,
		PlotWidth:  width - margin["left"] - margin["right"],
		PlotHeight: height - margin["top"] - margin["bottom"],
		XLabel:     "Time",
		YLabel:     "Value",
	}
}

// SetTitle sets the plot title.
func (p *SVGPlotter) SetTitle(t string) *SVGPlotter {
	p.Title = t
	return p
}

// SetXLabel sets the X-axis label.
func (p *SVGPlotter) SetXLabel(s string) *SVGPlotter {
	p.XLabel = s
	return p
}

// SetYLabel sets the Y-axis label.
func (p *SVGPlotter) SetYLabel(s string) *SVGPlotter {
	p.YLabel = s
	return p
}

// AddSeries adds a line series. If color is empty, a palette color is
// assigned.
func (p *SVGPlotter) AddSeries(x, y []float64, label, color string) *SVGPlotter {
	if color == "" {
		color = palette[len(p.Series)%len(palette)]
	}
	p.Series = append(p.Series, Series{X: x, Y: y, Label: label, Color: color})
	return p
}

// AddMarkers adds scatter markers drawn over the line series.
func (p *SVGPlotter) AddMarkers(x, y []float64, label, color string) *SVGPlotter {
	if color == "" {
		color = palette[(len(p.Series)+len(p.Markers))%len(palette)]
	}
	p.Markers = append(p.Markers, MarkerSet{X: x, Y: y, Label: label, Color: color})
	return p
}

// Render generates the SVG document.
func (p *SVGPlotter) Render() string {
	xmin := math.Inf(1)
	xmax := math.Inf(-1)
	ymin := math.Inf(1)
	ymax := math.Inf(-1)

	extend := func(xs, ys []float64) {
		for i := range xs {
			if xs[i] < xmin {
				xmin = xs[i]
			}
			if xs[i] > xmax {
				xmax = xs[i]
			}
			if ys[i] < ymin {
				ymin = ys[i]
			}
			if ys[i] > ymax {
				ymax = ys[i]
			}
		}
	}
	for _, s := range p.Series {
		extend(s.X, s.Y)
	}
	for _, m := range p.Markers {
		extend(m.X, m.Y)
	}

	if math.IsInf(xmin, 1) || math.IsInf(xmax, -1) {
		xmin, xmax = 0, 1
	}
	if math.IsInf(ymin, 1) || math.IsInf(ymax, -1) {
		ymin, ymax = 0, 1
	}

	xrange := xmax - xmin
	if xrange == 0 {
		xrange = 1
	}
	yrange := ymax - ymin
	if yrange == 0 {
		yrange = 1
	}

	xmin -= xrange * 0.05
	xmax += xrange * 0.05
	ymin -= yrange * 0.1
	ymax += yrange * 0.1

	sx := func(x float64) float64 {
		return p.Margin["left"] + ((x-xmin)/(xmax-xmin))*p.PlotWidth
	}
	sy := func(y float64) float64 {
		return p.Margin["top"] + p.PlotHeight - ((y-ymin)/(ymax-ymin))*p.PlotHeight
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`,
		int(p.Width), int(p.Height)))
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="#f8f9fa" rx="8"/>`,
		int(p.Width), int(p.Height)))

	if p.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="25" text-anchor="middle" font-family="Arial, sans-serif" font-size="16" font-weight="bold">%s</text>`,
			p.Width/2, escape(p.Title)))
	}

	// Axes
	sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#333" stroke-width="2"/>`,
		p.Margin["left"], p.Margin["top"], p.Margin["left"], p.Margin["top"]+p.PlotHeight))
	sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#333" stroke-width="2"/>`,
		p.Margin["left"], p.Margin["top"]+p.PlotHeight, p.Margin["left"]+p.PlotWidth, p.Margin["top"]+p.PlotHeight))

	// Axis labels
	sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" text-anchor="middle" font-family="Arial, sans-serif" font-size="12">%s</text>`,
		p.Margin["left"]+p.PlotWidth/2, p.Height-10, escape(p.XLabel)))
	sb.WriteString(fmt.Sprintf(`<text x="15" y="%f" text-anchor="middle" font-family="Arial, sans-serif" font-size="12" transform="rotate(-90, 15, %f)">%s</text>`,
		p.Margin["top"]+p.PlotHeight/2, p.Margin["top"]+p.PlotHeight/2, escape(p.YLabel)))

	// Grid and ticks
	const numTicks = 5
	for i := 0; i <= numTicks; i++ {
		x := xmin + (xmax-xmin)*float64(i)/float64(numTicks)
		px := sx(x)
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#333" stroke-width="1"/>`,
			px, p.Margin["top"]+p.PlotHeight, px, p.Margin["top"]+p.PlotHeight+5))
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" text-anchor="middle" font-family="Arial, sans-serif" font-size="10">%.1f</text>`,
			px, p.Margin["top"]+p.PlotHeight+20, x))
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#ddd" stroke-width="0.5"/>`,
			px, p.Margin["top"], px, p.Margin["top"]+p.PlotHeight))

		y := ymin + (ymax-ymin)*float64(i)/float64(numTicks)
		py := sy(y)
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#333" stroke-width="1"/>`,
			p.Margin["left"]-5, py, p.Margin["left"], py))
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" text-anchor="end" font-family="Arial, sans-serif" font-size="10">%.1f</text>`,
			p.Margin["left"]-10, py+4, y))
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="#ddd" stroke-width="0.5"/>`,
			p.Margin["left"], py, p.Margin["left"]+p.PlotWidth, py))
	}

	// Line series
	for _, s := range p.Series {
		if len(s.X) == 0 {
			continue
		}
		path := strings.Builder{}
		for i := range s.X {
			if i == 0 {
				path.WriteString(fmt.Sprintf("M%f,%f", sx(s.X[i]), sy(s.Y[i])))
			} else {
				path.WriteString(fmt.Sprintf(" L%f,%f", sx(s.X[i]), sy(s.Y[i])))
			}
		}
		sb.WriteString(fmt.Sprintf(`<path d="%s" stroke="%s" stroke-width="2" fill="none"/>`,
			path.String(), s.Color))
	}

	// Scatter markers
	for _, m := range p.Markers {
		for i := range m.X {
			sb.WriteString(fmt.Sprintf(`<circle cx="%f" cy="%f" r="4" fill="%s" stroke="#fff" stroke-width="1"/>`,
				sx(m.X[i]), sy(m.Y[i]), m.Color))
		}
	}

	// Legend
	legendY := p.Margin["top"] + 10
	for _, s := range p.Series {
		if s.Label == "" {
			continue
		}
		x1 := p.Width - p.Margin["right"] - 170
		x2 := x1 + 20
		sb.WriteString(fmt.Sprintf(`<line x1="%f" y1="%f" x2="%f" y2="%f" stroke="%s" stroke-width="2"/>`,
			x1, legendY, x2, legendY, s.Color))
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" font-family="Arial, sans-serif" font-size="10">%s</text>`,
			x2+5, legendY+4, escape(s.Label)))
		legendY += 20
	}
	for _, m := range p.Markers {
		if m.Label == "" {
			continue
		}
		cx := p.Width - p.Margin["right"] - 160
		sb.WriteString(fmt.Sprintf(`<circle cx="%f" cy="%f" r="4" fill="%s" stroke="#fff" stroke-width="1"/>`,
			cx, legendY, m.Color))
		sb.WriteString(fmt.Sprintf(`<text x="%f" y="%f" font-family="Arial, sans-serif" font-size="10">%s</text>`,
			cx+15, legendY+4, escape(m.Label)))
		legendY += 20
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// PlotSolution renders both concentration tracks of a solution, with
// extrema markers when an analysis is supplied. drugName and unit label
// the legend and Y axis.
func PlotSolution(sol *kinetics.Solution, an *analysis.Analysis, width, height float64, drugName, unit string) string {
	p := NewSVGPlotter(width, height)
	p.SetTitle(fmt.Sprintf("%s Concentration Over Time", drugName))
	p.SetXLabel("Time (hours)")
	p.SetYLabel(fmt.Sprintf("Concentration (%s)", unit))

	times := sol.Times()
	labels := map[string]string{
		kinetics.TrackMin: "Min Half-Life",
		kinetics.TrackMax: "Max Half-Life",
	}
	lineColors := map[string]string{
		kinetics.TrackMin: "#2563eb",
		kinetics.TrackMax: "#dc2626",
	}

	for _, track := range sol.Tracks() {
		p.AddSeries(times, sol.Series(track), fmt.Sprintf("%s (%s)", drugName, labels[track]), lineColors[track])
	}

	if an != nil {
		markerColors := map[string]map[string]string{
			kinetics.TrackMin: {"minima": "#0ea5e9", "maxima": "#f59e0b"},
			kinetics.TrackMax: {"minima": "#14b8a6", "maxima": "#a855f7"},
		}
		for _, track := range sol.Tracks() {
			data := sol.Series(track)
			p.AddMarkers(pick(times, an.Minima[track]), pick(data, an.Minima[track]),
				fmt.Sprintf("Local Minima (%s)", labels[track]), markerColors[track]["minima"])
			p.AddMarkers(pick(times, an.Maxima[track]), pick(data, an.Maxima[track]),
				fmt.Sprintf("Local Maxima (%s)", labels[track]), markerColors[track]["maxima"])
		}
	}

	return p.Render()
}

func pick(data []float64, indices []int) []float64 {
	out := make([]float64, 0, len(indices))
	for _, i := range indices {
		out = append(out, data[i])
	}
	return out
}

func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return r.Replace(s)
}
