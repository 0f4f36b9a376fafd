package chart

import (
	"fmt"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

const (
	Width  = 720
	Height = 360

	marginLeft   = 48
	marginRight  = 32
	marginTop    = 56
	marginBottom = 48

	lineColor = "#10b981"
)

// RenderSVG draws c. It writes only to w.
func RenderSVG(w io.Writer, c Chart) {
	canvas := svg.New(w)
	canvas.Start(Width, Height)
	canvas.Rect(0, 0, Width, Height, `fill="white"`)
	canvas.Text(Width/2, 30, c.Title, `text-anchor="middle"`, `font-size="16"`, `font-weight="bold"`, `fill="#111827"`)

	plotW := Width - marginLeft - marginRight
	plotH := Height - marginTop - marginBottom
	yOf := func(v int) int {
		span := c.YMax - c.YMin
		if span <= 0 {
			return marginTop + plotH
		}
		return marginTop + (c.YMax-v)*plotH/span
	}
	xOf := func(p Point) int {
		return marginLeft + int(p.X*float64(plotW))
	}

	// y axis grid with integer ticks
	step := c.YStep
	if step <= 0 {
		step = 1
	}
	canvas.Group(`class="y-axis"`)
	for v := c.YMin; v <= c.YMax; v += step {
		y := yOf(v)
		canvas.Line(marginLeft, y, marginLeft+plotW, y, `stroke="#e5e7eb"`, `stroke-width="1"`)
		canvas.Text(marginLeft-10, y+4, strconv.Itoa(v), `text-anchor="end"`, `font-size="11"`, `fill="#6b7280"`)
	}
	canvas.Gend()

	if len(c.Points) == 0 {
		canvas.End()
		return
	}

	xs := make([]int, len(c.Points))
	ys := make([]int, len(c.Points))
	for i, p := range c.Points {
		xs[i] = xOf(p)
		ys[i] = yOf(p.Plotted)
	}
	canvas.Polyline(xs, ys, `fill="none"`, fmt.Sprintf(`stroke="%s"`, lineColor), `stroke-width="2"`)

	for i, p := range c.Points {
		canvas.Group(fmt.Sprintf(`class="point tier-%s"`, p.Tier))
		canvas.Title(fmt.Sprintf("步驟：%s\n情緒指數: %d\n情緒描述: %s", p.StepName, p.Score, p.Emotion))
		canvas.Circle(xs[i], ys[i], 8, `fill="white"`, fmt.Sprintf(`stroke="%s"`, lineColor), `stroke-width="2"`)
		canvas.Text(xs[i], ys[i]-16, p.Icon, `text-anchor="middle"`, `font-size="18"`, fmt.Sprintf(`fill="%s"`, p.Tier.Color()))
		canvas.Text(xs[i], marginTop+plotH+24, p.Label, `text-anchor="middle"`, `font-size="12"`, `fill="#374151"`)
		canvas.Gend()
	}
	canvas.End()
}
