// Package chart turns a journey's six emotion scores into a line chart.
package chart

import (
	"github.com/Tofuswang/journey/internal/models"
)

const Title = "情緒起伏圖"

// Tier is the qualitative band an emotion score falls into.
type Tier int

const (
	TierLow Tier = iota
	TierMid
	TierHigh
)

// TierFor maps a score to its tier: <=3 low, <=7 mid, otherwise high.
func TierFor(score int) Tier {
	if score <= 3 {
		return TierLow
	}
	if score <= 7 {
		return TierMid
	}
	return TierHigh
}

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMid:
		return "mid"
	}
	return "high"
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Icon is the face drawn next to a point.
func (t Tier) Icon() string {
	switch t {
	case TierLow:
		return "☹"
	case TierMid:
		return "😐"
	}
	return "☺"
}

func (t Tier) Color() string {
	switch t {
	case TierLow:
		return "#ef4444"
	case TierMid:
		return "#eab308"
	}
	return "#22c55e"
}

// Point is one stage on the chart.
type Point struct {
	Label    string  `json:"label"`
	StepName string  `json:"step_name"`
	Emotion  string  `json:"emotion"`
	Score    int     `json:"score"`
	Plotted  int     `json:"plotted"`
	Tier     Tier    `json:"tier"`
	Icon     string  `json:"icon"`
	X        float64 `json:"x"`
}

// Chart is the render-independent description of a journey's emotion line.
type Chart struct {
	Title      string  `json:"title"`
	YMin       int     `json:"y_min"`
	YMax       int     `json:"y_max"`
	YStep      int     `json:"y_step"`
	ShowLegend bool    `json:"show_legend"`
	Points     []Point `json:"points"`
}

// Build lays the six stages out evenly from left (x=0) to right (x=1).
func Build(rec models.JourneyRecord) Chart {
	c := Chart{
		Title: Title,
		YMin:  models.MinEmotionScore,
		YMax:  models.MaxEmotionScore,
		YStep: 1,
	}
	for _, step := range rec.Steps() {
		plotted := models.ClampScore(step.Stage.EmotionScore)
		tier := TierFor(plotted)
		c.Points = append(c.Points, Point{
			Label:    step.Definition.Label,
			StepName: step.Stage.StepName,
			Emotion:  step.Stage.Emotion,
			Score:    step.Stage.EmotionScore,
			Plotted:  plotted,
			Tier:     tier,
			Icon:     tier.Icon(),
			X:        float64(step.Index) / float64(models.StageCount-1),
		})
	}
	return c
}

// Tiers returns the tier of every point, in stage order.
func (c Chart) Tiers() []Tier {
	out := make([]Tier, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Tier
	}
	return out
}
