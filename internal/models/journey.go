package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinEmotionScore = 1
	MaxEmotionScore = 10

	AnonymousAuthor = "匿名"
)

// DateLocation is used when showing creation dates to readers.
var DateLocation = time.FixedZone("Asia/Taipei", 8*60*60)

// Stage is one point of the six-step journey.
type Stage struct {
	StepName     string `json:"step_name" binding:"max=2000" example:"下載 App"`
	Description  string `json:"description" binding:"max=2000"`
	Response     string `json:"system_response" binding:"max=2000"`
	PainPoint    string `json:"pain_point" binding:"max=2000"`
	EmotionScore int    `json:"emotion_score" binding:"min=1,max=10" example:"5"`
	Emotion      string `json:"emotion" binding:"max=2000" example:"好奇"`
}

// JourneyRecord is one stored journey map. It is created once and never updated.
type JourneyRecord struct {
	ID         string            `json:"journey_id"`
	AuthorName string            `json:"author_name"`
	Title      string            `json:"journey_title"`
	Context    string            `json:"context"`
	Goal       string            `json:"goal"`
	CreatedAt  time.Time         `json:"created_at"`
	Stages     [StageCount]Stage `json:"stages"`
}

// JourneyRequest is the submission body for a new journey map.
type JourneyRequest struct {
	JourneyID  string  `json:"journey_id,omitempty" binding:"omitempty,uuid"`
	AuthorName string  `json:"author_name" binding:"max=100" example:"Tofus"`
	Title      string  `json:"journey_title" binding:"required,max=200" example:"新手用戶"`
	Context    string  `json:"context" binding:"required,max=2000" example:"首次使用產品"`
	Goal       string  `json:"goal" binding:"required,max=2000" example:"完成註冊"`
	Stages     []Stage `json:"stages" binding:"len=6,dive"`
}

// Normalize trims surrounding whitespace so that blank values fail the
// required checks.
func (r *JourneyRequest) Normalize() {
	r.JourneyID = strings.TrimSpace(r.JourneyID)
	r.AuthorName = strings.TrimSpace(r.AuthorName)
	r.Title = strings.TrimSpace(r.Title)
	r.Context = strings.TrimSpace(r.Context)
	r.Goal = strings.TrimSpace(r.Goal)
	for i := range r.Stages {
		st := &r.Stages[i]
		st.StepName = strings.TrimSpace(st.StepName)
		st.Description = strings.TrimSpace(st.Description)
		st.Response = strings.TrimSpace(st.Response)
		st.PainPoint = strings.TrimSpace(st.PainPoint)
		st.Emotion = strings.TrimSpace(st.Emotion)
	}
}

// StageView pairs a stored stage with its fixed definition.
type StageView struct {
	Index      int
	Definition StageDefinition
	Stage      Stage
}

// NewJourneyRecord builds the record to insert. A fresh identifier is
// generated unless the request carries one. CreatedAt is kept to the
// microsecond, the precision of a Postgres timestamptz.
func NewJourneyRecord(req JourneyRequest, now time.Time) JourneyRecord {
	id := req.JourneyID
	if id == "" {
		id = uuid.NewString()
	}
	rec := JourneyRecord{
		ID:         id,
		AuthorName: req.AuthorName,
		Title:      req.Title,
		Context:    req.Context,
		Goal:       req.Goal,
		CreatedAt:  now.UTC().Truncate(time.Microsecond),
	}
	copy(rec.Stages[:], req.Stages)
	return rec
}

// Steps returns the stages together with their definitions, in journey order.
func (r JourneyRecord) Steps() []StageView {
	defs := StageDefinitions()
	steps := make([]StageView, 0, StageCount)
	for i, st := range r.Stages {
		steps = append(steps, StageView{Index: i, Definition: defs[i], Stage: st})
	}
	return steps
}

func (r JourneyRecord) DisplayAuthor() string {
	if r.AuthorName == "" {
		return AnonymousAuthor
	}
	return r.AuthorName
}

// DisplayDate formats the creation date like the zh-TW locale does (2024/3/9).
func (r JourneyRecord) DisplayDate() string {
	return r.CreatedAt.In(DateLocation).Format("2006/1/2")
}

// ClampScore keeps a score inside the 1..10 domain.
func ClampScore(score int) int {
	if score < MinEmotionScore {
		return MinEmotionScore
	}
	if score > MaxEmotionScore {
		return MaxEmotionScore
	}
	return score
}
