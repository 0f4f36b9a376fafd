package handler

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/Tofuswang/journey/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var registerOnce sync.Once

// registerValidation makes gin's validator report JSON field names.
func registerValidation() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(models.JSONTagName)
		}
	})
}

func validateJourney(req *models.JourneyRequest) error {
	registerValidation()
	req.Normalize()
	return binding.Validator.ValidateStruct(req)
}

// journeyRequestFromForm reads the HTML form. Stage inputs are named
// "<stage key>.<field>", e.g. "step3_trust.emotion_score".
func journeyRequestFromForm(c *gin.Context) models.JourneyRequest {
	req := models.JourneyRequest{
		JourneyID:  c.PostForm("journey_id"),
		AuthorName: c.PostForm("author_name"),
		Title:      c.PostForm("journey_title"),
		Context:    c.PostForm("context"),
		Goal:       c.PostForm("goal"),
	}
	for _, def := range models.StageDefinitions() {
		field := func(name string) string { return c.PostForm(def.Key + "." + name) }
		// unparsable scores stay 0 and fail the min check
		score, _ := strconv.Atoi(strings.TrimSpace(field("emotion_score")))
		req.Stages = append(req.Stages, models.Stage{
			StepName:     field("step_name"),
			Description:  field("description"),
			Response:     field("system_response"),
			PainPoint:    field("pain_point"),
			EmotionScore: score,
			Emotion:      field("emotion"),
		})
	}
	return req
}

// saveJourney inserts one validated submission and invalidates cached stats.
func (h *Handler) saveJourney(ctx context.Context, req models.JourneyRequest) (models.JourneyRecord, error) {
	rec := models.NewJourneyRecord(req, h.now())
	if err := h.store.CreateJourney(ctx, rec); err != nil {
		return rec, err
	}
	h.stats.Flush()
	h.logger.Info("journey saved", zap.String("journey_id", rec.ID), zap.String("journey_title", rec.Title))
	return rec, nil
}
