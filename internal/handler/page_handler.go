package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Tofuswang/journey/internal/models"
	"github.com/Tofuswang/journey/internal/storage"
	"github.com/Tofuswang/journey/internal/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Page templates rendered through the shared layout.
const (
	pageHome     = "home.html"
	pageForm     = "form.html"
	pageAbout    = "about.html"
	pageLegal    = "legal.html"
	pageNotFound = "notfound.html"
)

type HomeContent struct {
	Query    string
	Journeys []models.JourneyRecord
	// Empty is the message shown when the listing has no records.
	Empty string
	HowTo []web.Step
}

type FormContent struct {
	Prompt string
	Stages [models.StageCount]models.StageDefinition
	Errors []models.FieldError
}

type AboutContent struct {
	Stats models.Stats
}

func (h *Handler) render(c *gin.Context, status int, name string, page web.Page) {
	c.HTML(status, name, page)
}

// Home renders the listing, filtered by ?q= when present.
func (h *Handler) Home(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	content := HomeContent{Query: query, HowTo: web.HowToStart()}

	journeys, err := h.store.ListJourneys(c.Request.Context(), storage.ListFilter{Query: query})
	if err != nil {
		h.logger.Error("list journeys failed", zap.Error(err), zap.String("query", query))
		h.render(c, http.StatusInternalServerError, pageHome, web.Page{View: models.ViewHome, Notice: msgLoadFailed, Content: content})
		return
	}

	content.Journeys = journeys
	if len(journeys) == 0 {
		content.Empty = emptyMessage(query)
	}
	h.render(c, http.StatusOK, pageHome, web.Page{View: models.ViewHome, Content: content})
}

func newFormContent(errs []models.FieldError) FormContent {
	return FormContent{
		Prompt: web.PromptTemplate,
		Stages: models.StageDefinitions(),
		Errors: errs,
	}
}

func (h *Handler) NewJourneyForm(c *gin.Context) {
	h.render(c, http.StatusOK, pageForm, web.Page{View: models.ViewForm, Content: newFormContent(nil)})
}

// SubmitJourney handles the HTML form. On success the browser is sent back
// to the listing; on failure the form is shown again, empty.
func (h *Handler) SubmitJourney(c *gin.Context) {
	req := journeyRequestFromForm(c)
	if err := validateJourney(&req); err != nil {
		h.render(c, http.StatusBadRequest, pageForm, web.Page{
			View:    models.ViewForm,
			Notice:  msgInvalidForm,
			Content: newFormContent(models.FieldErrors(err)),
		})
		return
	}

	rec, err := h.saveJourney(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrDuplicateJourney) {
			status = http.StatusConflict
		} else {
			h.logger.Error("save journey failed", zap.Error(err), zap.String("journey_id", rec.ID))
		}
		h.render(c, status, pageForm, web.Page{View: models.ViewForm, Notice: msgSaveFailed, Content: newFormContent(nil)})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// About shows the project page. Statistics failures are logged and the page
// falls back to zeros.
func (h *Handler) About(c *gin.Context) {
	stats, err := h.loadStats(c.Request.Context())
	if err != nil {
		h.logger.Error("load stats failed", zap.Error(err))
		stats = models.Stats{}
	}
	h.render(c, http.StatusOK, pageAbout, web.Page{View: models.ViewAbout, Content: AboutContent{Stats: stats}})
}

func (h *Handler) Legal(c *gin.Context) {
	view, ok := models.LegalView(c.Param("page"))
	if !ok {
		h.NotFound(c)
		return
	}
	h.render(c, http.StatusOK, pageLegal, web.Page{View: view})
}

func (h *Handler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgPageNotFound})
		return
	}
	h.render(c, http.StatusNotFound, pageNotFound, web.Page{View: models.ViewHome, Notice: msgPageNotFound})
}
