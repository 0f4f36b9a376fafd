package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Tofuswang/journey/internal/chart"
	"github.com/Tofuswang/journey/internal/export"
	"github.com/Tofuswang/journey/internal/models"
	"github.com/Tofuswang/journey/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateJourney godoc
// @Summary      新增旅程地圖
// @Description  驗證並保存一份六個階段的使用者旅程地圖。journey_id 省略時由伺服器產生。
// @Tags         Journeys
// @Accept       json
// @Produce      json
// @Param        request body models.JourneyRequest true "旅程地圖內容"
// @Success      201 {object} models.JourneyRecord
// @Failure      400 {object} handler.ValidationErrorResponse "欄位驗證失敗"
// @Failure      409 {object} handler.ErrorResponse "journey_id 重複"
// @Failure      429 {object} handler.ErrorResponse "提交過於頻繁"
// @Failure      500 {object} handler.ErrorResponse "保存失敗"
// @Router       /api/journeys [post]
func (h *Handler) CreateJourney(c *gin.Context) {
	var req models.JourneyRequest

	rawData, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
		return
	}
	if err := json.Unmarshal(rawData, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
		return
	}
	if err := validateJourney(&req); err != nil {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: msgInvalidForm, Fields: models.FieldErrors(err)})
		return
	}

	rec, err := h.saveJourney(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateJourney) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: msgDuplicate})
			return
		}
		h.logger.Error("save journey failed", zap.Error(err), zap.String("journey_id", rec.ID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgSaveFailed})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ListJourneys godoc
// @Summary      列出旅程地圖
// @Description  依建立時間由新到舊列出旅程地圖。q 不分大小寫比對使用者類型、情境與目標。
// @Tags         Journeys
// @Produce      json
// @Param        q     query string false "搜尋關鍵字"
// @Param        limit query int    false "最多筆數"
// @Success      200 {object} handler.JourneyListResponse
// @Failure      500 {object} handler.ErrorResponse "載入資料失敗"
// @Router       /api/journeys [get]
func (h *Handler) ListJourneys(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	journeys, err := h.store.ListJourneys(c.Request.Context(), storage.ListFilter{Query: query, Limit: limit})
	if err != nil {
		h.logger.Error("list journeys failed", zap.Error(err), zap.String("query", query))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgLoadFailed})
		return
	}

	resp := JourneyListResponse{Journeys: journeys, Count: len(journeys)}
	if len(journeys) == 0 {
		resp.Journeys = []models.JourneyRecord{}
		resp.EmptyMessage = emptyMessage(query)
	}
	c.JSON(http.StatusOK, resp)
}

// GetJourney godoc
// @Summary      取得單一旅程地圖
// @Tags         Journeys
// @Produce      json
// @Param        id path string true "journey_id"
// @Success      200 {object} models.JourneyRecord
// @Failure      404 {object} handler.ErrorResponse "找不到旅程地圖"
// @Failure      500 {object} handler.ErrorResponse "載入資料失敗"
// @Router       /api/journeys/{id} [get]
func (h *Handler) GetJourney(c *gin.Context) {
	rec, ok := h.lookupJourney(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DownloadCSV godoc
// @Summary      下載旅程地圖 CSV
// @Description  五行基本資訊、一行空白、欄位標題與六個階段。欄位依 RFC 4180 加上引號。
// @Tags         Journeys
// @Produce      text/csv
// @Param        id path string true "journey_id"
// @Success      200 {file} file "journey-<id>.csv"
// @Failure      404 {object} handler.ErrorResponse "找不到旅程地圖"
// @Router       /api/journeys/{id}/csv [get]
func (h *Handler) DownloadCSV(c *gin.Context) {
	rec, ok := h.lookupJourney(c)
	if !ok {
		return
	}
	data, err := export.Bytes(rec)
	if err != nil {
		h.logger.Error("csv export failed", zap.Error(err), zap.String("journey_id", rec.ID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgLoadFailed})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(rec)))
	c.Data(http.StatusOK, export.ContentType, data)
}

// GetChart godoc
// @Summary      情緒起伏圖資料
// @Description  六個階段的情緒指數、分級 (low/mid/high) 與圖示。
// @Tags         Charts
// @Produce      json
// @Param        id path string true "journey_id"
// @Success      200 {object} chart.Chart
// @Failure      404 {object} handler.ErrorResponse "找不到旅程地圖"
// @Router       /api/journeys/{id}/chart [get]
func (h *Handler) GetChart(c *gin.Context) {
	rec, ok := h.lookupJourney(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, chart.Build(rec))
}

// GetChartSVG godoc
// @Summary      情緒起伏圖 (SVG)
// @Tags         Charts
// @Produce      image/svg+xml
// @Param        id path string true "journey_id"
// @Success      200 {file} file "SVG 圖片"
// @Failure      404 {object} handler.ErrorResponse "找不到旅程地圖"
// @Router       /api/journeys/{id}/chart.svg [get]
func (h *Handler) GetChartSVG(c *gin.Context) {
	rec, ok := h.lookupJourney(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	chart.RenderSVG(&buf, chart.Build(rec))
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", buf.Bytes())
}

// lookupJourney loads the journey named by the :id parameter and writes the
// error response itself when it cannot.
func (h *Handler) lookupJourney(c *gin.Context) (models.JourneyRecord, bool) {
	id := c.Param("id")
	rec, err := h.store.GetJourney(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrJourneyNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
			return rec, false
		}
		h.logger.Error("get journey failed", zap.Error(err), zap.String("journey_id", id))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgLoadFailed})
		return rec, false
	}
	return rec, true
}
