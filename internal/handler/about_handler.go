package handler

import (
	"context"
	"net/http"

	"github.com/Tofuswang/journey/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	statsCacheKey           = "stats"
	recentContributionLimit = 3
)

// loadStats returns the about-page statistics, cached until the TTL runs
// out or a new journey is saved.
func (h *Handler) loadStats(ctx context.Context) (models.Stats, error) {
	if cached, ok := h.stats.Get(statsCacheKey); ok {
		return cached.(models.Stats), nil
	}

	var (
		stats models.Stats
		err   error
	)
	if stats.TotalJourneys, err = h.store.CountJourneys(ctx); err != nil {
		return models.Stats{}, err
	}
	if stats.TotalContributors, err = h.store.CountContributors(ctx); err != nil {
		return models.Stats{}, err
	}
	if stats.RecentContributions, err = h.store.RecentContributions(ctx, recentContributionLimit); err != nil {
		return models.Stats{}, err
	}
	if stats.RecentContributions == nil {
		stats.RecentContributions = []models.Contribution{}
	}

	h.stats.SetDefault(statsCacheKey, stats)
	return stats, nil
}

// GetStats godoc
// @Summary      專案統計
// @Description  旅程地圖總數、不重複的貢獻者人數與最近三筆貢獻。
// @Tags         About
// @Produce      json
// @Success      200 {object} models.Stats
// @Failure      500 {object} handler.ErrorResponse "無法取得統計資料"
// @Router       /api/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.loadStats(c.Request.Context())
	if err != nil {
		h.logger.Error("load stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgStatsFailed})
		return
	}
	c.JSON(http.StatusOK, stats)
}
