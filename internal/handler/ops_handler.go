package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Tofuswang/journey/internal/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const readyTimeout = 2 * time.Second

// PromptTemplate godoc
// @Summary      Prompt 模板
// @Description  協助整理旅程內容的大型語言模型提示詞。
// @Tags         About
// @Produce      plain
// @Success      200 {string} string "Prompt 模板全文"
// @Router       /api/prompt-template [get]
func (h *Handler) PromptTemplate(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(web.PromptTemplate))
}

// Healthz godoc
// @Summary      存活檢查
// @Tags         Ops
// @Produce      json
// @Success      200 {object} handler.StatusResponse
// @Router       /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz godoc
// @Summary      就緒檢查
// @Description  確認資料庫可以連線。
// @Tags         Ops
// @Produce      json
// @Success      200 {object} handler.StatusResponse
// @Failure      503 {object} handler.ErrorResponse "資料庫尚未就緒"
// @Router       /readyz [get]
func (h *Handler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: msgNotReady})
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
