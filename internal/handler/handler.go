/**
* Name:        handler.go
* Description: gin handlers for the journey map pages and JSON API
* Workflow:    submit, list/search, chart, CSV export, about statistics
 */
package handler

import (
	"time"

	"github.com/Tofuswang/journey/internal/models"
	"github.com/Tofuswang/journey/internal/storage"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// User facing messages.
const (
	msgLoadFailed   = "載入資料失敗，請重新整理頁面"
	msgSaveFailed   = "保存失敗，請稍後再試"
	msgInvalidForm  = "表單內容有誤，請檢查標示的欄位"
	msgNotFound     = "找不到這份旅程地圖"
	msgDuplicate    = "旅程地圖編號已存在"
	msgEmptyAll     = "目前還沒有旅程記錄"
	msgEmptySearch  = "沒有找到符合搜尋條件的旅程地圖"
	msgInvalidBody  = "無法解析請求內容"
	msgStatsFailed  = "無法取得統計資料"
	msgNotReady     = "資料庫尚未就緒"
	msgPageNotFound = "找不到這個頁面"
)

type Options struct {
	// StatsTTL is how long about-page statistics are cached. Zero uses one minute.
	StatsTTL time.Duration
	// Now is the clock used for created_at. Defaults to time.Now.
	Now func() time.Time
}

type Handler struct {
	store  storage.JourneyStore
	logger *zap.Logger
	stats  *cache.Cache
	now    func() time.Time
}

func New(store storage.JourneyStore, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := opts.StatsTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		store:  store,
		logger: logger,
		stats:  cache.New(ttl, 2*ttl),
		now:    now,
	}
}

type ErrorResponse struct {
	Error string `json:"error" example:"保存失敗，請稍後再試"`
}

type ValidationErrorResponse struct {
	Error  string              `json:"error" example:"表單內容有誤，請檢查標示的欄位"`
	Fields []models.FieldError `json:"fields"`
}

type JourneyListResponse struct {
	Journeys []models.JourneyRecord `json:"journeys"`
	Count    int                    `json:"count" example:"3"`
	// EmptyMessage is set when nothing matched.
	EmptyMessage string `json:"empty_message,omitempty" example:"目前還沒有旅程記錄"`
}

type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

func emptyMessage(query string) string {
	if query != "" {
		return msgEmptySearch
	}
	return msgEmptyAll
}
