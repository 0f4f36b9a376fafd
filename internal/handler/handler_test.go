package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Tofuswang/journey/internal/chart"
	"github.com/Tofuswang/journey/internal/models"
	"github.com/Tofuswang/journey/internal/storage"
	"github.com/Tofuswang/journey/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testTemplates *web.Templates

func templates(t *testing.T) *web.Templates {
	t.Helper()
	if testTemplates == nil {
		tmpl, err := web.Load()
		require.NoError(t, err)
		testTemplates = tmpl
	}
	return testTemplates
}

// tickingClock returns a clock that advances one minute per call.
func tickingClock() func() time.Time {
	now := time.Date(2024, 3, 9, 2, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func newSQLiteStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "journeys.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newRouter(t *testing.T, store storage.JourneyStore, cfg RouterConfig) *gin.Engine {
	t.Helper()
	h := New(store, zap.NewNop(), Options{Now: tickingClock()})
	cfg.Templates = templates(t)
	return h.Router(cfg)
}

func newTestServer(t *testing.T) (*gin.Engine, *storage.SQLiteStore) {
	store := newSQLiteStore(t)
	return newRouter(t, store, RouterConfig{}), store
}

func journeyRequest(title string, scores ...int) models.JourneyRequest {
	req := models.JourneyRequest{
		AuthorName: "Tofus",
		Title:      title,
		Context:    "首次使用產品",
		Goal:       "完成註冊",
	}
	for i, s := range scores {
		req.Stages = append(req.Stages, models.Stage{
			StepName:     "行為" + strconv.Itoa(i+1),
			Description:  "描述",
			Response:     "回應",
			PainPoint:    "痛點",
			EmotionScore: s,
			Emotion:      "情緒",
		})
	}
	return req
}

func do(r http.Handler, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, r http.Handler, req models.JourneyRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return do(r, http.MethodPost, "/api/journeys", body, "application/json")
}

func createJourney(t *testing.T, r http.Handler, title string, scores ...int) models.JourneyRecord {
	t.Helper()
	w := postJSON(t, r, journeyRequest(title, scores...))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rec models.JourneyRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	return rec
}

func decodeValidation(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	fields := map[string]string{}
	for _, f := range resp.Fields {
		fields[f.Field] = f.Msg
	}
	return fields
}

// failingStore fails every call.
type failingStore struct{}

var errDown = errors.New("database is down")

func (failingStore) CreateJourney(context.Context, models.JourneyRecord) error { return errDown }
func (failingStore) ListJourneys(context.Context, storage.ListFilter) ([]models.JourneyRecord, error) {
	return nil, errDown
}
func (failingStore) GetJourney(context.Context, string) (models.JourneyRecord, error) {
	return models.JourneyRecord{}, errDown
}
func (failingStore) CountJourneys(context.Context) (int64, error)     { return 0, errDown }
func (failingStore) CountContributors(context.Context) (int64, error) { return 0, errDown }
func (failingStore) RecentContributions(context.Context, int) ([]models.Contribution, error) {
	return nil, errDown
}
func (failingStore) Ping(context.Context) error { return errDown }
func (failingStore) Close() error               { return nil }

// countingStore records how often the stats queries hit the database.
type countingStore struct {
	storage.JourneyStore
	countCalls int
}

func (s *countingStore) CountJourneys(ctx context.Context) (int64, error) {
	s.countCalls++
	return s.JourneyStore.CountJourneys(ctx)
}

func TestCreateJourney_API(t *testing.T) {
	r, _ := newTestServer(t)

	rec := createJourney(t, r, "新手用戶", 2, 5, 8, 9, 6, 3)
	_, err := uuid.Parse(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "新手用戶", rec.Title)
	assert.True(t, time.Date(2024, 3, 9, 2, 1, 0, 0, time.UTC).Equal(rec.CreatedAt), rec.CreatedAt)

	w := do(r, http.MethodGet, "/api/journeys/"+rec.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got models.JourneyRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, rec.ID, got.ID)
	for i, st := range got.Stages {
		assert.Equal(t, "行為"+strconv.Itoa(i+1), st.StepName, "stage %d out of order", i)
	}
	assert.Equal(t, []int{2, 5, 8, 9, 6, 3}, []int{
		got.Stages[0].EmotionScore, got.Stages[1].EmotionScore, got.Stages[2].EmotionScore,
		got.Stages[3].EmotionScore, got.Stages[4].EmotionScore, got.Stages[5].EmotionScore,
	})
}

func TestCreateJourney_RejectsOutOfRangeScores(t *testing.T) {
	r, store := newTestServer(t)

	w := postJSON(t, r, journeyRequest("新手用戶", 0, 5, 5, 5, 5, 11))
	require.Equal(t, http.StatusBadRequest, w.Code)

	fields := decodeValidation(t, w)
	assert.Equal(t, "must be at least 1", fields["stages[0].emotion_score"])
	assert.Equal(t, "must be at most 10", fields["stages[5].emotion_score"])

	n, err := store.CountJourneys(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateJourney_RequiredFields(t *testing.T) {
	r, _ := newTestServer(t)

	req := journeyRequest("   ", 5, 5, 5, 5, 5, 5)
	req.Goal = ""
	w := postJSON(t, r, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	fields := decodeValidation(t, w)
	assert.Equal(t, "required", fields["journey_title"])
	assert.Equal(t, "required", fields["goal"])
}

func TestCreateJourney_WrongStageCount(t *testing.T) {
	r, _ := newTestServer(t)

	w := postJSON(t, r, journeyRequest("新手用戶", 5, 5, 5))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must contain exactly 6 items", decodeValidation(t, w)["stages"])
}

func TestCreateJourney_MalformedBody(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(r, http.MethodPost, "/api/journeys", []byte(`{"journey_title":`), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), msgInvalidBody)
}

func TestCreateJourney_DuplicateID(t *testing.T) {
	r, _ := newTestServer(t)

	req := journeyRequest("新手用戶", 5, 5, 5, 5, 5, 5)
	req.JourneyID = uuid.NewString()

	require.Equal(t, http.StatusCreated, postJSON(t, r, req).Code)
	w := postJSON(t, r, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), msgDuplicate)
}

func TestCreateJourney_ClientIDMustBeUUID(t *testing.T) {
	r, _ := newTestServer(t)

	req := journeyRequest("新手用戶", 5, 5, 5, 5, 5, 5)
	req.JourneyID = "not-a-uuid"
	w := postJSON(t, r, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be a UUID", decodeValidation(t, w)["journey_id"])
}

func TestCreateJourney_StoreFailure(t *testing.T) {
	r := newRouter(t, failingStore{}, RouterConfig{})

	w := postJSON(t, r, journeyRequest("新手用戶", 5, 5, 5, 5, 5, 5))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), msgSaveFailed)
	assert.NotContains(t, w.Body.String(), errDown.Error())
}

func TestListJourneys_API(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(r, http.MethodGet, "/api/journeys", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var empty JourneyListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.NotNil(t, empty.Journeys)
	assert.Equal(t, msgEmptyAll, empty.EmptyMessage)

	first := createJourney(t, r, "新手用戶", 5, 5, 5, 5, 5, 5)
	second := createJourney(t, r, "資深用戶", 5, 5, 5, 5, 5, 5)

	w = do(r, http.MethodGet, "/api/journeys", nil, "")
	var all JourneyListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Equal(t, 2, all.Count)
	assert.Equal(t, []string{second.ID, first.ID}, []string{all.Journeys[0].ID, all.Journeys[1].ID})
	assert.Empty(t, all.EmptyMessage)

	w = do(r, http.MethodGet, "/api/journeys?q="+url.QueryEscape("資深"), nil, "")
	var filtered JourneyListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Equal(t, 1, filtered.Count)
	assert.Equal(t, second.ID, filtered.Journeys[0].ID)

	w = do(r, http.MethodGet, "/api/journeys?q=%20%20", nil, "")
	var blank JourneyListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &blank))
	assert.Equal(t, 2, blank.Count, "blank term is no filter")

	w = do(r, http.MethodGet, "/api/journeys?q=nothing-matches", nil, "")
	var none JourneyListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &none))
	assert.Zero(t, none.Count)
	assert.Equal(t, msgEmptySearch, none.EmptyMessage)

	w = do(r, http.MethodGet, "/api/journeys?limit=1", nil, "")
	var limited JourneyListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &limited))
	assert.Equal(t, 1, limited.Count)
}

func TestListJourneys_StoreFailure(t *testing.T) {
	r := newRouter(t, failingStore{}, RouterConfig{})

	w := do(r, http.MethodGet, "/api/journeys", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), msgLoadFailed)
}

func TestGetJourney_NotFound(t *testing.T) {
	r, _ := newTestServer(t)

	for _, path := range []string{"", "/csv", "/chart", "/chart.svg"} {
		w := do(r, http.MethodGet, "/api/journeys/"+uuid.NewString()+path, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestDownloadCSV(t *testing.T) {
	r, _ := newTestServer(t)
	rec := createJourney(t, r, "新手用戶", 2, 5, 8, 9, 6, 3)

	w := do(r, http.MethodGet, "/api/journeys/"+rec.ID+"/csv", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, fmt.Sprintf(`attachment; filename="journey-%s.csv"`, rec.ID), w.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSuffix(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 5+1+1+models.StageCount)
	assert.Equal(t, "使用者類型：新手用戶", lines[0])
	assert.Equal(t, "作者：Tofus", lines[1])
	assert.Equal(t, "建立時間：2024/3/9", lines[2])
	assert.Equal(t, "", lines[5])
	assert.Equal(t, "觸發事件,行為1,描述,回應,痛點,2,情緒", lines[7])
}

func TestChartEndpoints(t *testing.T) {
	r, _ := newTestServer(t)
	rec := createJourney(t, r, "新手用戶", 2, 5, 8, 9, 6, 3)

	w := do(r, http.MethodGet, "/api/journeys/"+rec.ID+"/chart", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var c struct {
		Title  string `json:"title"`
		Points []struct {
			Label string `json:"label"`
			Tier  string `json:"tier"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, chart.Title, c.Title)
	tiers := make([]string, 0, len(c.Points))
	for _, p := range c.Points {
		tiers = append(tiers, p.Tier)
	}
	assert.Equal(t, []string{"low", "mid", "high", "high", "mid", "low"}, tiers)
	assert.Equal(t, "觸發事件", c.Points[0].Label)

	w = do(r, http.MethodGet, "/api/journeys/"+rec.ID+"/chart.svg", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")
	assert.Equal(t, models.StageCount, strings.Count(w.Body.String(), "<circle"))
}

func TestStats_CachedAndFlushedOnInsert(t *testing.T) {
	store := &countingStore{JourneyStore: newSQLiteStore(t)}
	r := newRouter(t, store, RouterConfig{})

	readStats := func() models.Stats {
		w := do(r, http.MethodGet, "/api/stats", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var s models.Stats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
		return s
	}

	s := readStats()
	assert.Zero(t, s.TotalJourneys)
	assert.NotNil(t, s.RecentContributions)
	readStats()
	assert.Equal(t, 1, store.countCalls, "second read is served from cache")

	createJourney(t, r, "新手用戶", 5, 5, 5, 5, 5, 5)
	anon := journeyRequest("資深用戶", 5, 5, 5, 5, 5, 5)
	anon.AuthorName = ""
	require.Equal(t, http.StatusCreated, postJSON(t, r, anon).Code)

	s = readStats()
	assert.Equal(t, 2, store.countCalls)
	assert.EqualValues(t, 2, s.TotalJourneys)
	assert.EqualValues(t, 1, s.TotalContributors)
	require.Len(t, s.RecentContributions, 2)
	assert.Equal(t, "資深用戶", s.RecentContributions[0].Title)
	assert.Equal(t, models.AnonymousAuthor, s.RecentContributions[0].DisplayAuthor())
}

func TestStats_StoreFailure(t *testing.T) {
	r := newRouter(t, failingStore{}, RouterConfig{})

	w := do(r, http.MethodGet, "/api/stats", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(r, http.MethodGet, "/about", nil, "")
	require.Equal(t, http.StatusOK, w.Code, "about page falls back to zeros")
	assert.Contains(t, w.Body.String(), `<p class="total-journeys">0</p>`)
}

func TestPromptTemplate(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(r, http.MethodGet, "/api/prompt-template", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, web.PromptTemplate, w.Body.String())
}

func TestHealthAndReadiness(t *testing.T) {
	r, _ := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", nil, "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/readyz", nil, "").Code)

	down := newRouter(t, failingStore{}, RouterConfig{})
	assert.Equal(t, http.StatusOK, do(down, http.MethodGet, "/healthz", nil, "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(down, http.MethodGet, "/readyz", nil, "").Code)
}

func TestSubmitRateLimit(t *testing.T) {
	r := newRouter(t, newSQLiteStore(t), RouterConfig{SubmitPerMin: 1, SubmitBurst: 1})

	assert.Equal(t, http.StatusCreated, postJSON(t, r, journeyRequest("新手用戶", 5, 5, 5, 5, 5, 5)).Code)
	assert.Equal(t, http.StatusTooManyRequests, postJSON(t, r, journeyRequest("新手用戶", 5, 5, 5, 5, 5, 5)).Code)
}

func postJSONFrom(t *testing.T, r http.Handler, forwardedFor string) int {
	t.Helper()
	body, err := json.Marshal(journeyRequest("新手用戶", 5, 5, 5, 5, 5, 5))
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/journeys", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestSubmitRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r := newRouter(t, newSQLiteStore(t), RouterConfig{SubmitPerMin: 1, SubmitBurst: 1})

	assert.Equal(t, http.StatusCreated, postJSONFrom(t, r, "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, postJSONFrom(t, r, "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, postJSONFrom(t, r, "203.0.113.3"))
}

func TestSubmitRateLimit_TrustedProxy(t *testing.T) {
	// httptest requests come from 192.0.2.1
	r := newRouter(t, newSQLiteStore(t), RouterConfig{
		SubmitPerMin:   1,
		SubmitBurst:    1,
		TrustedProxies: []string{"192.0.2.1"},
	})

	assert.Equal(t, http.StatusCreated, postJSONFrom(t, r, "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, postJSONFrom(t, r, "203.0.113.1"))
	assert.Equal(t, http.StatusCreated, postJSONFrom(t, r, "203.0.113.2"))
}

func TestRouter_InvalidTrustedProxyPanics(t *testing.T) {
	assert.Panics(t, func() {
		newRouter(t, newSQLiteStore(t), RouterConfig{TrustedProxies: []string{"not-an-ip"}})
	})
}
