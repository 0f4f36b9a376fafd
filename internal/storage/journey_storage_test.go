package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tofuswang/journey/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "journeys.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func testRecord(n int, title, context, goal, author string) models.JourneyRecord {
	rec := models.JourneyRecord{
		ID:         fmt.Sprintf("00000000-0000-4000-8000-%012d", n),
		AuthorName: author,
		Title:      title,
		Context:    context,
		Goal:       goal,
		CreatedAt:  baseTime.Add(time.Duration(n) * time.Minute),
	}
	for i := range rec.Stages {
		rec.Stages[i] = models.Stage{
			StepName:     fmt.Sprintf("step %d", i+1),
			Description:  "desc",
			Response:     "resp",
			PainPoint:    "pain",
			EmotionScore: i + 1,
			Emotion:      "ok",
		}
	}
	return rec
}

func ids(recs []models.JourneyRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestCreateAndGetJourney(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	rec := testRecord(1, "新手用戶", "首次使用", "完成註冊", "Tofus")
	rec.Stages[2].Description = "含有,逗號與\"引號\""

	require.NoError(t, store.CreateJourney(ctx, rec))

	got, err := store.GetJourney(ctx, rec.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("stored record mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, got.Stages, models.StageCount)
}

func TestCreateJourney_DuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	rec := testRecord(1, "a", "b", "c", "")

	require.NoError(t, store.CreateJourney(ctx, rec))
	err := store.CreateJourney(ctx, rec)
	assert.ErrorIs(t, err, ErrDuplicateJourney)
}

func TestGetJourney_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetJourney(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJourneyNotFound)
}

func TestListJourneys_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	for _, n := range []int{2, 1, 3} {
		require.NoError(t, store.CreateJourney(ctx, testRecord(n, "t", "c", "g", "")))
	}

	recs, err := store.ListJourneys(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		testRecord(3, "", "", "", "").ID,
		testRecord(2, "", "", "", "").ID,
		testRecord(1, "", "", "", "").ID,
	}, ids(recs))

	limited, err := store.ListJourneys(ctx, ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestListJourneys_Empty(t *testing.T) {
	store := newTestStore(t)
	recs, err := store.ListJourneys(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestListJourneys_Search(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateJourney(ctx, testRecord(1, "新手用戶", "首次使用產品", "完成註冊", "")))
	require.NoError(t, store.CreateJourney(ctx, testRecord(2, "Power User", "daily work", "export reports", "")))
	require.NoError(t, store.CreateJourney(ctx, testRecord(3, "資深用戶", "遇到問題時", "Find HELP fast", "")))
	require.NoError(t, store.CreateJourney(ctx, testRecord(4, "100% done", "c", "g", "")))
	require.NoError(t, store.CreateJourney(ctx, testRecord(5, "Café Owner", "Über app", "Ωmega goal", "")))
	require.NoError(t, store.CreateJourney(ctx, testRecord(6, "ＰＯＳ店員", "c", "g", "")))

	cases := []struct {
		name  string
		query string
		want  []int
	}{
		{"empty term is no filter", "", []int{6, 5, 4, 3, 2, 1}},
		{"blank term is no filter", "   ", []int{6, 5, 4, 3, 2, 1}},
		{"title match", "新手", []int{1}},
		{"context match", "問題", []int{3}},
		{"goal match case-insensitive", "help", []int{3}},
		{"title match case-insensitive", "POWER", []int{2}},
		{"shared substring across records", "用戶", []int{3, 1}},
		{"accented title exact case", "café", []int{5}},
		{"accented title upper case", "CAFÉ", []int{5}},
		{"accented context lower case", "über", []int{5}},
		{"greek goal lower case", "ωmega", []int{5}},
		{"full-width latin lower case", "ｐｏｓ", []int{6}},
		{"percent is literal", "%", []int{4}},
		{"underscore is literal", "_", nil},
		{"no match", "不存在的字", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs, err := store.ListJourneys(ctx, ListFilter{Query: tc.query})
			require.NoError(t, err)
			want := []string{}
			for _, n := range tc.want {
				want = append(want, testRecord(n, "", "", "", "").ID)
			}
			assert.Equal(t, want, ids(recs))
		})
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateJourney(ctx, testRecord(1, "one", "c", "g", "Amy")))
	require.NoError(t, store.CreateJourney(ctx, testRecord(2, "two", "c", "g", "")))
	require.NoError(t, store.CreateJourney(ctx, testRecord(3, "three", "c", "g", "Amy")))
	require.NoError(t, store.CreateJourney(ctx, testRecord(4, "four", "c", "g", "Bob")))

	total, err := store.CountJourneys(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	contributors, err := store.CountContributors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), contributors)

	recent, err := store.RecentContributions(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "four", recent[0].Title)
	assert.Equal(t, "Bob", recent[0].AuthorName)
	assert.Equal(t, "", recent[1].AuthorName)
	assert.Equal(t, models.AnonymousAuthor, recent[1].DisplayAuthor())
	assert.True(t, recent[2].CreatedAt.Equal(baseTime.Add(2*time.Minute)))
}

func TestLegacyStageRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	legacy := `{"step_name":"看到廣告","description":"d","scammer_action":"推播通知","pain_point":"p","emotion_score":"7","emotion":"好奇"}`

	_, err := store.db.ExecContext(ctx, `INSERT INTO journey_maps
		(journey_id, author_name, journey_title, context, goal, created_at,
		 step1_trigger, step2_interaction, step3_trust, step4_turning, step5_conclusion, step6_aftermath)
		VALUES (?, NULL, 'legacy', '', '', ?, ?, ?, ?, ?, ?, ?)`,
		"legacy-1", baseTime.Format(sqliteTimeLayout), legacy, legacy, legacy, legacy, legacy, legacy)
	require.NoError(t, err)

	rec, err := store.GetJourney(ctx, "legacy-1")
	require.NoError(t, err)
	assert.Equal(t, "推播通知", rec.Stages[0].Response)
	assert.Equal(t, 7, rec.Stages[5].EmotionScore)
	assert.Equal(t, "", rec.AuthorName)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mongo", "")
	assert.Error(t, err)
}

func TestOpen_SQLiteMemory(t *testing.T) {
	store, err := Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(context.Background()))
	require.NoError(t, store.CreateJourney(context.Background(), testRecord(1, "m", "c", "g", "")))
	n, err := store.CountJourneys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
