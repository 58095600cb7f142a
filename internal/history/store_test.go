package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/aqscreen/internal/result"
	"github.com/harrison/aqscreen/internal/scoring"
	"github.com/harrison/aqscreen/internal/submission"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func succeededAttempt(id string, at time.Time) submission.Attempt {
	return submission.Attempt{
		ID:        id,
		StartedAt: at,
		Duration:  1500 * time.Millisecond,
		Outcome:   submission.Succeeded,
		Request: scoring.PredictRequest{
			A1Score: 1, A2Score: 1, A3Score: 1, A4Score: 1, A5Score: 1, A6Score: 1,
			Age: "30", Gender: "f", Relation: "Self",
		},
		Prediction: &scoring.Prediction{
			Success:         true,
			Prediction:      "YES",
			Confidence:      82.5,
			AQTotalScore:    6,
			Explanation:     "Several traits reported.",
			Recommendations: []string{"Talk to a specialist"},
		},
	}
}

func TestNewStore(t *testing.T) {
	tests := []struct {
		name   string
		dbPath string
	}{
		{name: "handles in-memory database", dbPath: ":memory:"},
		{name: "creates database file", dbPath: filepath.Join(t.TempDir(), "history.db")},
		{name: "creates parent directories if needed", dbPath: filepath.Join(t.TempDir(), "nested", "dir", "history.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.dbPath)
			require.NoError(t, err)
			require.NotNil(t, store)
			defer store.Close()

			entries, err := store.List(context.Background(), 0)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestRecordAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, succeededAttempt("abc123-0001", at)))

	e, err := store.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123-0001", e.ID)
	assert.True(t, e.StartedAt.Equal(at))
	assert.Equal(t, 1500*time.Millisecond, e.Duration)
	assert.True(t, e.Succeeded())
	assert.Equal(t, "30", e.Request.Age)
	assert.Equal(t, 1, e.Request.A6Score)
	require.NotNil(t, e.Prediction)
	assert.Equal(t, 82.5, e.Prediction.Confidence)
	assert.Equal(t, []string{"Talk to a specialist"}, e.Prediction.Recommendations)

	p, ok := e.Presentation()
	require.True(t, ok)
	assert.Equal(t, result.PositiveLabel, p.CategoryLabel)
	assert.Equal(t, "82.5%", p.ConfidenceText)
}

func TestRecordFailedAttempt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := submission.Attempt{
		ID:        "fail-1",
		StartedAt: time.Now(),
		Outcome:   submission.Failed,
		Message:   submission.NetworkErrorMessage,
	}
	require.NoError(t, store.Record(ctx, a))

	e, err := store.Get(ctx, "fail-1")
	require.NoError(t, err)
	assert.False(t, e.Succeeded())
	assert.Nil(t, e.Prediction)
	assert.Equal(t, submission.NetworkErrorMessage, e.Message)

	_, ok := e.Presentation()
	assert.False(t, ok)
}

func TestRecordDuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	a := succeededAttempt("dup", time.Now())

	require.NoError(t, store.Record(ctx, a))
	assert.Error(t, store.Record(ctx, a))
}

func TestListOrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, store.Record(ctx, succeededAttempt(id, base.Add(time.Duration(i)*time.Hour))))
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "all entries newest first", limit: 0, want: []string{"third", "second", "first"}},
		{name: "limited", limit: 2, want: []string{"third", "second"}},
		{name: "limit above count", limit: 10, want: []string{"third", "second", "first"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.List(ctx, tt.limit)
			require.NoError(t, err)
			ids := make([]string, len(entries))
			for i, e := range entries {
				ids[i] = e.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGetErrors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, succeededAttempt("aa11", time.Now())))
	require.NoError(t, store.Record(ctx, succeededAttempt("aa22", time.Now())))

	tests := []struct {
		name    string
		prefix  string
		wantErr error
	}{
		{name: "empty prefix", prefix: "  ", wantErr: ErrNotFound},
		{name: "no match", prefix: "zz", wantErr: ErrNotFound},
		{name: "ambiguous prefix", prefix: "aa", wantErr: ErrAmbiguous},
		{name: "wildcards are literal", prefix: "a%", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Get(ctx, tt.prefix)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	e, err := store.Get(ctx, "aa2")
	require.NoError(t, err)
	assert.Equal(t, "aa22", e.ID)
}

func TestStoreImplementsRecorder(t *testing.T) {
	var r submission.Recorder = newTestStore(t)
	assert.NotNil(t, r)
}
