package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
		sqlmock.MonitorPingsOption(true),
	)
	require.NoError(t, err)

	mock.ExpectPing()
	store, err := NewPostgresStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		store.Close()
	})
	return store, mock
}

func TestPostgresStore_Save(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO feedback`).
		WithArgs("fena", "reviewer-1", 0.36, "Prerenal azotemia", "Accurate", true, "",
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	fb := &Feedback{
		CalculatorID:   "fena",
		ReviewerID:     "reviewer-1",
		ComputedValue:  0.36,
		Interpretation: "Prerenal azotemia",
		Assessment:     AssessmentAccurate,
		Agreed:         true,
	}

	err := store.Save(context.Background(), fb)

	require.NoError(t, err)
	assert.Equal(t, int64(7), fb.ID)
	assert.Equal(t, now, fb.CreatedAt)
	assert.False(t, fb.UpdatedAt.IsZero())
}

func TestPostgresStore_Save_QueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO feedback`).
		WillReturnError(assert.AnError)

	err := store.Save(context.Background(), sampleFeedback())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save feedback")
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "calculator_id", "reviewer_id", "computed_value",
		"interpretation", "assessment", "agreed", "notes", "created_at", "updated_at",
	}).AddRow(int64(3), "anion-gap", "reviewer-2", 15.0, "Borderline high", "Too Aggressive", false, "", now, now)

	mock.ExpectQuery(`SELECT .* FROM feedback`).
		WithArgs("anion-gap", "reviewer-2").
		WillReturnRows(rows)

	fb, err := store.Get(context.Background(), "anion-gap", "reviewer-2")

	require.NoError(t, err)
	require.NotNil(t, fb)
	assert.Equal(t, int64(3), fb.ID)
	assert.Equal(t, AssessmentTooAggressive, fb.Assessment)
	assert.InDelta(t, 15.0, fb.ComputedValue, 1e-9)
}

func TestPostgresStore_Get_Missing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM feedback`).
		WithArgs("anion-gap", "nobody").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "calculator_id", "reviewer_id", "computed_value",
			"interpretation", "assessment", "agreed", "notes", "created_at", "updated_at",
		}))

	fb, err := store.Get(context.Background(), "anion-gap", "nobody")

	require.NoError(t, err)
	assert.Nil(t, fb)
}

func TestPostgresStore_Count(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM feedback`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	count, err := store.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}

func TestPostgresStore_Delete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM feedback WHERE id`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), int64(5)))
}
