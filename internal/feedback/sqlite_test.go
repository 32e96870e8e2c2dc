package feedback

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	return store
}

func sampleFeedback() *Feedback {
	return &Feedback{
		CalculatorID:   "fena",
		ReviewerID:     "reviewer-1",
		ComputedValue:  0.36,
		Interpretation: "Prerenal azotemia",
		Assessment:     AssessmentAccurate,
		Agreed:         true,
		Notes:          "Matches the clinical picture",
	}
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "feedback-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")
}

func TestSQLiteStore_Save(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	fb := sampleFeedback()

	err := store.Save(ctx, fb)

	require.NoError(t, err)
	assert.NotZero(t, fb.ID, "ID should be assigned")
	assert.False(t, fb.CreatedAt.IsZero(), "CreatedAt should be set")
	assert.False(t, fb.UpdatedAt.IsZero(), "UpdatedAt should be set")
}

func TestSQLiteStore_Save_Update(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	fb := sampleFeedback()
	require.NoError(t, store.Save(ctx, fb))
	originalID := fb.ID

	// Same calculator + reviewer replaces the standing assessment.
	fb.Assessment = AssessmentTooConservative
	fb.Agreed = false
	fb.Notes = "Band threshold feels too low after review"

	require.NoError(t, store.Save(ctx, fb))
	assert.Equal(t, originalID, fb.ID, "Should update existing record")

	retrieved, err := store.Get(ctx, "fena", "reviewer-1")
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Equal(t, AssessmentTooConservative, retrieved.Assessment)
	assert.Equal(t, "Band threshold feels too low after review", retrieved.Notes)
	assert.False(t, retrieved.Agreed)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSQLiteStore_Get_Missing(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	fb, err := store.Get(context.Background(), "fena", "nobody")
	require.NoError(t, err)
	assert.Nil(t, fb, "missing entry returns nil without error")
}

func TestSQLiteStore_List(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	for _, reviewer := range []string{"r1", "r2", "r3"} {
		fb := sampleFeedback()
		fb.ReviewerID = reviewer
		require.NoError(t, store.Save(ctx, fb))
	}
	other := sampleFeedback()
	other.CalculatorID = "anion-gap"
	require.NoError(t, store.Save(ctx, other))

	all, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	page, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	forCalc, err := store.ListByCalculator(ctx, "fena", 10, 0)
	require.NoError(t, err)
	assert.Len(t, forCalc, 3)
	for _, fb := range forCalc {
		assert.Equal(t, "fena", fb.CalculatorID)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	fb := sampleFeedback()
	require.NoError(t, store.Save(ctx, fb))

	require.NoError(t, store.Delete(ctx, fb.ID))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSQLiteStore_ExportImport(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	fb := sampleFeedback()
	require.NoError(t, store.Save(ctx, fb))

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(ctx, &buf))
	assert.Contains(t, buf.String(), `"fena"`)

	// Import into a fresh store.
	dest := createTestStore(t)
	defer dest.Close()

	imported, skipped, err := dest.ImportJSON(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 0, skipped)

	got, err := dest.Get(ctx, "fena", "reviewer-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, AssessmentAccurate, got.Assessment)
	assert.InDelta(t, 0.36, got.ComputedValue, 1e-9)
}
