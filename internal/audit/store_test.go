package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docucheck/pkg/types"
)

func testReport(runID string, generatedAt time.Time) *types.StructuredReport {
	return &types.StructuredReport{
		RunID:             runID,
		GeneratedAt:       generatedAt,
		Applicant:         types.ApplicantProfile{Surname: "Doe", GivenNames: "Jane", VisaType: "tourist"},
		Summary:           "1 document processed",
		OverallStatus:     types.ReportVerified,
		OverallConfidence: 91,
		NextActions:       []string{"Proceed with standard processing."},
		Eligibility: types.EligibilityResult{
			Decision: types.Eligible,
			Score:    100,
			VisaType: "tourist",
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rep := testReport("20260901T120000-aabbccdd", time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, rep))

	got, err := store.Get(ctx, rep.RunID)
	require.NoError(t, err)
	assert.Equal(t, rep.RunID, got.RunID)
	assert.Equal(t, types.ReportVerified, got.OverallStatus)
	assert.Equal(t, 91, got.OverallConfidence)
	assert.Equal(t, "tourist", got.Eligibility.VisaType)
}

func TestGetUnknownRun(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveReplacesExistingRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rep := testReport("run-1", time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, rep))

	rep.OverallStatus = types.ReportReview
	rep.OverallConfidence = 60
	require.NoError(t, store.Save(ctx, rep))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, types.ReportReview, got.OverallStatus)

	summaries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-old", "run-mid", "run-new"} {
		rep := testReport(id, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, store.Save(ctx, rep))
	}

	summaries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "run-new", summaries[0].RunID)
	assert.Equal(t, "run-old", summaries[2].RunID)
	assert.Equal(t, "Jane Doe", summaries[0].Applicant)
	assert.Equal(t, types.ReportVerified, summaries[0].Status)
	assert.True(t, summaries[0].GeneratedAt.After(summaries[1].GeneratedAt))
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	rep := testReport("run-persisted", time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, rep))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "run-persisted")
	require.NoError(t, err)
	assert.Equal(t, "run-persisted", got.RunID)
}
