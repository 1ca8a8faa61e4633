package usecase

import (
	"testing"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestReconcile_FirstSeenTakesExtracted(t *testing.T) {
	extracted := entity.Operations{"10_COAT": {}, "PPK": {}}

	got := Reconcile(nil, extracted)
	assert.True(t, got.Equal(extracted))

	got["20_MECH"] = entity.OperationRecord{}
	assert.Len(t, extracted, 2, "result must not alias the extracted map")
}

func TestReconcile_StoredValuesWin(t *testing.T) {
	stored := entity.Operations{
		"10_COAT": {StartDttm: testutil.Str("2024-03-01T08:00"), EndDttm: testutil.Str("2024-03-01T12:00")},
		"PPK":     {},
	}
	extracted := entity.Operations{"10_COAT": {}, "20_MECH": {}, "PPK": {}}

	got := Reconcile(stored, extracted)

	assert.Equal(t, []string{"10_COAT", "20_MECH", "PPK"}, got.Names())
	assert.Equal(t, entity.StatusCompleted, got["10_COAT"].Status())
	assert.Equal(t, "2024-03-01T08:00", *got["10_COAT"].StartDttm)
	assert.True(t, got["20_MECH"].IsEmpty())
	assert.True(t, got["PPK"].IsEmpty())
}

func TestReconcile_StoredOnlyOperationsDropped(t *testing.T) {
	stored := entity.Operations{
		"10_COAT": {Comment: testutil.Str("old")},
		"99_OLD":  {Comment: testutil.Str("removed from the card")},
		"PPK":     {},
	}
	extracted := entity.Operations{"10_COAT": {}, "PPK": {}}

	got := Reconcile(stored, extracted)

	assert.NotContains(t, got, "99_OLD")
	assert.Equal(t, "old", *got["10_COAT"].Comment)
}

func TestReconcile_EmptyStoredRecordTakesFresh(t *testing.T) {
	stored := entity.Operations{"10_COAT": {Comment: testutil.Str("")}, "PPK": {}}
	extracted := entity.Operations{"10_COAT": {}, "20_OUT": {}, "PPK": {}}

	got := Reconcile(stored, extracted)
	assert.True(t, got.Equal(extracted))
}

func TestReconcile_Idempotent(t *testing.T) {
	stored := entity.Operations{
		"10_COAT": {StartDttm: testutil.Str("2024-03-01T08:00")},
		"30_NDT":  {User: testutil.Str("inspector@example.com")},
		"PPK":     {},
	}
	extracted := entity.Operations{"10_COAT": {}, "20_MECH": {}, "PPK": {}}

	once := Reconcile(stored, extracted)
	twice := Reconcile(once, extracted)
	assert.True(t, once.Equal(twice))
}
