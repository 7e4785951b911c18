// internal/worklist/normalize_test.go
package worklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/haricode-hub/dashboard/internal/models"
)

func TestNormalize_EmptyItemTakesAllDefaults(t *testing.T) {
	before := time.Now()
	rec := Normalize(models.RawPendingItem{})
	after := time.Now()

	assert.Equal(t, "FCUBS", rec.SourceSystem)
	assert.Equal(t, "CUSTOMER", rec.Module)
	assert.Equal(t, "N/A", rec.TransactionID)
	assert.Equal(t, "N/A", rec.AccountNumber)
	assert.Equal(t, "Unknown", rec.CustomerName)
	assert.Equal(t, float64(0), rec.Amount)
	assert.Equal(t, "000", rec.Branch)
	assert.Equal(t, "U", rec.Status)
	assert.Equal(t, 5, rec.AgeMinutes)
	assert.Equal(t, "Normal", rec.Priority)
	assert.Equal(t, "System", rec.Initiator)
	assert.Equal(t, "", rec.LogID)

	assert.False(t, rec.Timestamp.Before(before))
	assert.False(t, rec.Timestamp.After(after))
}

func TestNormalize_PrimaryKeysWin(t *testing.T) {
	rec := Normalize(models.RawPendingItem{
		"SYSTEM_NAME":    "obbrn",
		"SOURCE_SYSTEM":  "FCUBS",
		"MODULE":         "TELLER",
		"MODULE_CODE":    "CU",
		"TXN_ID":         "TXN7",
		"CUSTOMER_NO":    "C100",
		"ACCOUNT_NO":     "0110009",
		"CUSTOMER_NAME1": "Asha Rao",
		"CUSTOMER_NAME":  "A. Rao",
		"AMOUNT":         2500.75,
		"BRANCH_CODE":    "011",
		"LOCAL_BRANCH":   "006",
		"STATUS":         "P",
		"AUTH_STAT":      "U",
		"AGE_MINUTES":    float64(42),
		"PRIORITY":       "High",
		"MAKER_ID":       "TELLER1",
		"MAKER_DT_STAMP": "2026-03-01T10:30:00Z",
		"EJ_LOG_ID":      "EJ9",
		"LOG_ID":         "L9",
	})

	assert.Equal(t, "OBBRN", rec.SourceSystem)
	assert.Equal(t, "TELLER", rec.Module)
	assert.Equal(t, "TXN7", rec.TransactionID)
	assert.Equal(t, "0110009", rec.AccountNumber)
	assert.Equal(t, "Asha Rao", rec.CustomerName)
	assert.Equal(t, 2500.75, rec.Amount)
	assert.Equal(t, "011", rec.Branch)
	assert.Equal(t, "P", rec.Status)
	assert.Equal(t, 42, rec.AgeMinutes)
	assert.Equal(t, "High", rec.Priority)
	assert.Equal(t, "TELLER1", rec.Initiator)
	assert.Equal(t, "EJ9", rec.LogID)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), rec.Timestamp)
}

func TestNormalize_SecondaryFallbacks(t *testing.T) {
	rec := Normalize(models.RawPendingItem{
		"SOURCE_SYSTEM": "obbrn",
		"MODULE_CODE":   "CU",
		"CUSTOMER_NO":   "C100",
		"CUSTOMER_NAME": "A. Rao",
		"LOCAL_BRANCH":  "006",
		"AUTH_STAT":     "A",
		"LOG_ID":        "L9",
	})

	assert.Equal(t, "OBBRN", rec.SourceSystem)
	assert.Equal(t, "CU", rec.Module)
	assert.Equal(t, "C100", rec.TransactionID)
	assert.Equal(t, "C100", rec.AccountNumber)
	assert.Equal(t, "A. Rao", rec.CustomerName)
	assert.Equal(t, "006", rec.Branch)
	assert.Equal(t, "A", rec.Status)
	assert.Equal(t, "L9", rec.LogID)
}

func TestNormalize_RoutingFieldsMirrorDisplayFields(t *testing.T) {
	rec := Normalize(models.RawPendingItem{
		"BRANCH_CODE": "011",
		"ACCOUNT_NO":  "0110009",
	})

	assert.Equal(t, rec.Branch, rec.BranchCode)
	assert.Equal(t, rec.AccountNumber, rec.AccountCode)
}

func TestNormalize_NumericCoercion(t *testing.T) {
	rec := Normalize(models.RawPendingItem{
		"AMOUNT":      "150.50",
		"AGE_MINUTES": "12",
		"ACCOUNT_NO":  float64(110009),
	})

	assert.Equal(t, 150.50, rec.Amount)
	assert.Equal(t, 12, rec.AgeMinutes)
	assert.Equal(t, "110009", rec.AccountNumber)
}

func TestNormalize_UnparseableTimestampUsesNow(t *testing.T) {
	before := time.Now()
	rec := Normalize(models.RawPendingItem{"MAKER_DT_STAMP": "not-a-date"})
	assert.False(t, rec.Timestamp.Before(before))
}

func TestNormalize_BackendDateFormats(t *testing.T) {
	tests := []struct {
		value    string
		expected time.Time
	}{
		{"2026-03-01 10:30:00", time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"01-Mar-2026", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		rec := Normalize(models.RawPendingItem{"MAKER_DT_STAMP": tt.value})
		assert.Equal(t, tt.expected, rec.Timestamp, tt.value)
	}
}
