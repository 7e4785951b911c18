package worklist

import (
	"strconv"
	"strings"
	"time"

	"github.com/haricode-hub/dashboard/internal/models"
)

// timestampLayouts are tried in order when parsing MAKER_DT_STAMP. Core
// banking emits a few different date shapes depending on the module.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02-Jan-2006 15:04:05",
	"02-Jan-2006",
}

// Normalize maps one raw pending item onto the canonical ApprovalRecord.
// Every field falls back through its known upstream variants before taking
// the documented default, so a completely empty item still yields a usable
// record.
func Normalize(raw models.RawPendingItem) models.ApprovalRecord {
	branch := stringField(raw, "000", "BRANCH_CODE", "LOCAL_BRANCH")
	account := stringField(raw, "N/A", "ACCOUNT_NO", "CUSTOMER_NO")

	return models.ApprovalRecord{
		SourceSystem:  strings.ToUpper(stringField(raw, "FCUBS", "SYSTEM_NAME", "SOURCE_SYSTEM")),
		Module:        stringField(raw, "CUSTOMER", "MODULE", "MODULE_CODE"),
		TransactionID: stringField(raw, "N/A", "TXN_ID", "CUSTOMER_NO"),
		AccountNumber: account,
		CustomerName:  stringField(raw, "Unknown", "CUSTOMER_NAME1", "CUSTOMER_NAME"),
		Amount:        numberField(raw, 0, "AMOUNT"),
		Branch:        branch,
		Status:        stringField(raw, "U", "STATUS", "AUTH_STAT"),
		AgeMinutes:    intField(raw, 5, "AGE_MINUTES"),
		Priority:      stringField(raw, "Normal", "PRIORITY"),
		Initiator:     stringField(raw, "System", "MAKER_ID"),
		Timestamp:     timestampField(raw, "MAKER_DT_STAMP"),
		BranchCode:    branch,
		AccountCode:   account,
		LogID:         stringField(raw, "", "EJ_LOG_ID", "LOG_ID"),
	}
}

func stringField(raw models.RawPendingItem, def string, keys ...string) string {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return def
}

func numberField(raw models.RawPendingItem, def float64, keys ...string) float64 {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			return v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return def
}

func intField(raw models.RawPendingItem, def int, keys ...string) int {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return def
}

func timestampField(raw models.RawPendingItem, key string) time.Time {
	if s, ok := raw[key].(string); ok && s != "" {
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return time.Now()
}
