package models

import "time"

// ApprovalRecord is the normalized, display-oriented shape of one pending
// transaction. Records are immutable once constructed and replaced wholesale
// on each poll cycle.
type ApprovalRecord struct {
	SourceSystem  string    `json:"sourceSystem"`
	Module        string    `json:"module"`
	TransactionID string    `json:"txnId"`
	AccountNumber string    `json:"accountNumber"`
	CustomerName  string    `json:"customerName"`
	Amount        float64   `json:"amount"`
	Branch        string    `json:"branch"`
	Status        string    `json:"status"`
	AgeMinutes    int       `json:"ageMinutes"`
	Priority      string    `json:"priority"`
	Initiator     string    `json:"initiator"`
	Timestamp     time.Time `json:"timestamp"`

	// Routing fields carry everything needed to re-invoke the originating
	// adapter for this record: branch+account for the FCUBS family, log
	// identifier+branch for OBBRN.
	BranchCode  string `json:"branchCode"`
	AccountCode string `json:"accountCode"`
	LogID       string `json:"logId,omitempty"`
}

// RawPendingItem is one element of the upstream pending collection. Field
// names differ per backend, so normalization works over the raw map.
type RawPendingItem map[string]interface{}
