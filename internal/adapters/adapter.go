// Package adapters defines the uniform contract every backend-specific
// adapter implements, and the resolver mapping system tags to adapter
// instances.
package adapters

import "context"

// ActionApprove is the only action tag currently implemented by the
// concrete adapters.
const ActionApprove = "APPROVE"

// Params carries the discriminated identifying fields an adapter needs.
// The FCUBS family routes by Branch+Account; OBBRN routes by LogID+Branch.
// UserID is the supervisor identity, resolved once at the system boundary
// and threaded through explicitly.
type Params struct {
	Branch  string `json:"brn,omitempty"`
	Account string `json:"acc,omitempty"`
	LogID   string `json:"ejLogId,omitempty"`
	UserID  string `json:"userId,omitempty"`
}

// Details wraps a backend-native detail payload in a uniform envelope.
type Details struct {
	Data interface{} `json:"data"`
}

// Adapter is the capability contract of one backend system.
//
// ExecuteAction mutates real backend transaction state and is NOT
// idempotent; approving an already-approved transaction surfaces a
// backend-specific failure. Neither method retries: failures propagate with
// upstream status and body preserved, and retrying is the caller's call.
type Adapter interface {
	FetchDetails(ctx context.Context, p Params) (*Details, error)
	ExecuteAction(ctx context.Context, actionType string, p Params) (interface{}, error)
}
