package model

import "time"

// LedgerKind classifies a drink-dollar ledger entry
type LedgerKind string

const (
	LedgerKindGrant      LedgerKind = "grant"
	LedgerKindRedeem     LedgerKind = "redeem"
	LedgerKindRefund     LedgerKind = "refund"
	LedgerKindAdjustment LedgerKind = "adjustment"
)

// IsValid returns true if the kind is known
func (k LedgerKind) IsValid() bool {
	switch k {
	case LedgerKindGrant, LedgerKindRedeem, LedgerKindRefund, LedgerKindAdjustment:
		return true
	default:
		return false
	}
}

// AllowsAmount applies the sign rule for the kind
func (k LedgerKind) AllowsAmount(amount int64) bool {
	switch k {
	case LedgerKindGrant, LedgerKindRefund:
		return amount > 0
	case LedgerKindRedeem:
		return amount < 0
	case LedgerKindAdjustment:
		return amount != 0
	default:
		return false
	}
}

// LedgerEntry is one immutable movement of drink dollars
type LedgerEntry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Amount    int64      `json:"amount"` // signed cents
	Kind      LedgerKind `json:"kind"`
	Reason    string     `json:"reason"`
	Reference string     `json:"reference,omitempty"`
	CreatedBy string     `json:"created_by,omitempty"`
	CreatedOn time.Time  `json:"created_on"`
}

// Balance is the running total of a user's ledger
type Balance struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
	Entries int    `json:"entries"`
}

const (
	MaxLedgerReasonLength    = 300
	MaxLedgerReferenceLength = 100
)

// CreateLedgerEntryRequest represents a request to append a ledger entry
type CreateLedgerEntryRequest struct {
	UserID    string     `json:"user_id"`
	Amount    int64      `json:"amount"`
	Kind      LedgerKind `json:"kind"`
	Reason    string     `json:"reason"`
	Reference string     `json:"reference,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateLedgerEntryRequest) Validate() []FieldError {
	var errors []FieldError

	if r.UserID == "" {
		errors = append(errors, FieldError{Field: "user_id", Message: "user_id is required"})
	} else if !IsRecordID(r.UserID, "user") {
		errors = append(errors, FieldError{Field: "user_id", Message: "user_id must be a user id"})
	}
	if r.Amount == 0 {
		errors = append(errors, FieldError{Field: "amount", Message: "amount cannot be 0"})
	}
	if !r.Kind.IsValid() {
		errors = append(errors, FieldError{Field: "kind", Message: "kind must be 'grant', 'redeem', 'refund' or 'adjustment'"})
	} else if r.Amount != 0 && !r.Kind.AllowsAmount(r.Amount) {
		msg := "amount must be positive for " + string(r.Kind)
		if r.Kind == LedgerKindRedeem {
			msg = "amount must be negative for redeem"
		}
		errors = append(errors, FieldError{Field: "amount", Message: msg})
	}
	errors = required(errors, "reason", r.Reason)
	errors = maxLen(errors, "reason", r.Reason, MaxLedgerReasonLength)
	errors = maxLen(errors, "reference", r.Reference, MaxLedgerReferenceLength)

	return errors
}
