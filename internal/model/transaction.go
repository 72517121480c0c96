package model

import "time"

// TransactionType carries the sign of a transaction. Amounts are always
// non-negative; whether money came in or went out lives here.
type TransactionType string

const (
	// TypeIncome marks money coming in.
	TypeIncome TransactionType = "income"
	// TypeExpense marks money going out.
	TypeExpense TransactionType = "expense"
)

// IsValid reports whether the type is one of the known values.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single income or expense record.
//
// Tags hold tag names or ids; they are weak references and may point at
// tags that no longer exist. Display code must tolerate that.
type Transaction struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        Date            `json:"date"`
	Tags        []string        `json:"tags"`
	Icon        string          `json:"icon,omitempty"`
	IsRecurring bool            `json:"isRecurring"`
	RecurringID string          `json:"recurringId,omitempty"`
	Frequency   string          `json:"frequency,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FirstTag returns the transaction's primary tag, or empty if untagged.
func (t *Transaction) FirstTag() string {
	if len(t.Tags) == 0 {
		return ""
	}
	return t.Tags[0]
}

// TransactionPatch describes a partial update. Only non-nil fields are
// applied; everything else is retained byte-for-byte.
type TransactionPatch struct {
	Source      *string
	Amount      *float64
	Type        *TransactionType
	Date        *Date
	Tags        *[]string
	Icon        *string
	IsRecurring *bool
	RecurringID *string
	Frequency   *string
}
