package domain

import "time"

// LedgerEventType names a change to an owner's ledger or budgets.
type LedgerEventType string

const (
	EventTransactionRecorded LedgerEventType = "transaction.recorded"
	EventBudgetUpserted      LedgerEventType = "budget.upserted"
	EventBudgetUpdated       LedgerEventType = "budget.updated"
	EventBudgetDeleted       LedgerEventType = "budget.deleted"
)

// LedgerEvent is published after a committed ledger or budget mutation.
type LedgerEvent struct {
	Type       LedgerEventType `json:"type"`
	UserID     string          `json:"userID"`
	EntityID   string          `json:"entityID"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// NewLedgerEvent stamps an event with the current time.
func NewLedgerEvent(t LedgerEventType, userID, entityID string) LedgerEvent {
	return LedgerEvent{Type: t, UserID: userID, EntityID: entityID, OccurredAt: time.Now().UTC()}
}
