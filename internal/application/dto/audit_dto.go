package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditLogResponse entrada del log de auditoría de inventario.
type AuditLogResponse struct {
	ID               string          `json:"id"`
	Timestamp        time.Time       `json:"timestamp"`
	ActionType       string          `json:"action_type"`
	ItemID           string          `json:"item_id"`
	ItemName         string          `json:"item_name"`
	Category         string          `json:"category,omitempty"`
	PreviousQuantity int             `json:"previous_quantity"`
	NewQuantity      int             `json:"new_quantity"`
	ChangeAmount     int             `json:"change_amount"`
	ItemPrice        decimal.Decimal `json:"item_price"`
	ValueImpact      decimal.Decimal `json:"value_impact"`
	Severity         string          `json:"severity"`
	TriggeredBy      string          `json:"triggered_by"`
	Notes            string          `json:"notes,omitempty"`
}
