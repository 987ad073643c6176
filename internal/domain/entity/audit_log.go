package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de acción del log de auditoría de inventario.
const (
	AuditActionIncrease = "STOCK_INCREASE"
	AuditActionDecrease = "STOCK_DECREASE"
)

// Severidades del log de auditoría, derivadas de la cantidad resultante.
const (
	SeverityCritical = "CRITICAL" // cantidad 0
	SeverityHigh     = "HIGH"     // cantidad < 5
	SeverityMedium   = "MEDIUM"   // cantidad < 10
	SeverityNormal   = "NORMAL"
)

// AuditLog registra un cambio de stock: es el sistema de registro de los
// movimientos de inventario, nunca se suprime una entrada.
type AuditLog struct {
	ID               string
	Timestamp        time.Time
	ActionType       string // STOCK_INCREASE | STOCK_DECREASE
	ItemID           string
	ItemName         string
	Category         string
	PreviousQuantity int
	NewQuantity      int
	ChangeAmount     int // con signo: new - previous
	ItemPrice        decimal.Decimal
	ValueImpact      decimal.Decimal // precio × |cambio|
	Severity         string
	TriggeredBy      string // usuario o "system"
	Notes            string
}

// SeverityForQuantity deriva la severidad de la cantidad resultante.
func SeverityForQuantity(quantity int) string {
	switch {
	case quantity == 0:
		return SeverityCritical
	case quantity < 5:
		return SeverityHigh
	case quantity < 10:
		return SeverityMedium
	default:
		return SeverityNormal
	}
}
