package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
	"github.com/jhoicas/stock-management-api/internal/domain/stock"
	"github.com/jhoicas/stock-management-api/pkg/logger"
)

// AuditLogObserver registra todo cambio de stock en el log de auditoría.
// Es el sistema de registro de movimientos: nunca suprime una entrada, y su
// propio fallo se trata como el de cualquier otro observador (log y continuar).
type AuditLogObserver struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewAuditLogObserver construye el observador.
func NewAuditLogObserver(repo repository.AuditLogRepository, log *logger.Logger) *AuditLogObserver {
	return &AuditLogObserver{repo: repo, log: log, now: time.Now}
}

// Name implementa stock.Observer.
func (o *AuditLogObserver) Name() string { return "AuditLog" }

// OnStockChange implementa stock.Observer.
func (o *AuditLogObserver) OnStockChange(ctx context.Context, event stock.ChangeEvent) error {
	actionType := entity.AuditActionIncrease
	if event.Delta() < 0 {
		actionType = entity.AuditActionDecrease
	}
	severity := entity.SeverityForQuantity(event.NewQuantity)

	record := &entity.AuditLog{
		ID:               uuid.New().String(),
		Timestamp:        o.now(),
		ActionType:       actionType,
		ItemID:           event.Item.ID,
		ItemName:         event.Item.Name,
		Category:         event.Item.Category,
		PreviousQuantity: event.PreviousQuantity,
		NewQuantity:      event.NewQuantity,
		ChangeAmount:     event.Delta(),
		ItemPrice:        event.Item.Price,
		ValueImpact:      event.ValueImpact(),
		Severity:         severity,
		TriggeredBy:      event.TriggeredBy,
		Notes:            auditNotes(event),
	}

	o.log.Info().
		Str("item_id", record.ItemID).
		Str("action", record.ActionType).
		Int("old", record.PreviousQuantity).
		Int("new", record.NewQuantity).
		Int("delta", record.ChangeAmount).
		Str("value_impact", record.ValueImpact.StringFixed(2)).
		Str("severity", record.Severity).
		Msg("auditoría: cambio de stock")

	if err := o.repo.Create(ctx, record); err != nil {
		return fmt.Errorf("guardar registro de auditoría: %w", err)
	}
	return nil
}

// auditNotes añade contexto según el tipo de transición.
func auditNotes(event stock.ChangeEvent) string {
	switch {
	case event.NewQuantity == 0:
		return "ALERTA: artículo agotado"
	case event.Delta() < 0 && event.NewQuantity < 5:
		return "ADVERTENCIA: nivel de stock bajo, considerar reorden"
	case event.Delta() > 0 && event.PreviousQuantity < 5:
		return "Stock repuesto desde nivel bajo"
	}
	return ""
}
