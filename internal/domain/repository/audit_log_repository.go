package repository

import (
	"context"

	"github.com/jhoicas/stock-management-api/internal/domain/entity"
)

// AuditLogRepository define el puerto de persistencia para el log de auditoría
// de inventario (DIP). Solo inserción y lecturas; las entradas nunca se borran.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error)
	ListByItem(ctx context.Context, itemID string, limit int) ([]*entity.AuditLog, error)
	ListBySeverity(ctx context.Context, severity string, limit int) ([]*entity.AuditLog, error)
}
