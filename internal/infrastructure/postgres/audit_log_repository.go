package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

const auditColumns = "id, logged_at, action_type, item_id, item_name, category, previous_quantity, new_quantity, change_amount, item_price, value_impact, severity, triggered_by, notes"

// AuditLogRepo persistencia del historial de auditoría de stock. Solo inserta
// y lee: las entradas nunca se modifican ni se eliminan.
type AuditLogRepo struct {
	q Querier
}

func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *AuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, logged_at, action_type, item_id, item_name, category, previous_quantity, new_quantity, change_amount, item_price, value_impact, severity, triggered_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.Timestamp, log.ActionType, log.ItemID, log.ItemName, log.Category,
		log.PreviousQuantity, log.NewQuantity, log.ChangeAmount, log.ItemPrice,
		log.ValueImpact, log.Severity, log.TriggeredBy, log.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListRecent devuelve las entradas más recientes.
func (r *AuditLogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+auditColumns+` FROM audit_logs ORDER BY logged_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return scanAuditLogs(rows)
}

// ListByItem devuelve el historial de un artículo.
func (r *AuditLogRepo) ListByItem(ctx context.Context, itemID string, limit int) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+auditColumns+` FROM audit_logs WHERE item_id = $1 ORDER BY logged_at DESC LIMIT $2`,
		itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs by item: %w", err)
	}
	return scanAuditLogs(rows)
}

// ListBySeverity filtra por severidad.
func (r *AuditLogRepo) ListBySeverity(ctx context.Context, severity string, limit int) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+auditColumns+` FROM audit_logs WHERE severity = $1 ORDER BY logged_at DESC LIMIT $2`,
		severity, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs by severity: %w", err)
	}
	return scanAuditLogs(rows)
}

func scanAuditLogs(rows pgx.Rows) ([]*entity.AuditLog, error) {
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var a entity.AuditLog
		if err := rows.Scan(
			&a.ID, &a.Timestamp, &a.ActionType, &a.ItemID, &a.ItemName, &a.Category,
			&a.PreviousQuantity, &a.NewQuantity, &a.ChangeAmount, &a.ItemPrice,
			&a.ValueImpact, &a.Severity, &a.TriggeredBy, &a.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
