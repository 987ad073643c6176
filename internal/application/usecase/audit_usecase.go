package usecase

import (
	"context"

	"github.com/jhoicas/stock-management-api/internal/application/dto"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
)

const defaultAuditLimit = 50

// AuditUseCase consultas read-only sobre el log de auditoría de inventario.
type AuditUseCase struct {
	repo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// ListRecent devuelve las entradas más recientes (por defecto 50).
func (uc *AuditUseCase) ListRecent(ctx context.Context, limit int) ([]dto.AuditLogResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultAuditLimit
	}
	logs, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toAuditResponses(logs), nil
}

// ListByItem devuelve el historial de un artículo.
func (uc *AuditUseCase) ListByItem(ctx context.Context, itemID string, limit int) ([]dto.AuditLogResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultAuditLimit
	}
	logs, err := uc.repo.ListByItem(ctx, itemID, limit)
	if err != nil {
		return nil, err
	}
	return toAuditResponses(logs), nil
}

// ListBySeverity filtra por severidad (CRITICAL, HIGH, MEDIUM, NORMAL).
func (uc *AuditUseCase) ListBySeverity(ctx context.Context, severity string, limit int) ([]dto.AuditLogResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultAuditLimit
	}
	logs, err := uc.repo.ListBySeverity(ctx, severity, limit)
	if err != nil {
		return nil, err
	}
	return toAuditResponses(logs), nil
}

func toAuditResponses(logs []*entity.AuditLog) []dto.AuditLogResponse {
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.AuditLogResponse{
			ID:               l.ID,
			Timestamp:        l.Timestamp,
			ActionType:       l.ActionType,
			ItemID:           l.ItemID,
			ItemName:         l.ItemName,
			Category:         l.Category,
			PreviousQuantity: l.PreviousQuantity,
			NewQuantity:      l.NewQuantity,
			ChangeAmount:     l.ChangeAmount,
			ItemPrice:        l.ItemPrice,
			ValueImpact:      l.ValueImpact,
			Severity:         l.Severity,
			TriggeredBy:      l.TriggeredBy,
			Notes:            l.Notes,
		})
	}
	return out
}
