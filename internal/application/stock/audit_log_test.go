package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/stock"
	"github.com/jhoicas/stock-management-api/pkg/logger"
)

func auditEvent(old, new int, price string) stock.ChangeEvent {
	return stock.ChangeEvent{
		Item:             *testItem("i1", "Widget", new, price),
		PreviousQuantity: old,
		NewQuantity:      new,
		TriggeredBy:      "auditor",
	}
}

func TestAuditObserver_RegistraSalida(t *testing.T) {
	repo := &memAuditRepo{}
	o := appstock.NewAuditLogObserver(repo, logger.Nop())

	require.NoError(t, o.OnStockChange(context.Background(), auditEvent(12, 8, "5.00")))
	require.Len(t, repo.entries, 1)

	e := repo.entries[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, entity.AuditActionDecrease, e.ActionType)
	assert.Equal(t, "i1", e.ItemID)
	assert.Equal(t, "Widget", e.ItemName)
	assert.Equal(t, 12, e.PreviousQuantity)
	assert.Equal(t, 8, e.NewQuantity)
	assert.Equal(t, -4, e.ChangeAmount)
	assert.Equal(t, "5.00", e.ItemPrice.StringFixed(2))
	assert.Equal(t, "20.00", e.ValueImpact.StringFixed(2), "impacto = precio × |delta|")
	assert.Equal(t, "auditor", e.TriggeredBy)
	assert.False(t, e.Timestamp.IsZero())
}

func TestAuditObserver_RegistraEntrada(t *testing.T) {
	repo := &memAuditRepo{}
	o := appstock.NewAuditLogObserver(repo, logger.Nop())

	require.NoError(t, o.OnStockChange(context.Background(), auditEvent(8, 20, "5.00")))
	require.Len(t, repo.entries, 1)
	assert.Equal(t, entity.AuditActionIncrease, repo.entries[0].ActionType)
	assert.Equal(t, 12, repo.entries[0].ChangeAmount)
	assert.Equal(t, "60.00", repo.entries[0].ValueImpact.StringFixed(2))
}

func TestAuditObserver_Severidades(t *testing.T) {
	cases := []struct {
		name     string
		old, new int
		want     string
	}{
		{"agotado es crítico", 3, 0, entity.SeverityCritical},
		{"menos de 5 es alta", 8, 4, entity.SeverityHigh},
		{"menos de 10 es media", 12, 8, entity.SeverityMedium},
		{"10 o más es normal", 12, 10, entity.SeverityNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &memAuditRepo{}
			o := appstock.NewAuditLogObserver(repo, logger.Nop())
			require.NoError(t, o.OnStockChange(context.Background(), auditEvent(tc.old, tc.new, "1.00")))
			require.Len(t, repo.entries, 1)
			assert.Equal(t, tc.want, repo.entries[0].Severity)
		})
	}
}

func TestAuditObserver_NotasContextuales(t *testing.T) {
	repo := &memAuditRepo{}
	o := appstock.NewAuditLogObserver(repo, logger.Nop())

	require.NoError(t, o.OnStockChange(context.Background(), auditEvent(3, 0, "1.00")))
	require.NoError(t, o.OnStockChange(context.Background(), auditEvent(8, 3, "1.00")))
	require.NoError(t, o.OnStockChange(context.Background(), auditEvent(3, 20, "1.00")))
	require.NoError(t, o.OnStockChange(context.Background(), auditEvent(20, 15, "1.00")))
	require.Len(t, repo.entries, 4)
	assert.Contains(t, repo.entries[0].Notes, "agotado")
	assert.Contains(t, repo.entries[1].Notes, "bajo")
	assert.Contains(t, repo.entries[2].Notes, "repuesto")
	assert.Empty(t, repo.entries[3].Notes)
}

func TestAuditObserver_ListRecentDevuelveLoMasNuevoPrimero(t *testing.T) {
	repo := &memAuditRepo{}
	o := appstock.NewAuditLogObserver(repo, logger.Nop())

	require.NoError(t, o.OnStockChange(context.Background(), auditEvent(12, 8, "1.00")))
	require.NoError(t, o.OnStockChange(context.Background(), auditEvent(8, 5, "1.00")))
	require.NoError(t, o.OnStockChange(context.Background(), auditEvent(5, 20, "1.00")))

	recent, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 20, recent[0].NewQuantity, "la entrada más reciente va primero")
	assert.Equal(t, 5, recent[1].NewQuantity)
}

func TestAuditObserver_FalloDelRepoSeReporta(t *testing.T) {
	repo := &memAuditRepo{err: errors.New("bd caída")}
	o := appstock.NewAuditLogObserver(repo, logger.Nop())

	err := o.OnStockChange(context.Background(), auditEvent(12, 8, "5.00"))
	assert.Error(t, err, "el fallo de auditoría se trata como el de cualquier observador")
}

func TestSeverityForQuantity(t *testing.T) {
	assert.Equal(t, entity.SeverityCritical, entity.SeverityForQuantity(0))
	assert.Equal(t, entity.SeverityHigh, entity.SeverityForQuantity(4))
	assert.Equal(t, entity.SeverityMedium, entity.SeverityForQuantity(9))
	assert.Equal(t, entity.SeverityNormal, entity.SeverityForQuantity(10))
}
