package stock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
	"github.com/jhoicas/stock-management-api/internal/domain"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/domain/repository"
	"github.com/jhoicas/stock-management-api/internal/domain/stock"
	"github.com/jhoicas/stock-management-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

// memItemRepo repositorio de artículos en memoria.
type memItemRepo struct {
	items map[string]*entity.Item
}

var _ repository.ItemRepository = (*memItemRepo)(nil)

func newMemItemRepo(items ...*entity.Item) *memItemRepo {
	r := &memItemRepo{items: make(map[string]*entity.Item)}
	for _, it := range items {
		cp := *it
		r.items[it.ID] = &cp
	}
	return r
}

func (r *memItemRepo) Create(_ context.Context, item *entity.Item) error {
	if _, ok := r.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) GetBySKU(_ context.Context, sku string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *memItemRepo) Update(_ context.Context, item *entity.Item) error {
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (r *memItemRepo) List(_ context.Context, _, _ int) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.items))
	for _, it := range r.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memItemRepo) ListBelowThreshold(_ context.Context, threshold, _, _ int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.items {
		if it.Quantity <= threshold {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memItemRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *memItemRepo) quantity(t *testing.T, id string) int {
	t.Helper()
	it, ok := r.items[id]
	require.True(t, ok, "el artículo %s debe existir", id)
	return it.Quantity
}

// memTxRunner ejecuta la función sobre los repos en memoria, con rollback
// (restaura el snapshot) si la función retorna error.
type memTxRunner struct {
	repo  *memItemRepo
	bills repository.BillRepository
}

var _ appstock.TxRunner = (*memTxRunner)(nil)

func (tr *memTxRunner) Run(_ context.Context, fn func(repos appstock.TxRepos) error) error {
	backup := make(map[string]*entity.Item, len(tr.repo.items))
	for k, v := range tr.repo.items {
		cp := *v
		backup[k] = &cp
	}
	if err := fn(appstock.TxRepos{Items: tr.repo, Bills: tr.bills}); err != nil {
		tr.repo.items = backup
		return err
	}
	return nil
}

// spyObserver registra los eventos recibidos; opcionalmente falla o hace panic.
type spyObserver struct {
	name     string
	events   []stock.ChangeEvent
	err      error
	panicMsg string
	onInvoke func()
}

var _ stock.Observer = (*spyObserver)(nil)

func (s *spyObserver) Name() string { return s.name }

func (s *spyObserver) OnStockChange(_ context.Context, event stock.ChangeEvent) error {
	if s.onInvoke != nil {
		s.onInvoke()
	}
	s.events = append(s.events, event)
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.err
}

// spyMailer captura los correos enviados.
type spyMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to, subject, body string
}

func (m *spyMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// memAuditRepo repositorio de auditoría en memoria.
type memAuditRepo struct {
	entries []*entity.AuditLog
	err     error
}

var _ repository.AuditLogRepository = (*memAuditRepo)(nil)

func (r *memAuditRepo) Create(_ context.Context, log *entity.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, log)
	return nil
}

// ListRecent devuelve las entradas más recientes primero, como el adaptador
// real (logged_at DESC).
func (r *memAuditRepo) ListRecent(_ context.Context, limit int) ([]*entity.AuditLog, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]*entity.AuditLog, 0, limit)
	for i := len(r.entries) - 1; i >= len(r.entries)-limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *memAuditRepo) ListByItem(_ context.Context, itemID string, _ int) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	for _, e := range r.entries {
		if e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memAuditRepo) ListBySeverity(_ context.Context, severity string, _ int) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	for _, e := range r.entries {
		if e.Severity == severity {
			out = append(out, e)
		}
	}
	return out, nil
}

// memPORepo repositorio de órdenes de compra en memoria.
type memPORepo struct {
	orders []*entity.PurchaseOrder
	err    error
}

var _ repository.PurchaseOrderRepository = (*memPORepo)(nil)

func (r *memPORepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	if r.err != nil {
		return r.err
	}
	r.orders = append(r.orders, po)
	return nil
}

func (r *memPORepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	for _, po := range r.orders {
		if po.ID == id {
			return po, nil
		}
	}
	return nil, nil
}

func (r *memPORepo) ListByStatus(_ context.Context, status string, _, _ int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.orders {
		if po.Status == status {
			out = append(out, po)
		}
	}
	return out, nil
}

func (r *memPORepo) Update(_ context.Context, po *entity.PurchaseOrder) error {
	for i, existing := range r.orders {
		if existing.ID == po.ID {
			r.orders[i] = po
			return nil
		}
	}
	return domain.ErrNotFound
}

// spyPublisher captura las publicaciones del dashboard. Con mutex: el
// dashboard puede publicar desde goroutines concurrentes.
type spyPublisher struct {
	mu        sync.Mutex
	published []interface{}
	err       error
}

func (p *spyPublisher) Publish(_ context.Context, _ string, payload interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, payload)
	return nil
}

func testItem(id, name string, quantity int, price string) *entity.Item {
	return &entity.Item{
		ID:       id,
		Name:     name,
		SKU:      "SKU-" + id,
		Category: "general",
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
	}
}

func newTestNotifier(items ...*entity.Item) (*appstock.Notifier, *memItemRepo) {
	repo := newMemItemRepo(items...)
	n := appstock.NewNotifier(&memTxRunner{repo: repo}, logger.Nop())
	return n, repo
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDelta: mutación + fan-out
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDelta_ActualizaYNotifica(t *testing.T) {
	n, repo := newTestNotifier(testItem("i1", "Tornillo", 20, "0.15"))
	spy := &spyObserver{name: "spy"}
	n.Register(spy)

	item, err := n.ApplyDelta(context.Background(), "i1", -5, "usuario-1")
	require.NoError(t, err)
	assert.Equal(t, 15, item.Quantity)
	assert.Equal(t, 15, repo.quantity(t, "i1"))

	require.Len(t, spy.events, 1, "debe notificarse exactamente un evento")
	ev := spy.events[0]
	assert.Equal(t, 20, ev.PreviousQuantity)
	assert.Equal(t, 15, ev.NewQuantity)
	assert.Equal(t, -5, ev.Delta())
	assert.Equal(t, "usuario-1", ev.TriggeredBy)
	assert.Equal(t, "i1", ev.Item.ID)
}

func TestApplyDelta_PersisteAntesDeNotificar(t *testing.T) {
	n, repo := newTestNotifier(testItem("i1", "Tornillo", 20, "0.15"))

	var qtyAlNotificar int
	spy := &spyObserver{name: "spy"}
	spy.onInvoke = func() {
		qtyAlNotificar = repo.quantity(t, "i1")
	}
	n.Register(spy)

	_, err := n.ApplyDelta(context.Background(), "i1", -5, "")
	require.NoError(t, err)
	assert.Equal(t, 15, qtyAlNotificar,
		"la cantidad ya debe estar persistida cuando se invoca al observador")
}

func TestApplyDelta_ActorVacioEsSystem(t *testing.T) {
	n, _ := newTestNotifier(testItem("i1", "Tornillo", 20, "0.15"))
	spy := &spyObserver{name: "spy"}
	n.Register(spy)

	_, err := n.ApplyDelta(context.Background(), "i1", 3, "")
	require.NoError(t, err)
	require.Len(t, spy.events, 1)
	assert.Equal(t, "system", spy.events[0].TriggeredBy)
}

func TestApplyDelta_ArticuloInexistente(t *testing.T) {
	n, _ := newTestNotifier()
	spy := &spyObserver{name: "spy"}
	n.Register(spy)

	item, err := n.ApplyDelta(context.Background(), "no-existe", -1, "u")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, item)
	assert.Empty(t, spy.events, "sin mutación no hay notificación")
}

func TestApplyDelta_StockInsuficiente(t *testing.T) {
	n, repo := newTestNotifier(testItem("i1", "Tornillo", 3, "0.15"))
	spy := &spyObserver{name: "spy"}
	n.Register(spy)

	item, err := n.ApplyDelta(context.Background(), "i1", -4, "u")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, item)
	assert.Equal(t, 3, repo.quantity(t, "i1"), "la cantidad no debe cambiar")
	assert.Empty(t, spy.events)
}

func TestApplyDelta_SalidaExactaDejaEnCero(t *testing.T) {
	n, repo := newTestNotifier(testItem("i1", "Tornillo", 3, "0.15"))

	item, err := n.ApplyDelta(context.Background(), "i1", -3, "u")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, 0, repo.quantity(t, "i1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDeltas: atomicidad multilinea
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDeltas_TodoONada(t *testing.T) {
	n, repo := newTestNotifier(
		testItem("i1", "Tornillo", 10, "0.15"),
		testItem("i2", "Martillo", 2, "12.50"),
	)
	spy := &spyObserver{name: "spy"}
	n.Register(spy)

	// La segunda línea no tiene stock suficiente: nada debe aplicarse.
	_, err := n.ApplyDeltas(context.Background(), []appstock.Adjustment{
		{ItemID: "i1", Delta: -4},
		{ItemID: "i2", Delta: -5},
	}, "u")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, repo.quantity(t, "i1"), "la primera línea debe revertirse")
	assert.Equal(t, 2, repo.quantity(t, "i2"))
	assert.Empty(t, spy.events, "una transacción revertida no notifica")
}

func TestApplyDeltas_NotificaPorArticuloEnOrden(t *testing.T) {
	n, _ := newTestNotifier(
		testItem("i1", "Tornillo", 10, "0.15"),
		testItem("i2", "Martillo", 8, "12.50"),
	)
	spy := &spyObserver{name: "spy"}
	n.Register(spy)

	updated, err := n.ApplyDeltas(context.Background(), []appstock.Adjustment{
		{ItemID: "i1", Delta: -2},
		{ItemID: "i2", Delta: -3},
	}, "u")
	require.NoError(t, err)
	require.Len(t, updated, 2)

	require.Len(t, spy.events, 2, "un evento por artículo, no un agregado")
	assert.Equal(t, "i1", spy.events[0].Item.ID)
	assert.Equal(t, "i2", spy.events[1].Item.ID)
	assert.Equal(t, -2, spy.events[0].Delta())
	assert.Equal(t, -3, spy.events[1].Delta())
}

func TestApplyDeltas_SinAjustes(t *testing.T) {
	n, _ := newTestNotifier()
	_, err := n.ApplyDeltas(context.Background(), nil, "u")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y aislamiento de observadores
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_Idempotente(t *testing.T) {
	n, _ := newTestNotifier(testItem("i1", "Tornillo", 10, "0.15"))
	spy := &spyObserver{name: "spy"}
	n.Register(spy)
	n.Register(spy) // segunda vez: sin efecto

	_, err := n.ApplyDelta(context.Background(), "i1", 1, "u")
	require.NoError(t, err)
	assert.Len(t, spy.events, 1, "el observador duplicado no debe recibir el evento dos veces")
}

func TestUnregister_DejaDeNotificar(t *testing.T) {
	n, _ := newTestNotifier(testItem("i1", "Tornillo", 10, "0.15"))
	spy := &spyObserver{name: "spy"}
	n.Register(spy)
	n.Unregister(spy)

	_, err := n.ApplyDelta(context.Background(), "i1", 1, "u")
	require.NoError(t, err)
	assert.Empty(t, spy.events)

	// Unregister de un observador no registrado es no-op.
	n.Unregister(&spyObserver{name: "otro"})
}

func TestNotifyAll_OrdenDeRegistro(t *testing.T) {
	n, _ := newTestNotifier(testItem("i1", "Tornillo", 10, "0.15"))

	var orden []string
	a := &spyObserver{name: "a"}
	a.onInvoke = func() { orden = append(orden, "a") }
	b := &spyObserver{name: "b"}
	b.onInvoke = func() { orden = append(orden, "b") }
	c := &spyObserver{name: "c"}
	c.onInvoke = func() { orden = append(orden, "c") }
	n.Register(a)
	n.Register(b)
	n.Register(c)

	_, err := n.ApplyDelta(context.Background(), "i1", -1, "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, orden)
}

func TestNotifyAll_ErrorDeObservadorNoDetieneElResto(t *testing.T) {
	n, repo := newTestNotifier(testItem("i1", "Tornillo", 10, "0.15"))

	falla := &spyObserver{name: "falla", err: errors.New("smtp caído")}
	despues := &spyObserver{name: "despues"}
	n.Register(falla)
	n.Register(despues)

	item, err := n.ApplyDelta(context.Background(), "i1", -1, "u")
	require.NoError(t, err, "el error del observador no debe llegar al llamador")
	assert.Equal(t, 9, item.Quantity)
	assert.Equal(t, 9, repo.quantity(t, "i1"), "el cambio confirmado no se revierte")
	assert.Len(t, despues.events, 1, "los observadores posteriores reciben el evento")
}

func TestNotifyAll_PanicDeObservadorNoDetieneElResto(t *testing.T) {
	n, _ := newTestNotifier(testItem("i1", "Tornillo", 10, "0.15"))

	explota := &spyObserver{name: "explota", panicMsg: "boom"}
	despues := &spyObserver{name: "despues"}
	n.Register(explota)
	n.Register(despues)

	require.NotPanics(t, func() {
		_, err := n.ApplyDelta(context.Background(), "i1", -1, "u")
		require.NoError(t, err)
	})
	assert.Len(t, despues.events, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo: venta de 4 Widgets con los cinco observadores reales
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioVentaWidget_FanOutCompleto(t *testing.T) {
	// Widget con 12 unidades a $5.00; venta de 4 → quedan 8.
	n, repo := newTestNotifier(testItem("w1", "Widget", 12, "5.00"))

	log := logger.Nop()
	mailer := &spyMailer{}
	auditRepo := &memAuditRepo{}
	poRepo := &memPORepo{}
	publisher := &spyPublisher{}
	dashboard := appstock.NewDashboardObserver(publisher, log, "stock-updates", 5)

	// Umbrales operativos: bajo=5, crítico=2, correo=10/50, reorden=10/100/50.
	n.Register(appstock.NewLowStockAlertObserver(log, 5, 2))
	n.Register(appstock.NewEmailNotificationObserver(mailer, log, 10, 50))
	n.Register(appstock.NewAuditLogObserver(auditRepo, log))
	n.Register(dashboard)
	n.Register(appstock.NewAutoReorderObserver(poRepo, mailer, log, 10, 100, 50))

	item, err := n.ApplyDelta(context.Background(), "w1", -4, "vendedor-1")
	require.NoError(t, err)
	assert.Equal(t, 8, item.Quantity)
	assert.Equal(t, 8, repo.quantity(t, "w1"))

	// Auditoría: salida de 4, impacto $20.00, severidad MEDIUM (8 < 10).
	require.Len(t, auditRepo.entries, 1)
	audit := auditRepo.entries[0]
	assert.Equal(t, entity.AuditActionDecrease, audit.ActionType)
	assert.Equal(t, 12, audit.PreviousQuantity)
	assert.Equal(t, 8, audit.NewQuantity)
	assert.Equal(t, -4, audit.ChangeAmount)
	assert.Equal(t, "20.00", audit.ValueImpact.StringFixed(2))
	assert.Equal(t, entity.SeverityMedium, audit.Severity)
	assert.Equal(t, "vendedor-1", audit.TriggeredBy)

	// Reorden: 12 → 8 cruza el punto de reorden 10; pedir 100-8=92.
	require.Len(t, poRepo.orders, 1)
	po := poRepo.orders[0]
	assert.Equal(t, 92, po.Quantity)
	assert.Equal(t, entity.PurchaseOrderPending, po.Status)
	assert.Equal(t, 8, po.StockAtWindow)
	assert.Equal(t, "460.00", po.TotalValue.StringFixed(2))

	// Correo: |delta|=4 < 10, no agotado, no entrada grande → solo el de reorden.
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "compras@empresa.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, "Reorden")

	// Dashboard publicó la actualización; 8 >= 5 no es stock bajo.
	assert.Len(t, publisher.published, 1)
	snap := dashboard.Snapshot()
	assert.Equal(t, 0, snap.LowStockItems)
	assert.Equal(t, 0, snap.OutOfStockItems)
}
