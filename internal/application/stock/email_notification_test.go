package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
	"github.com/jhoicas/stock-management-api/internal/domain/stock"
	"github.com/jhoicas/stock-management-api/pkg/logger"
)

func emailEvent(name string, old, new int, price string) stock.ChangeEvent {
	return stock.ChangeEvent{
		Item:             *testItem("i1", name, new, price),
		PreviousQuantity: old,
		NewQuantity:      new,
		TriggeredBy:      "u",
	}
}

// Umbrales: cambio significativo ≥ 10, entrada grande ≥ 50.
func newEmailObserver(m appstock.Mailer) *appstock.EmailNotificationObserver {
	return appstock.NewEmailNotificationObserver(m, logger.Nop(), 10, 50)
}

func TestEmail_CambioPequenoNoEnvia(t *testing.T) {
	m := &spyMailer{}
	o := newEmailObserver(m)

	require.NoError(t, o.OnStockChange(context.Background(), emailEvent("Widget", 12, 8, "5.00")))
	assert.Empty(t, m.sent, "|delta|=4 < 10 no dispara correo")
}

func TestEmail_CambioSignificativo(t *testing.T) {
	m := &spyMailer{}
	o := newEmailObserver(m)

	require.NoError(t, o.OnStockChange(context.Background(), emailEvent("Widget", 30, 18, "5.00")))
	require.Len(t, m.sent, 1)
	assert.Equal(t, "inventario@empresa.com", m.sent[0].to)
	assert.Contains(t, m.sent[0].body, "disminuyó")
}

func TestEmail_AgotamientoNotificaACompras(t *testing.T) {
	m := &spyMailer{}
	o := newEmailObserver(m)

	// |delta|=3 < 10: solo el aviso de agotamiento.
	require.NoError(t, o.OnStockChange(context.Background(), emailEvent("Widget", 3, 0, "5.00")))
	require.Len(t, m.sent, 1)
	assert.Equal(t, "compras@empresa.com", m.sent[0].to)
	assert.Contains(t, m.sent[0].subject, "AGOTADO")
}

func TestEmail_EntradaGrandeNotificaABodega(t *testing.T) {
	m := &spyMailer{}
	o := newEmailObserver(m)

	// delta=+60: significativo (inventario) y entrada grande (bodega).
	require.NoError(t, o.OnStockChange(context.Background(), emailEvent("Widget", 5, 65, "5.00")))
	require.Len(t, m.sent, 2, "las condiciones son independientes")
	assert.Equal(t, "inventario@empresa.com", m.sent[0].to)
	assert.Equal(t, "bodega@empresa.com", m.sent[1].to)
	assert.Contains(t, m.sent[1].subject, "Pedido recibido")
}

func TestEmail_SalidaGrandeNoEsEntrada(t *testing.T) {
	m := &spyMailer{}
	o := newEmailObserver(m)

	// delta=-60: significativo pero no "entrada grande" (el umbral es con signo).
	require.NoError(t, o.OnStockChange(context.Background(), emailEvent("Widget", 65, 5, "5.00")))
	require.Len(t, m.sent, 1)
	assert.Equal(t, "inventario@empresa.com", m.sent[0].to)
}

func TestEmail_FalloDelMailerSeReporta(t *testing.T) {
	m := &spyMailer{err: errors.New("smtp caído")}
	o := newEmailObserver(m)

	err := o.OnStockChange(context.Background(), emailEvent("Widget", 30, 18, "5.00"))
	assert.Error(t, err, "el observador reporta el fallo; el notificador decide ignorarlo")
}
