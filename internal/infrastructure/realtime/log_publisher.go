package realtime

import (
	"context"
	"encoding/json"

	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
	"github.com/jhoicas/stock-management-api/pkg/logger"
)

var _ appstock.RealtimePublisher = (*LogPublisher)(nil)

// LogPublisher implementación para development: escribe la actualización en el
// log. Se inyecta cuando REDIS_ADDR no está configurado.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish registra la actualización sin publicarla.
func (p *LogPublisher) Publish(_ context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	p.log.Debug().
		Str("topic", topic).
		RawJSON("payload", data).
		Msg("publicación simulada (Redis no configurado)")
	return nil
}
