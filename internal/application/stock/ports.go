package stock

import (
	"context"

	"github.com/jhoicas/stock-management-api/internal/domain/repository"
)

// TxRepos repositorios atados a la transacción en curso. Todo lo que se
// persista a través de ellos se confirma o revierte junto con la mutación de
// cantidades.
type TxRepos struct {
	Items repository.ItemRepository
	Bills repository.BillRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios atados a esa tx. Garantiza atomicidad de la mutación de
// cantidades y de lo que se persista junto a ella (bloqueo de fila +
// Commit/Rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// Mailer puerto de envío de correo. Los observadores lo usan para notificar
// a compras/bodega; en development se inyecta una implementación sobre logs.
type Mailer interface {
	Send(to, subject, body string) error
}

// RealtimePublisher puerto de publicación en tiempo real (dashboard).
// payload se serializa como JSON en el adaptador.
type RealtimePublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}
