// seed crea los datos mínimos para un entorno de desarrollo: un usuario admin
// y un catálogo de artículos de demostración.
//
// Uso: go run ./cmd/seed
// Requiere las mismas variables de entorno de BD que cmd/api.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-management-api/internal/domain"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
	"github.com/jhoicas/stock-management-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-management-api/pkg/config"
)

const (
	adminEmail    = "admin@empresa.com"
	adminPassword = "admin12345" // solo para desarrollo
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear password: %v\n", err)
		os.Exit(1)
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        adminEmail,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch err := userRepo.Create(ctx, admin); err {
	case nil:
		fmt.Printf("usuario admin creado: %s\n", adminEmail)
	case domain.ErrEmailAlreadyExists:
		fmt.Printf("usuario admin ya existe: %s\n", adminEmail)
	default:
		fmt.Fprintf(os.Stderr, "crear usuario admin: %v\n", err)
		os.Exit(1)
	}

	demo := []struct {
		name     string
		sku      string
		category string
		quantity int
		price    string
	}{
		{"Widget", "WID-001", "general", 12, "5.00"},
		{"Tornillo 3/8", "TOR-038", "ferretería", 250, "0.15"},
		{"Martillo", "MAR-001", "herramientas", 18, "12.50"},
		{"Cinta métrica 5m", "CIN-005", "herramientas", 7, "4.90"},
		{"Guantes de trabajo", "GUA-001", "seguridad", 3, "2.75"},
	}
	for _, d := range demo {
		item := &entity.Item{
			ID:        uuid.New().String(),
			Name:      d.name,
			SKU:       d.sku,
			Category:  d.category,
			Quantity:  d.quantity,
			Price:     decimal.RequireFromString(d.price),
			CreatedAt: now,
			UpdatedAt: now,
		}
		switch err := itemRepo.Create(ctx, item); err {
		case nil:
			fmt.Printf("artículo creado: %s (%s)\n", d.name, d.sku)
		case domain.ErrDuplicate:
			fmt.Printf("artículo ya existe: %s (%s)\n", d.name, d.sku)
		default:
			fmt.Fprintf(os.Stderr, "crear artículo %s: %v\n", d.sku, err)
			os.Exit(1)
		}
	}

	fmt.Println("seed completado")
}
