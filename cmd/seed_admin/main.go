// Comando de arranque: crea (o promueve) el usuario administrador inicial.
// Uso: ADMIN_EMAIL=... ADMIN_PASSWORD=... go run ./cmd/seed_admin
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
	"github.com/jhoicas/tienda-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "seed-admin"})

	email := strings.ToLower(os.Getenv("ADMIN_EMAIL"))
	plain := os.Getenv("ADMIN_PASSWORD")
	if email == "" || plain == "" {
		log.Fatal().Msg("ADMIN_EMAIL y ADMIN_PASSWORD son requeridos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	hash, err := password.Hash(plain)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear contraseña")
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         "Administrador",
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = users.Create(ctx, user)
	if err == domain.ErrEmailAlreadyExists {
		// Ya existe: promover a admin sin tocar la contraseña.
		existing, ferr := users.FindByEmail(ctx, email)
		if ferr != nil || existing == nil {
			log.Fatal().Err(ferr).Msg("buscar usuario existente")
		}
		existing.Role = entity.RoleAdmin
		existing.UpdatedAt = now
		if uerr := users.Update(ctx, existing); uerr != nil {
			log.Fatal().Err(uerr).Msg("promover usuario a admin")
		}
		log.Info().Str("email", email).Msg("usuario existente promovido a admin")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("email", email).Msg("admin creado")
}
