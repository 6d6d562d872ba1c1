// Command seed bootstraps the initial admin account. Without it there is no
// principal that can create managers, so a fresh deployment runs it once.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/usermanager/user-management-api/internal/core/domain"
	"github.com/usermanager/user-management-api/internal/core/service"
	"github.com/usermanager/user-management-api/internal/infrastructure/db/mongo"
	"github.com/usermanager/user-management-api/internal/pkg/config"
	"github.com/usermanager/user-management-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongo.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	// The same canonical email form the account service enforces; otherwise a
	// mixed-case SEED_ADMIN_EMAIL would seed an admin that login never finds.
	adminEmail := service.NormalizeEmail(cfg.Seed.AdminEmail)

	if existing, err := users.FindByEmail(ctx, adminEmail); err == nil {
		log.Info().Str("user_id", existing.ID).Msg("admin already exists, nothing to do")
		return
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatal().Err(err).Msg("admin lookup failed")
	}

	hash, err := service.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	now := time.Now().UTC()
	admin, err := users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin")
	}

	log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("admin seeded")
}
