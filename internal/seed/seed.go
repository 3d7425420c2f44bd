package seed

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/edutech-cl/platform/internal/app/models"
	appRepos "github.com/edutech-cl/platform/internal/app/repositories"
	"github.com/edutech-cl/platform/internal/pkg/apperrors"
	"github.com/edutech-cl/platform/internal/pkg/auth"
)

const defaultAdminEmail = "admin@edutech.cl"

// CreateDefaultData ensures a platform administrator account exists so
// catalog mutations are possible on a fresh database. The password comes
// from ADMIN_PASSWORD, with a development fallback.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default admin account...")

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123!"
		lgr.Warn().Msg("ADMIN_PASSWORD not set, using development default")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		Run:          "11111111-1",
		FirstName:    "Platform",
		LastName:     "Admin",
		BirthDate:    time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Email:        defaultAdminEmail,
		Role:         appModels.RoleAdmin,
		PasswordHash: hash,
	}

	err = userRepo.Create(ctx, admin)
	switch {
	case err == nil:
		lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists), errors.Is(err, apperrors.ErrRunAlreadyExists):
		lgr.Debug().Str("email", defaultAdminEmail).Msg("Default admin account already exists")
	default:
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	return nil
}
