package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/edutech-cl/platform/internal/app/services"
	"github.com/edutech-cl/platform/internal/db"
)

// TxRunner implements services.TxManager over a pgx transaction: the
// callback receives repositories bound to one transaction, so every
// write inside it commits or rolls back as a unit.
type TxRunner struct {
	db    *db.PostgresDB
	repos *Repositories
}

// NewTxRunner creates a transaction runner over the given database
func NewTxRunner(database *db.PostgresDB, repos *Repositories) *TxRunner {
	return &TxRunner{
		db:    database,
		repos: repos,
	}
}

// WithinTx runs fn inside a database transaction
func (t *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, s services.Store) error) error {
	return t.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, services.Store{
			Users:       t.repos.UserRepository.WithTx(tx),
			Courses:     t.repos.CourseRepository.WithTx(tx),
			Enrollments: t.repos.EnrollmentRepository.WithTx(tx),
		})
	})
}
