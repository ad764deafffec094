package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Gimnasio-api/internal/application/classes"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ classes.RegistrationTxRunner = (*TxRunner)(nil)

// TxBeginner abre transacciones; lo cumple *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool TxBeginner) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistration inicia una transacción, ejecuta fn con repos de clases atados a la tx
// y hace Commit o Rollback.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	sessionRepo repository.ClassSessionRepository,
	registrationRepo repository.ClassRegistrationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewClassSessionRepository(tx), NewClassRegistrationRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
