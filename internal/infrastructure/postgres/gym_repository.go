package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.GymRepository = (*GymRepo)(nil)

// GymRepo lectura de gimnasios con sus parámetros de facturación.
type GymRepo struct {
	q Querier
}

// NewGymRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGymRepository(q Querier) *GymRepo {
	return &GymRepo{q: q}
}

// GetByID retorna (nil, nil) si no existe.
func (r *GymRepo) GetByID(ctx context.Context, id string) (*entity.Gym, error) {
	query := `
		SELECT id, name,
		       invoice_user_id, invoice_company_id, invoice_branch_code, invoice_branch_id,
		       invoice_password, invoice_environment, invoice_customer_id, invoice_series,
		       invoice_currency, invoice_cotizacion, invoice_document_type, invoice_transfer_type,
		       invoice_rutneg
		FROM gyms WHERE id = $1`

	var g entity.Gym
	b := &g.Billing
	err := r.q.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Name,
		&b.UserID, &b.CompanyID, &b.BranchCode, &b.BranchID,
		&b.Password, &b.Environment, &b.CustomerID, &b.Series,
		&b.Currency, &b.Cotizacion, &b.DocumentType, &b.TransferType,
		&b.Rutneg,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gym: %w", err)
	}
	return &g, nil
}
