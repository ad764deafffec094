package repository

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para comprobantes CFE.
// Las facturas no se actualizan: se escriben una vez por emisión exitosa.
type InvoiceRepository interface {
	// Create inserta la factura y completa CreatedAt/UpdatedAt con lo que devuelve la base.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	ListByPayment(ctx context.Context, gymID, paymentID string) ([]*entity.Invoice, error)
}
