package repository

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// ClassSessionRepository lectura de clases programadas. Devuelve (nil, nil) si no existe
// una clase con ese id para el gimnasio.
type ClassSessionRepository interface {
	GetByID(ctx context.Context, id, gymID string) (*entity.ClassSession, error)
	// GetByIDForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	// Solo tiene sentido con un repositorio atado a una tx.
	GetByIDForUpdate(ctx context.Context, id, gymID string) (*entity.ClassSession, error)
}
