package repository

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// GymRepository lectura de gimnasios (tenants). Devuelve (nil, nil) si no existe.
type GymRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Gym, error)
}
