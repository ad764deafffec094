package repository

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// ClassRegistrationRepository persistencia de inscripciones a clases.
type ClassRegistrationRepository interface {
	// Create inserta la inscripción y completa ID y CreatedAt con lo que asigna la base.
	Create(ctx context.Context, reg *entity.ClassRegistration) error
	CountBySession(ctx context.Context, sessionID, gymID string) (int, error)
	ListBySession(ctx context.Context, sessionID, gymID string) ([]*entity.ClassRegistration, error)
}
