package classes

import (
	"context"

	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

// RegistrationTxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Con PostgreSQL la lectura de la clase usa SELECT ... FOR UPDATE, así que dos
// inscripciones simultáneas a la misma clase se ejecutan una después de la otra
// y el conteo de cupo no puede quedar desactualizado.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		sessionRepo repository.ClassSessionRepository,
		registrationRepo repository.ClassRegistrationRepository,
	) error) error
}
