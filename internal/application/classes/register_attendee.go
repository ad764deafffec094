package classes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
	"github.com/jhoicas/Gimnasio-api/internal/metrics"
	"github.com/jhoicas/Gimnasio-api/pkg/logger"
)

// Formatos aceptados para fecha + "T" + hora de inicio de una clase.
var sessionStartLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z07",
}

// RegisterAttendeeUseCase admite o rechaza inscripciones a clases según horario y cupo.
type RegisterAttendeeUseCase struct {
	txRunner         RegistrationTxRunner
	registrationRepo repository.ClassRegistrationRepository
	loc              *time.Location
	now              func() time.Time
	log              *logger.Logger
}

// NewRegisterAttendeeUseCase construye el caso de uso. loc es la zona horaria en la que
// se interpretan fecha y hora de las clases.
func NewRegisterAttendeeUseCase(
	txRunner RegistrationTxRunner,
	registrationRepo repository.ClassRegistrationRepository,
	loc *time.Location,
	log *logger.Logger,
) *RegisterAttendeeUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &RegisterAttendeeUseCase{
		txRunner:         txRunner,
		registrationRepo: registrationRepo,
		loc:              loc,
		now:              time.Now,
		log:              log.Named("class_registration"),
	}
}

// Register valida la inscripción (campos, clase, horario, cupo) y la persiste.
//
// Retorna:
//   - domain.ErrInvalidInput  si falta gym_id, session_id o full_name.
//   - domain.ErrNotFound      si la clase no existe para el gimnasio.
//   - domain.ErrClassStarted  si la clase ya empezó.
//   - domain.ErrSessionFull   si no quedan lugares.
//   - domain.ErrDependency    ante cualquier fallo del almacenamiento.
func (uc *RegisterAttendeeUseCase) Register(ctx context.Context, in dto.CreateClassRegistrationRequest) (*dto.ClassRegistrationResponse, error) {
	reg, err := uc.register(ctx, in)
	metrics.RegistrationAttempts.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		ev := uc.log.Warn()
		if errors.Is(err, domain.ErrDependency) {
			ev = uc.log.Error()
		}
		ev.Err(err).
			Str("gym_id", in.GymID).
			Str("session_id", in.SessionID).
			Msg("inscripción rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("registration_id", reg.ID).
		Str("gym_id", reg.GymID).
		Str("session_id", reg.SessionID).
		Msg("inscripción registrada")
	return toRegistrationResponse(reg), nil
}

func (uc *RegisterAttendeeUseCase) register(ctx context.Context, in dto.CreateClassRegistrationRequest) (*entity.ClassRegistration, error) {
	gymID := strings.TrimSpace(in.GymID)
	sessionID := strings.TrimSpace(in.SessionID)
	fullName := strings.TrimSpace(in.FullName)
	if gymID == "" || sessionID == "" || fullName == "" {
		return nil, fmt.Errorf("%w: gym_id, session_id y full_name son requeridos", domain.ErrInvalidInput)
	}

	var reg *entity.ClassRegistration
	err := uc.txRunner.RunRegistration(ctx, func(
		sessionRepo repository.ClassSessionRepository,
		registrationRepo repository.ClassRegistrationRepository,
	) error {
		session, err := sessionRepo.GetByIDForUpdate(ctx, sessionID, gymID)
		if err != nil {
			return fmt.Errorf("%w: obtener clase: %w", domain.ErrDependency, err)
		}
		if session == nil {
			return fmt.Errorf("%w: clase %s", domain.ErrNotFound, sessionID)
		}

		if start, ok := uc.sessionStart(session); ok {
			if !start.After(uc.now()) {
				return domain.ErrClassStarted
			}
		} else {
			uc.log.Warn().
				Str("session_id", session.ID).
				Str("date", session.Date).
				Str("start_time", session.StartTime).
				Msg("fecha/hora de la clase no interpretable, se omite el control de horario")
		}

		count, err := registrationRepo.CountBySession(ctx, session.ID, gymID)
		if err != nil {
			return fmt.Errorf("%w: contar inscripciones: %w", domain.ErrDependency, err)
		}
		if count >= session.Capacity {
			return domain.ErrSessionFull
		}

		reg = &entity.ClassRegistration{
			SessionID: session.ID,
			GymID:     gymID,
			FullName:  fullName,
			Email:     trimmedOrNil(in.Email),
			Phone:     trimmedOrNil(in.Phone),
		}
		if err := registrationRepo.Create(ctx, reg); err != nil {
			return fmt.Errorf("%w: crear inscripción: %w", domain.ErrDependency, err)
		}
		return nil
	})
	if err != nil {
		return nil, asDependency(err)
	}
	return reg, nil
}

// List devuelve las inscripciones de una clase, de la más antigua a la más nueva.
func (uc *RegisterAttendeeUseCase) List(ctx context.Context, gymID, sessionID string) (*dto.ClassRegistrationListResponse, error) {
	gymID = strings.TrimSpace(gymID)
	sessionID = strings.TrimSpace(sessionID)
	if gymID == "" || sessionID == "" {
		return nil, fmt.Errorf("%w: gym_id y session_id son requeridos", domain.ErrInvalidInput)
	}
	list, err := uc.registrationRepo.ListBySession(ctx, sessionID, gymID)
	if err != nil {
		return nil, fmt.Errorf("%w: listar inscripciones: %w", domain.ErrDependency, err)
	}
	out := &dto.ClassRegistrationListResponse{Items: make([]dto.ClassRegistrationResponse, 0, len(list))}
	for _, r := range list {
		out.Items = append(out.Items, *toRegistrationResponse(r))
	}
	out.Total = len(out.Items)
	return out, nil
}

// sessionStart compone fecha y hora de inicio. ok=false si no se puede interpretar.
func (uc *RegisterAttendeeUseCase) sessionStart(s *entity.ClassSession) (time.Time, bool) {
	composed := strings.TrimSpace(s.Date) + "T" + strings.TrimSpace(s.StartTime)
	for _, layout := range sessionStartLayouts {
		if t, err := time.ParseInLocation(layout, composed, uc.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// asDependency deja pasar los errores de dominio y marca el resto (begin/commit) como
// fallo del almacenamiento.
func asDependency(err error) error {
	for _, known := range []error{domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrConflict, domain.ErrDependency} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrDependency, err)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toRegistrationResponse(r *entity.ClassRegistration) *dto.ClassRegistrationResponse {
	return &dto.ClassRegistrationResponse{
		ID:        r.ID,
		SessionID: r.SessionID,
		GymID:     r.GymID,
		FullName:  r.FullName,
		Email:     r.Email,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt,
	}
}
