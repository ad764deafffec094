package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.ClassRegistrationRepository = (*ClassRegistrationRepo)(nil)

// ClassRegistrationRepo persistencia de inscripciones (usable con pool o tx).
type ClassRegistrationRepo struct {
	q Querier
}

// NewClassRegistrationRepository construye el adaptador.
func NewClassRegistrationRepository(q Querier) *ClassRegistrationRepo {
	return &ClassRegistrationRepo{q: q}
}

// Create inserta la inscripción; id y created_at los asigna la base.
func (r *ClassRegistrationRepo) Create(ctx context.Context, reg *entity.ClassRegistration) error {
	query := `
		INSERT INTO class_registrations (session_id, gym_id, full_name, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		reg.SessionID, reg.GymID, reg.FullName, nullString(reg.Email), nullString(reg.Phone),
	).Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert class registration: clase o gimnasio inexistente: %w", err)
		}
		return fmt.Errorf("insert class registration: %w", err)
	}
	return nil
}

// CountBySession cuenta las inscripciones de la clase dentro del gimnasio.
func (r *ClassRegistrationRepo) CountBySession(ctx context.Context, sessionID, gymID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM class_registrations WHERE session_id = $1 AND gym_id = $2`,
		sessionID, gymID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count class registrations: %w", err)
	}
	return n, nil
}

// ListBySession lista las inscripciones de la clase por orden de llegada.
func (r *ClassRegistrationRepo) ListBySession(ctx context.Context, sessionID, gymID string) ([]*entity.ClassRegistration, error) {
	query := `
		SELECT id, session_id, gym_id, full_name, email, phone, created_at
		FROM class_registrations
		WHERE session_id = $1 AND gym_id = $2
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, sessionID, gymID)
	if err != nil {
		return nil, fmt.Errorf("list class registrations: %w", err)
	}
	defer rows.Close()

	var list []*entity.ClassRegistration
	for rows.Next() {
		var reg entity.ClassRegistration
		if err := rows.Scan(&reg.ID, &reg.SessionID, &reg.GymID, &reg.FullName, &reg.Email, &reg.Phone, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan class registration: %w", err)
		}
		list = append(list, &reg)
	}
	return list, rows.Err()
}
