package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.ClassSessionRepository = (*ClassSessionRepo)(nil)

// ClassSessionRepo lectura de clases programadas.
// date y start_time se leen como texto; el caso de uso los interpreta en la zona del gimnasio.
type ClassSessionRepo struct {
	q Querier
}

// NewClassSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClassSessionRepository(q Querier) *ClassSessionRepo {
	return &ClassSessionRepo{q: q}
}

const selectClassSession = `
		SELECT id, gym_id, title, capacity, date::text, COALESCE(start_time::text, '')
		FROM class_sessions WHERE id = $1 AND gym_id = $2`

// GetByID retorna (nil, nil) si no existe para ese gimnasio.
func (r *ClassSessionRepo) GetByID(ctx context.Context, id, gymID string) (*entity.ClassSession, error) {
	return r.get(ctx, selectClassSession, id, gymID)
}

// GetByIDForUpdate bloquea la fila de la clase hasta el commit/rollback de la tx.
func (r *ClassSessionRepo) GetByIDForUpdate(ctx context.Context, id, gymID string) (*entity.ClassSession, error) {
	return r.get(ctx, selectClassSession+` FOR UPDATE`, id, gymID)
}

func (r *ClassSessionRepo) get(ctx context.Context, query, id, gymID string) (*entity.ClassSession, error) {
	var s entity.ClassSession
	err := r.q.QueryRow(ctx, query, id, gymID).Scan(
		&s.ID, &s.GymID, &s.Title, &s.Capacity, &s.Date, &s.StartTime,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get class session: %w", err)
	}
	return &s, nil
}
