package entity

import "time"

// ClassRegistration inscripción de un asistente a una clase.
type ClassRegistration struct {
	ID        string
	SessionID string
	GymID     string
	FullName  string
	Email     *string
	Phone     *string
	CreatedAt time.Time
}
