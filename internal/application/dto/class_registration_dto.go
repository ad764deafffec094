package dto

import "time"

// CreateClassRegistrationRequest body para POST /api/class-registrations.
type CreateClassRegistrationRequest struct {
	GymID     string  `json:"gym_id"`
	SessionID string  `json:"session_id"`
	FullName  string  `json:"full_name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// ClassRegistrationResponse inscripción en respuestas.
type ClassRegistrationResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	GymID     string    `json:"gym_id"`
	FullName  string    `json:"full_name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassRegistrationListResponse inscripciones de una clase.
type ClassRegistrationListResponse struct {
	Items []ClassRegistrationResponse `json:"items"`
	Total int                         `json:"total"`
}
