package entity

// ClassSession clase programada con cupo fijo. Solo lectura para la admisión.
// Date y StartTime se leen como texto tal como los guarda la base
// (ej. "2025-03-10" y "18:30:00"); StartTime puede venir vacío.
type ClassSession struct {
	ID        string
	GymID     string
	Title     string
	Capacity  int
	Date      string
	StartTime string
}
