package entity

import "time"

// User representa una cuenta del sistema. Cada usuario es dueño de una fila
// user_data con su copia de datos del negocio.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active | suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
