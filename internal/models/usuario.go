package models

import (
	"time"
)

type Rol string

const (
	RolProfesor Rol = "profesor"
	RolAlumno   Rol = "alumno"
)

func (r Rol) String() string {
	return string(r)
}

func IsValidRol(rol string) bool {
	switch rol {
	case "profesor", "alumno":
		return true
	default:
		return false
	}
}

type Usuario struct {
	ID           string    `json:"id" db:"id"`
	Nombre       string    `json:"nombre" db:"nombre"`
	Email        string    `json:"email" db:"email"`
	Rol          Rol       `json:"rol" db:"rol"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Actor es la identidad autenticada que ejecuta un comando, extraida
// del token bearer por el middleware.
type Actor struct {
	ID     string
	Nombre string
	Rol    Rol
}

func (a Actor) EsProfesor() bool {
	return a.Rol == RolProfesor
}

func (a Actor) EsAlumno() bool {
	return a.Rol == RolAlumno
}
