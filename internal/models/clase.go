package models

import (
	"time"
)

type Clase struct {
	ID         string    `json:"id" db:"id"`
	Nombre     string    `json:"nombre" db:"nombre"`
	Codigo     string    `json:"codigo" db:"codigo"`
	ProfesorID string    `json:"profesorId" db:"profesor_id"`
	NumAlumnos int       `json:"numAlumnos" db:"num_alumnos"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type ClaseConProfesor struct {
	Clase
	ProfesorNombre string `json:"profesorNombre" db:"profesor_nombre"`
}

type ClaseDetalle struct {
	ClaseConProfesor
	Alumnos []Usuario `json:"alumnos"`
}
