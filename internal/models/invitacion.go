package models

import (
	"time"
)

type EstadoInvitacion string

const (
	InvitacionPendiente EstadoInvitacion = "pendiente"
	InvitacionAceptada  EstadoInvitacion = "aceptada"
	InvitacionRechazada EstadoInvitacion = "rechazada"
)

func (e EstadoInvitacion) String() string {
	return string(e)
}

type Invitacion struct {
	ID           string           `json:"id" db:"id"`
	AlumnoID     string           `json:"alumnoId" db:"alumno_id"`
	ClaseID      string           `json:"claseId" db:"clase_id"`
	Estado       EstadoInvitacion `json:"estado" db:"estado"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	RespondidoAt *time.Time       `json:"respondidoAt,omitempty" db:"respondido_at"`
}

// InvitacionConClase enriquece una invitacion pendiente con los nombres de
// clase y profesor que necesita la lista del cliente.
type InvitacionConClase struct {
	Invitacion
	ClaseNombre    string `json:"claseNombre" db:"clase_nombre"`
	ProfesorNombre string `json:"profesorNombre" db:"profesor_nombre"`
}
