package models

import (
	"time"
)

type TipoNotificacion string

const (
	NotificacionInvitacion   TipoNotificacion = "invitacion"
	NotificacionTarea        TipoNotificacion = "tarea"
	NotificacionCalificacion TipoNotificacion = "calificacion"
)

func (t TipoNotificacion) String() string {
	return string(t)
}

func IsValidTipoNotificacion(tipo string) bool {
	switch tipo {
	case "invitacion", "tarea", "calificacion":
		return true
	default:
		return false
	}
}

// Notificacion es una vista derivada, nunca persistida como entidad propia:
// se compone de invitaciones pendientes, tareas publicadas y entregas
// calificadas, menos el conjunto de leidas.
type Notificacion struct {
	Tipo        TipoNotificacion `json:"tipo"`
	RefID       string           `json:"refId"`
	Titulo      string           `json:"titulo"`
	ClaseNombre string           `json:"claseNombre"`
	CreatedAt   time.Time        `json:"createdAt"`
}
