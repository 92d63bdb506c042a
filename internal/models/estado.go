package models

import (
	"time"
)

// EstadoTarea es el estado derivado de una tarea. Nunca se almacena: se
// calcula a partir de la presencia de entrega, nota y fecha de entrega.
type EstadoTarea string

const (
	EstadoPendiente  EstadoTarea = "pendiente"
	EstadoExpirada   EstadoTarea = "expirada"
	EstadoEntregada  EstadoTarea = "entregada"
	EstadoCalificada EstadoTarea = "calificada"
	// EstadoFinalizada solo aplica a la vista agregada de clase: todos los
	// alumnos entregaron y todas las entregas tienen nota.
	EstadoFinalizada EstadoTarea = "finalizada"
)

func (e EstadoTarea) String() string {
	return string(e)
}

// EstadoParaAlumno deriva el estado de una tarea para un alumno concreto.
// Unica implementacion: toda vista que muestre estado pasa por aqui.
func EstadoParaAlumno(fechaEntrega *time.Time, entrega *Entrega, ahora time.Time) EstadoTarea {
	if entrega == nil {
		if fechaEntrega != nil && fechaEntrega.Before(ahora) {
			return EstadoExpirada
		}
		return EstadoPendiente
	}
	if entrega.Calificada() {
		return EstadoCalificada
	}
	return EstadoEntregada
}

// EstadoParaClase deriva el estado agregado de una tarea para la vista del
// profesor a partir del tamano del roster y los contadores de entregas.
func EstadoParaClase(fechaEntrega *time.Time, numAlumnos, entregas, calificadas int, ahora time.Time) EstadoTarea {
	if numAlumnos > 0 && entregas == numAlumnos && calificadas == entregas {
		return EstadoFinalizada
	}
	if entregas > 0 {
		return EstadoEntregada
	}
	if fechaEntrega != nil && fechaEntrega.Before(ahora) {
		return EstadoExpirada
	}
	return EstadoPendiente
}
