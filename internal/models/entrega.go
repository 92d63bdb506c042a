package models

import (
	"time"
)

// Entrega es la entrega de un alumno contra una tarea. Existe como mucho
// una por par (tarea, alumno); reenviar actualiza la fila existente.
type Entrega struct {
	ID                   string     `json:"id" db:"id"`
	AnuncioID            string     `json:"tareaId" db:"anuncio_id"`
	AlumnoID             string     `json:"alumnoId" db:"alumno_id"`
	ArchivoID            *string    `json:"archivoId,omitempty" db:"archivo_id"`
	Comentario           *string    `json:"comentario,omitempty" db:"comentario"`
	Nota                 *float64   `json:"nota,omitempty" db:"nota"`
	ComentarioCorreccion *string    `json:"comentarioCorreccion,omitempty" db:"comentario_correccion"`
	EntregadoAt          time.Time  `json:"entregadoAt" db:"entregado_at"`
	ActualizadoAt        time.Time  `json:"actualizadoAt" db:"actualizado_at"`
}

func (e *Entrega) Calificada() bool {
	return e != nil && e.Nota != nil
}

type EntregaConAlumno struct {
	Entrega
	AlumnoNombre string `json:"alumnoNombre" db:"alumno_nombre"`
	AlumnoEmail  string `json:"alumnoEmail" db:"alumno_email"`
}
