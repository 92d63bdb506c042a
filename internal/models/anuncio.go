package models

import (
	"time"
)

type TipoAnuncio string

const (
	TipoAnuncioGeneral TipoAnuncio = "anuncio"
	TipoAnuncioTarea   TipoAnuncio = "tarea"
)

func (t TipoAnuncio) String() string {
	return string(t)
}

func IsValidTipoAnuncio(tipo string) bool {
	switch tipo {
	case "anuncio", "tarea":
		return true
	default:
		return false
	}
}

// Anuncio es una publicacion en el tablon de una clase. Con tipo "tarea"
// lleva ademas titulo y, opcionalmente, fecha de entrega.
type Anuncio struct {
	ID           string      `json:"id" db:"id"`
	ClaseID      string      `json:"claseId" db:"clase_id"`
	AutorID      string      `json:"autorId" db:"autor_id"`
	Tipo         TipoAnuncio `json:"tipo" db:"tipo"`
	Titulo       *string     `json:"titulo,omitempty" db:"titulo"`
	Contenido    string      `json:"contenido" db:"contenido"`
	FechaEntrega *time.Time  `json:"fechaEntrega,omitempty" db:"fecha_entrega"`
	ArchivoID    *string     `json:"archivoId,omitempty" db:"archivo_id"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
}

func (a *Anuncio) EsTarea() bool {
	return a.Tipo == TipoAnuncioTarea
}

// TareaStats agrega las entregas de una tarea para la vista del profesor.
type TareaStats struct {
	AnuncioID     string `db:"anuncio_id"`
	TotalEntregas int    `db:"total_entregas"`
	Calificadas   int    `db:"calificadas"`
}

// TareaDeAlumno es una tarea visible para un alumno junto con su propia
// entrega (si existe), en una sola fila de lectura.
type TareaDeAlumno struct {
	Anuncio
	ClaseNombre string   `db:"clase_nombre"`
	Entrega     *Entrega `json:"entrega,omitempty"`
}
