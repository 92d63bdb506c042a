package models

import (
	"time"
)

type Archivo struct {
	ID             string    `json:"id" db:"id"`
	NombreOriginal string    `json:"nombreOriginal" db:"nombre_original"`
	Clave          string    `json:"-" db:"clave"`
	Tamano         int64     `json:"tamano" db:"tamano"`
	ContentType    string    `json:"contentType" db:"content_type"`
	SubidoAt       time.Time `json:"subidoAt" db:"subido_at"`
}

// ArchivoSubido es el contenido de un fichero recibido en un formulario
// multipart, antes de persistirse.
type ArchivoSubido struct {
	Nombre      string
	ContentType string
	Contenido   []byte
}

type ArchivoDescarga struct {
	Nombre      string
	ContentType string
	Tamano      int64
	Contenido   []byte
}
