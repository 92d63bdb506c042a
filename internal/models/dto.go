package models

import "time"

// Data Transfer Objects

type RegistroRequest struct {
	Nombre   string `json:"nombre" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Rol      string `json:"rol" validate:"required,oneof=profesor alumno"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string  `json:"token"`
	Usuario Usuario `json:"usuario"`
}

type CrearClaseRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=255"`
}

type UnirseClaseRequest struct {
	Codigo string `json:"codigo" validate:"required,min=4,max=12"`
}

// CrearAnuncioData es la parte JSON (campo "data") del multipart de
// POST /api/anuncios/crear.
type CrearAnuncioData struct {
	ClaseID      string     `json:"claseId" validate:"required,uuid"`
	Tipo         string     `json:"tipo" validate:"required,oneof=anuncio tarea"`
	Contenido    string     `json:"contenido" validate:"required"`
	Titulo       string     `json:"titulo" validate:"max=255"`
	FechaEntrega *time.Time `json:"fechaEntrega"`
}

type CrearAnuncioResponse struct {
	ID         string  `json:"id"`
	ArchivoURL *string `json:"archivoUrl,omitempty"`
}

// Nota va por puntero: 0.0 es una calificacion valida y "ausente" debe
// distinguirse de cero.
type CalificarRequest struct {
	Nota                 *float64 `json:"nota" validate:"required"`
	ComentarioCorreccion string   `json:"comentarioCorreccion"`
}

type EnviarInvitacionRequest struct {
	AlumnoID string `json:"alumnoId" validate:"required,uuid"`
	ClaseID  string `json:"claseId" validate:"required,uuid"`
}

type ResponderInvitacionRequest struct {
	Respuesta string `json:"respuesta" validate:"required,oneof=aceptar rechazar"`
}

type MarcarLeidaRequest struct {
	Tipo  string `json:"tipo" validate:"required,oneof=invitacion tarea calificacion"`
	RefID string `json:"refId" validate:"required,uuid"`
}

// AnuncioProfesorView es un anuncio en el tablon visto por el profesor
// propietario, con el roll-up de entregas para las tareas.
type AnuncioProfesorView struct {
	Anuncio
	ArchivoURL         *string     `json:"archivoUrl,omitempty"`
	EntregasRealizadas int         `json:"entregasRealizadas"`
	EntregasPendientes int         `json:"entregasPendientes"`
	Estado             EstadoTarea `json:"estado,omitempty"`
}

// AnuncioAlumnoView es un anuncio visto por un alumno inscrito, con su
// estado derivado y su propia entrega para las tareas.
type AnuncioAlumnoView struct {
	Anuncio
	ArchivoURL *string     `json:"archivoUrl,omitempty"`
	Estado     EstadoTarea `json:"estado,omitempty"`
	Entrega    *Entrega    `json:"entrega,omitempty"`
}

type AnunciosProfesorResponse struct {
	Anuncios []AnuncioProfesorView `json:"anuncios"`
}

type AnunciosAlumnoResponse struct {
	Anuncios []AnuncioAlumnoView `json:"anuncios"`
}

// TareaAlumnoView es una fila del panel "mis tareas" de un alumno.
type TareaAlumnoView struct {
	TareaID              string      `json:"tareaId"`
	ClaseID              string      `json:"claseId"`
	ClaseNombre          string      `json:"claseNombre"`
	Titulo               string      `json:"titulo"`
	Contenido            string      `json:"contenido"`
	FechaEntrega         *time.Time  `json:"fechaEntrega,omitempty"`
	Estado               EstadoTarea `json:"estado"`
	Nota                 *float64    `json:"nota,omitempty"`
	ComentarioCorreccion *string     `json:"comentarioCorreccion,omitempty"`
	ArchivoURL           *string     `json:"archivoUrl,omitempty"`
}

type TareasAlumnoResponse struct {
	Tareas []TareaAlumnoView `json:"tareas"`
	Total  int               `json:"total"`
}

// AlumnoSinEntregar identifica a un miembro del roster que aun no ha
// entregado una tarea.
type AlumnoSinEntregar struct {
	AlumnoID     string `json:"alumnoId"`
	AlumnoNombre string `json:"alumnoNombre"`
	AlumnoEmail  string `json:"alumnoEmail"`
}

type EntregasTareaResponse struct {
	Entregas   []EntregaConAlumno  `json:"entregas"`
	Pendientes []AlumnoSinEntregar `json:"pendientes"`
	Total      int                 `json:"total"`
}

type NotificacionesResponse struct {
	Notificaciones []Notificacion `json:"notificaciones"`
	Total          int            `json:"total"`
}
