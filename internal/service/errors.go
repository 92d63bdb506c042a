package service

import "errors"

// Errores de dominio. Los handlers los traducen a codigos HTTP en
// handleServiceError; cualquier otro error se registra y sale como 500
// generico sin detalles internos.
var (
	// NotFound
	ErrClaseNoEncontrada      = errors.New("clase no encontrada")
	ErrAnuncioNoEncontrado    = errors.New("anuncio no encontrado")
	ErrTareaNoEncontrada      = errors.New("tarea no encontrada")
	ErrEntregaNoEncontrada    = errors.New("entrega no encontrada")
	ErrInvitacionNoEncontrada = errors.New("invitacion no encontrada")
	ErrAlumnoNoEncontrado     = errors.New("alumno no encontrado")
	ErrArchivoNoEncontrado    = errors.New("archivo no encontrado")

	// Forbidden
	ErrNoPropietario  = errors.New("solo el profesor de la clase puede realizar esta accion")
	ErrNoInscrito     = errors.New("el alumno no esta inscrito en la clase")
	ErrNoDestinatario = errors.New("la invitacion no esta dirigida a este alumno")
	ErrSoloAlumnos    = errors.New("accion disponible solo para alumnos")
	ErrSoloProfesores = errors.New("accion disponible solo para profesores")

	// Conflict
	ErrYaInscrito           = errors.New("el alumno ya pertenece a la clase")
	ErrInvitacionDuplicada  = errors.New("ya existe una invitacion pendiente para este alumno")
	ErrInvitacionRespondida = errors.New("la invitacion ya fue respondida")
	ErrEmailYaRegistrado    = errors.New("el email ya esta registrado")

	// ValidationError
	ErrNotaInvalida             = errors.New("la nota debe estar entre 0 y 10 con un decimal como maximo")
	ErrTituloRequerido          = errors.New("las tareas requieren titulo")
	ErrEntregaFueraDePlazo      = errors.New("el plazo de entrega ha finalizado")
	ErrRespuestaInvalida        = errors.New("la respuesta debe ser aceptar o rechazar")
	ErrRolInvalido              = errors.New("el rol debe ser profesor o alumno")
	ErrTipoAnuncioInvalido      = errors.New("el tipo debe ser anuncio o tarea")
	ErrTipoNotificacionInvalido = errors.New("tipo de notificacion desconocido")

	// Unauthorized
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
)
