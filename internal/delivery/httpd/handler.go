package httpd

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/internal/service"
)

type Handler struct {
	authService         service.AuthService
	claseService        service.ClaseService
	anuncioService      service.AnuncioService
	entregaService      service.EntregaService
	invitacionService   service.InvitacionService
	notificacionService service.NotificacionService
	archivoService      service.ArchivoService
	validate            *validator.Validate
	maxUploadBytes      int64
	logger              zerolog.Logger
}

func NewHandler(
	authService service.AuthService,
	claseService service.ClaseService,
	anuncioService service.AnuncioService,
	entregaService service.EntregaService,
	invitacionService service.InvitacionService,
	notificacionService service.NotificacionService,
	archivoService service.ArchivoService,
	maxUploadBytes int64,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		authService:         authService,
		claseService:        claseService,
		anuncioService:      anuncioService,
		entregaService:      entregaService,
		invitacionService:   invitacionService,
		notificacionService: notificacionService,
		archivoService:      archivoService,
		validate:            validator.New(),
		maxUploadBytes:      maxUploadBytes,
		logger:              logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", h.Login)
		api.Post("/usuarios/registro", h.Registro)

		api.Group(func(r chi.Router) {
			r.Use(h.Autenticar)

			r.Route("/clases", func(r chi.Router) {
				r.Post("/crear", h.CrearClase)
				r.Get("/", h.GetClases)
				r.Get("/{id}", h.GetClase)
				r.Delete("/{id}", h.EliminarClase)
				r.Post("/unirse", h.UnirseClase)
			})

			r.Route("/anuncios", func(r chi.Router) {
				r.Post("/crear", h.CrearAnuncio)
				r.Get("/{claseId}", h.GetAnuncios)
				r.Delete("/{id}", h.EliminarAnuncio)
			})

			r.Route("/tareas", func(r chi.Router) {
				r.Post("/{id}/entregar", h.EntregarTarea)
				r.Get("/{id}/entregas", h.GetEntregas)
			})

			r.Post("/entregas/{id}/calificar", h.CalificarEntrega)
			r.Get("/alumnos/me/tareas", h.GetTareasAlumno)

			r.Route("/invitaciones", func(r chi.Router) {
				r.Post("/enviar", h.EnviarInvitacion)
				r.Post("/responder/{id}", h.ResponderInvitacion)
				r.Get("/pendientes", h.GetInvitacionesPendientes)
			})

			r.Route("/notificaciones", func(r chi.Router) {
				r.Get("/", h.GetNotificaciones)
				r.Post("/leer", h.MarcarNotificacionLeida)
			})

			r.Get("/archivos/{id}", h.DescargarArchivo)
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "aulasync-server",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

// leerArchivoForm extrae el fichero opcional de un formulario multipart.
// Devuelve nil si el campo no viene.
func leerArchivoForm(r *http.Request, campo string) (*models.ArchivoSubido, error) {
	file, header, err := r.FormFile(campo)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	contenido, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &models.ArchivoSubido{
		Nombre:      header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Contenido:   contenido,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// handleServiceError traduce errores de dominio a codigos HTTP. Los fallos
// de persistencia no reconocidos salen como 500 generico sin detalles.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrClaseNoEncontrada),
		errors.Is(err, service.ErrAnuncioNoEncontrado),
		errors.Is(err, service.ErrTareaNoEncontrada),
		errors.Is(err, service.ErrEntregaNoEncontrada),
		errors.Is(err, service.ErrInvitacionNoEncontrada),
		errors.Is(err, service.ErrAlumnoNoEncontrado),
		errors.Is(err, service.ErrArchivoNoEncontrado):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrNoPropietario),
		errors.Is(err, service.ErrNoInscrito),
		errors.Is(err, service.ErrNoDestinatario),
		errors.Is(err, service.ErrSoloAlumnos),
		errors.Is(err, service.ErrSoloProfesores):
		writeError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrYaInscrito),
		errors.Is(err, service.ErrInvitacionDuplicada),
		errors.Is(err, service.ErrInvitacionRespondida),
		errors.Is(err, service.ErrEmailYaRegistrado):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrNotaInvalida),
		errors.Is(err, service.ErrTituloRequerido),
		errors.Is(err, service.ErrEntregaFueraDePlazo),
		errors.Is(err, service.ErrRespuestaInvalida),
		errors.Is(err, service.ErrRolInvalido),
		errors.Is(err, service.ErrTipoAnuncioInvalido),
		errors.Is(err, service.ErrTipoNotificacionInvalido):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrCredencialesInvalidas):
		writeError(w, http.StatusUnauthorized, err.Error())

	default:
		h.logger.Error().Err(err).Msg("Service error")
		writeError(w, http.StatusInternalServerError, "error interno del servidor")
	}
}
