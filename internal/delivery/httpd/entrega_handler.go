package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/pkg/utils"
)

// EntregarTarea recibe un multipart con el campo "comentario" y un fichero
// opcional en "archivo". Una segunda entrega del mismo alumno sobreescribe
// la anterior.
func (h *Handler) EntregarTarea(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	archivo, err := leerArchivoForm(r, "archivo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid archivo field")
		return
	}

	entrega, err := h.entregaService.Entregar(
		r.Context(),
		*actor,
		chi.URLParam(r, "id"),
		r.FormValue("comentario"),
		archivo,
	)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entrega)
}

// GetEntregas lista las entregas de una tarea junto con los alumnos del
// roster que aun no han entregado. Solo para el profesor propietario.
func (h *Handler) GetEntregas(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	resp, err := h.entregaService.ListByTarea(r.Context(), *actor, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}

func (h *Handler) CalificarEntrega(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	var req models.CalificarRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entrega, err := h.entregaService.Calificar(r.Context(), *actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, entrega)
}

// GetTareasAlumno devuelve el panel "mis tareas" del alumno autenticado.
func (h *Handler) GetTareasAlumno(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	resp, err := h.entregaService.VistaAlumno(r.Context(), *actor)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}
