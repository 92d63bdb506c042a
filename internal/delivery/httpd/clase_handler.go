package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/pkg/utils"
)

func (h *Handler) CrearClase(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	var req models.CrearClaseRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	clase, err := h.claseService.Crear(r.Context(), *actor, req.Nombre)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, clase)
}

// GetClases lista las clases del actor: las que imparte si es profesor,
// las que cursa si es alumno.
func (h *Handler) GetClases(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	if actor.EsProfesor() {
		clases, err := h.claseService.ListDeProfesor(r.Context(), *actor)
		if err != nil {
			h.handleServiceError(w, err)
			return
		}
		writeSuccess(w, map[string]interface{}{"clases": clases})
		return
	}

	clases, err := h.claseService.ListDeAlumno(r.Context(), *actor)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{"clases": clases})
}

func (h *Handler) GetClase(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	detalle, err := h.claseService.Get(r.Context(), *actor, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, detalle)
}

func (h *Handler) UnirseClase(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	var req models.UnirseClaseRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	clase, err := h.claseService.Unirse(r.Context(), *actor, req.Codigo)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, clase)
}

func (h *Handler) EliminarClase(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	if err := h.claseService.Eliminar(r.Context(), *actor, chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
