package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aulasync/aulasync-server/internal/models"
)

// CrearAnuncio recibe un multipart con la parte JSON "data" y un fichero
// adjunto opcional en "archivo".
func (h *Handler) CrearAnuncio(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var data models.CrearAnuncioData
	if err := json.Unmarshal([]byte(r.FormValue("data")), &data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid data field")
		return
	}

	if err := h.validate.Struct(&data); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	archivo, err := leerArchivoForm(r, "archivo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid archivo field")
		return
	}

	resp, err := h.anuncioService.Crear(r.Context(), *actor, &data, archivo)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// GetAnuncios devuelve el tablon de una clase con la vista que corresponda
// al rol del actor.
func (h *Handler) GetAnuncios(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	claseID := chi.URLParam(r, "claseId")

	if actor.EsProfesor() {
		resp, err := h.anuncioService.ListParaProfesor(r.Context(), *actor, claseID)
		if err != nil {
			h.handleServiceError(w, err)
			return
		}
		writeSuccess(w, resp)
		return
	}

	resp, err := h.anuncioService.ListParaAlumno(r.Context(), *actor, claseID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}

func (h *Handler) EliminarAnuncio(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	if err := h.anuncioService.Eliminar(r.Context(), *actor, chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{"message": "anuncio eliminado"})
}
