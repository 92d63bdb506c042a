package httpd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// DescargarArchivo sirve un adjunto con su nombre original como
// Content-Disposition.
func (h *Handler) DescargarArchivo(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	descarga, err := h.archivoService.Descargar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	contentType := descarga.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(descarga.Tamano, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", descarga.Nombre))
	w.WriteHeader(http.StatusOK)
	w.Write(descarga.Contenido)
}
