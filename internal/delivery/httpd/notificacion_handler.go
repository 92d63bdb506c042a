package httpd

import (
	"net/http"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/pkg/utils"
)

func (h *Handler) GetNotificaciones(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	resp, err := h.notificacionService.Feed(r.Context(), *actor)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}

func (h *Handler) MarcarNotificacionLeida(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	var req models.MarcarLeidaRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.notificacionService.MarcarLeida(r.Context(), *actor, &req); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
