package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/pkg/utils"
)

func (h *Handler) EnviarInvitacion(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	var req models.EnviarInvitacionRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.invitacionService.Enviar(r.Context(), *actor, &req); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "invitacion enviada"})
}

func (h *Handler) ResponderInvitacion(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	var req models.ResponderInvitacionRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	invitacion, err := h.invitacionService.Responder(r.Context(), *actor, chi.URLParam(r, "id"), req.Respuesta)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	mensaje := "invitacion rechazada"
	if invitacion.Estado == models.InvitacionAceptada {
		mensaje = "invitacion aceptada"
	}
	writeSuccess(w, map[string]interface{}{"message": mensaje})
}

func (h *Handler) GetInvitacionesPendientes(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "no autenticado")
		return
	}

	invitaciones, err := h.invitacionService.ListPendientes(r.Context(), *actor)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"invitaciones": invitaciones,
		"total":        len(invitaciones),
	})
}
