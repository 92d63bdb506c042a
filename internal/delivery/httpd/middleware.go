package httpd

import (
	"context"
	"net/http"
	"strings"

	"github.com/aulasync/aulasync-server/internal/models"
)

type contextKey string

const actorKey contextKey = "actor"

// Autenticar exige un token Bearer valido y deja el actor en el contexto.
func (h *Handler) Autenticar(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "falta la cabecera Authorization")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeError(w, http.StatusUnauthorized, "cabecera Authorization malformada")
			return
		}

		actor, err := h.authService.ParseToken(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "token invalido o caducado")
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFromContext(ctx context.Context) *models.Actor {
	actor, ok := ctx.Value(actorKey).(*models.Actor)
	if !ok {
		return nil
	}
	return actor
}
