package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
)

type NotificacionRepository interface {
	GetInvitacionesNoLeidas(ctx context.Context, alumnoID string) ([]models.Notificacion, error)
	GetTareasNoLeidas(ctx context.Context, alumnoID string) ([]models.Notificacion, error)
	GetCalificacionesNoLeidas(ctx context.Context, alumnoID string) ([]models.Notificacion, error)
	MarcarLeida(ctx context.Context, alumnoID string, tipo models.TipoNotificacion, refID string) error
}

type notificacionRepository struct {
	*PostgresRepository
}

func NewNotificacionRepository(db *sql.DB, logger zerolog.Logger) NotificacionRepository {
	return &notificacionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// GetInvitacionesNoLeidas devuelve una notificacion por cada invitacion
// pendiente del alumno no marcada como leida. Responder la invitacion o
// marcarla leida la retiran del feed por igual.
func (r *notificacionRepository) GetInvitacionesNoLeidas(ctx context.Context, alumnoID string) ([]models.Notificacion, error) {
	query := `
		SELECT i.id, c.nombre, c.nombre, i.created_at
		FROM invitaciones i
		JOIN clases c ON c.id = i.clase_id
		WHERE i.alumno_id = $1
		  AND i.estado = 'pendiente'
		  AND NOT EXISTS (
			SELECT 1 FROM notificaciones_leidas nl
			WHERE nl.alumno_id = $1 AND nl.tipo = 'invitacion' AND nl.ref_id = i.id
		  )
		ORDER BY i.created_at DESC
	`

	return r.queryNotificaciones(ctx, query, alumnoID, models.NotificacionInvitacion)
}

// GetTareasNoLeidas devuelve una notificacion por cada tarea publicada en
// las clases del alumno desde su inscripcion y todavia no marcada como
// leida. Las filas nunca se mutan: "leer" solo anade al conjunto de leidas.
func (r *notificacionRepository) GetTareasNoLeidas(ctx context.Context, alumnoID string) ([]models.Notificacion, error) {
	query := `
		SELECT a.id, COALESCE(a.titulo, ''), c.nombre, a.created_at
		FROM anuncios a
		JOIN clases c ON c.id = a.clase_id
		JOIN clase_alumnos ca ON ca.clase_id = a.clase_id AND ca.alumno_id = $1
		WHERE a.tipo = 'tarea'
		  AND a.created_at >= ca.inscrito_at
		  AND NOT EXISTS (
			SELECT 1 FROM notificaciones_leidas nl
			WHERE nl.alumno_id = $1 AND nl.tipo = 'tarea' AND nl.ref_id = a.id
		  )
		ORDER BY a.created_at DESC
	`

	return r.queryNotificaciones(ctx, query, alumnoID, models.NotificacionTarea)
}

func (r *notificacionRepository) GetCalificacionesNoLeidas(ctx context.Context, alumnoID string) ([]models.Notificacion, error) {
	query := `
		SELECT e.id, COALESCE(a.titulo, ''), c.nombre, e.actualizado_at
		FROM entregas e
		JOIN anuncios a ON a.id = e.anuncio_id
		JOIN clases c ON c.id = a.clase_id
		WHERE e.alumno_id = $1
		  AND e.nota IS NOT NULL
		  AND NOT EXISTS (
			SELECT 1 FROM notificaciones_leidas nl
			WHERE nl.alumno_id = $1 AND nl.tipo = 'calificacion' AND nl.ref_id = e.id
		  )
		ORDER BY e.actualizado_at DESC
	`

	return r.queryNotificaciones(ctx, query, alumnoID, models.NotificacionCalificacion)
}

func (r *notificacionRepository) queryNotificaciones(ctx context.Context, query, alumnoID string, tipo models.TipoNotificacion) ([]models.Notificacion, error) {
	rows, err := r.db.QueryContext(ctx, query, alumnoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notificaciones []models.Notificacion
	for rows.Next() {
		n := models.Notificacion{Tipo: tipo}
		if err := rows.Scan(&n.RefID, &n.Titulo, &n.ClaseNombre, &n.CreatedAt); err != nil {
			return nil, err
		}
		notificaciones = append(notificaciones, n)
	}

	return notificaciones, rows.Err()
}

func (r *notificacionRepository) MarcarLeida(ctx context.Context, alumnoID string, tipo models.TipoNotificacion, refID string) error {
	query := `
		INSERT INTO notificaciones_leidas (alumno_id, tipo, ref_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (alumno_id, tipo, ref_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, alumnoID, tipo, refID)
	return err
}
