package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
)

type InvitacionRepository interface {
	Create(ctx context.Context, invitacion *models.Invitacion) error
	GetByID(ctx context.Context, id string) (*models.Invitacion, error)
	GetPendientesByAlumno(ctx context.Context, alumnoID string) ([]models.InvitacionConClase, error)
	ExistsPendiente(ctx context.Context, alumnoID, claseID string) (bool, error)
	UpdateEstado(ctx context.Context, id string, estado models.EstadoInvitacion) error
}

type invitacionRepository struct {
	*PostgresRepository
}

func NewInvitacionRepository(db *sql.DB, logger zerolog.Logger) InvitacionRepository {
	return &invitacionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// Create inserta la invitacion. El indice parcial unico sobre
// (alumno_id, clase_id) WHERE estado = 'pendiente' garantiza una sola
// pendiente por par incluso bajo invitaciones concurrentes; el que pierde
// la carrera recibe una violacion unica (ver IsUniqueViolation).
func (r *invitacionRepository) Create(ctx context.Context, invitacion *models.Invitacion) error {
	query := `
		INSERT INTO invitaciones (id, alumno_id, clase_id, estado, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		invitacion.ID,
		invitacion.AlumnoID,
		invitacion.ClaseID,
		invitacion.Estado,
		invitacion.CreatedAt,
	)

	return err
}

func (r *invitacionRepository) GetByID(ctx context.Context, id string) (*models.Invitacion, error) {
	query := `
		SELECT id, alumno_id, clase_id, estado, created_at, respondido_at
		FROM invitaciones
		WHERE id = $1
	`

	invitacion := &models.Invitacion{}
	var respondidoAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&invitacion.ID,
		&invitacion.AlumnoID,
		&invitacion.ClaseID,
		&invitacion.Estado,
		&invitacion.CreatedAt,
		&respondidoAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if respondidoAt.Valid {
		invitacion.RespondidoAt = &respondidoAt.Time
	}

	return invitacion, nil
}

func (r *invitacionRepository) GetPendientesByAlumno(ctx context.Context, alumnoID string) ([]models.InvitacionConClase, error) {
	query := `
		SELECT
			i.id, i.alumno_id, i.clase_id, i.estado, i.created_at,
			c.nombre as clase_nombre,
			u.nombre as profesor_nombre
		FROM invitaciones i
		JOIN clases c ON c.id = i.clase_id
		JOIN usuarios u ON u.id = c.profesor_id
		WHERE i.alumno_id = $1 AND i.estado = 'pendiente'
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, alumnoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitaciones []models.InvitacionConClase
	for rows.Next() {
		var inv models.InvitacionConClase
		err := rows.Scan(
			&inv.ID,
			&inv.AlumnoID,
			&inv.ClaseID,
			&inv.Estado,
			&inv.CreatedAt,
			&inv.ClaseNombre,
			&inv.ProfesorNombre,
		)
		if err != nil {
			return nil, err
		}
		invitaciones = append(invitaciones, inv)
	}

	return invitaciones, rows.Err()
}

func (r *invitacionRepository) ExistsPendiente(ctx context.Context, alumnoID, claseID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM invitaciones
			WHERE alumno_id = $1 AND clase_id = $2 AND estado = 'pendiente'
		)
	`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, alumnoID, claseID).Scan(&exists)
	return exists, err
}

func (r *invitacionRepository) UpdateEstado(ctx context.Context, id string, estado models.EstadoInvitacion) error {
	query := `
		UPDATE invitaciones
		SET estado = $1, respondido_at = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, estado, time.Now(), id)
	return err
}
