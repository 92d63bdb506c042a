package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
)

type EntregaRepository interface {
	Upsert(ctx context.Context, entrega *models.Entrega) error
	GetByID(ctx context.Context, id string) (*models.Entrega, error)
	GetByAnuncioYAlumno(ctx context.Context, anuncioID, alumnoID string) (*models.Entrega, error)
	GetByAnuncioID(ctx context.Context, anuncioID string) ([]models.EntregaConAlumno, error)
	SetNota(ctx context.Context, id string, nota float64, comentario *string) error
}

type entregaRepository struct {
	*PostgresRepository
}

func NewEntregaRepository(db *sql.DB, logger zerolog.Logger) EntregaRepository {
	return &entregaRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// Upsert crea la entrega o, si ya existe una para el par (tarea, alumno),
// la actualiza en la misma sentencia. El COALESCE conserva el archivo
// anterior cuando el reenvio no adjunta uno nuevo; la nota no se toca, una
// entrega ya calificada conserva su calificacion.
func (r *entregaRepository) Upsert(ctx context.Context, entrega *models.Entrega) error {
	query := `
		INSERT INTO entregas (id, anuncio_id, alumno_id, archivo_id, comentario, entregado_at, actualizado_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (anuncio_id, alumno_id) DO UPDATE SET
			archivo_id = COALESCE(EXCLUDED.archivo_id, entregas.archivo_id),
			comentario = EXCLUDED.comentario,
			entregado_at = EXCLUDED.entregado_at,
			actualizado_at = EXCLUDED.actualizado_at
		RETURNING id, nota, comentario_correccion
	`

	var (
		nota       sql.NullFloat64
		correccion sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query,
		entrega.ID,
		entrega.AnuncioID,
		entrega.AlumnoID,
		entrega.ArchivoID,
		entrega.Comentario,
		entrega.EntregadoAt,
		entrega.ActualizadoAt,
	).Scan(&entrega.ID, &nota, &correccion)
	if err != nil {
		return err
	}

	if nota.Valid {
		entrega.Nota = &nota.Float64
	}
	if correccion.Valid {
		entrega.ComentarioCorreccion = &correccion.String
	}

	return nil
}

func (r *entregaRepository) GetByID(ctx context.Context, id string) (*models.Entrega, error) {
	query := `
		SELECT id, anuncio_id, alumno_id, archivo_id, comentario, nota,
		       comentario_correccion, entregado_at, actualizado_at
		FROM entregas
		WHERE id = $1
	`

	return r.scanEntrega(r.db.QueryRowContext(ctx, query, id))
}

func (r *entregaRepository) GetByAnuncioYAlumno(ctx context.Context, anuncioID, alumnoID string) (*models.Entrega, error) {
	query := `
		SELECT id, anuncio_id, alumno_id, archivo_id, comentario, nota,
		       comentario_correccion, entregado_at, actualizado_at
		FROM entregas
		WHERE anuncio_id = $1 AND alumno_id = $2
	`

	return r.scanEntrega(r.db.QueryRowContext(ctx, query, anuncioID, alumnoID))
}

func (r *entregaRepository) scanEntrega(row *sql.Row) (*models.Entrega, error) {
	entrega := &models.Entrega{}
	var (
		archivoID  sql.NullString
		comentario sql.NullString
		nota       sql.NullFloat64
		correccion sql.NullString
	)

	err := row.Scan(
		&entrega.ID,
		&entrega.AnuncioID,
		&entrega.AlumnoID,
		&archivoID,
		&comentario,
		&nota,
		&correccion,
		&entrega.EntregadoAt,
		&entrega.ActualizadoAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if archivoID.Valid {
		entrega.ArchivoID = &archivoID.String
	}
	if comentario.Valid {
		entrega.Comentario = &comentario.String
	}
	if nota.Valid {
		entrega.Nota = &nota.Float64
	}
	if correccion.Valid {
		entrega.ComentarioCorreccion = &correccion.String
	}

	return entrega, nil
}

func (r *entregaRepository) GetByAnuncioID(ctx context.Context, anuncioID string) ([]models.EntregaConAlumno, error) {
	query := `
		SELECT
			e.id, e.anuncio_id, e.alumno_id, e.archivo_id, e.comentario, e.nota,
			e.comentario_correccion, e.entregado_at, e.actualizado_at,
			u.nombre as alumno_nombre, u.email as alumno_email
		FROM entregas e
		JOIN usuarios u ON u.id = e.alumno_id
		WHERE e.anuncio_id = $1
		ORDER BY e.entregado_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, anuncioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entregas []models.EntregaConAlumno
	for rows.Next() {
		var entrega models.EntregaConAlumno
		var (
			archivoID  sql.NullString
			comentario sql.NullString
			nota       sql.NullFloat64
			correccion sql.NullString
		)

		err := rows.Scan(
			&entrega.ID,
			&entrega.AnuncioID,
			&entrega.AlumnoID,
			&archivoID,
			&comentario,
			&nota,
			&correccion,
			&entrega.EntregadoAt,
			&entrega.ActualizadoAt,
			&entrega.AlumnoNombre,
			&entrega.AlumnoEmail,
		)
		if err != nil {
			return nil, err
		}

		if archivoID.Valid {
			entrega.ArchivoID = &archivoID.String
		}
		if comentario.Valid {
			entrega.Comentario = &comentario.String
		}
		if nota.Valid {
			entrega.Nota = &nota.Float64
		}
		if correccion.Valid {
			entrega.ComentarioCorreccion = &correccion.String
		}

		entregas = append(entregas, entrega)
	}

	return entregas, rows.Err()
}

// SetNota sobrescribe nota y comentario de correccion. Repetir la misma
// calificacion es idempotente: misma fila, mismos valores.
func (r *entregaRepository) SetNota(ctx context.Context, id string, nota float64, comentario *string) error {
	query := `
		UPDATE entregas
		SET nota = $1, comentario_correccion = $2, actualizado_at = $3
		WHERE id = $4
	`

	_, err := r.db.ExecContext(ctx, query, nota, comentario, time.Now(), id)
	return err
}
