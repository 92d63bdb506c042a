package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
)

type AnuncioRepository interface {
	Create(ctx context.Context, anuncio *models.Anuncio) error
	GetByID(ctx context.Context, id string) (*models.Anuncio, error)
	GetByClaseID(ctx context.Context, claseID string) ([]models.Anuncio, error)
	GetStatsByClase(ctx context.Context, claseID string) ([]models.TareaStats, error)
	GetTareasDeAlumno(ctx context.Context, alumnoID string) ([]models.TareaDeAlumno, error)
	GetEntregaArchivos(ctx context.Context, anuncioID string) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type anuncioRepository struct {
	*PostgresRepository
}

func NewAnuncioRepository(db *sql.DB, logger zerolog.Logger) AnuncioRepository {
	return &anuncioRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *anuncioRepository) Create(ctx context.Context, anuncio *models.Anuncio) error {
	query := `
		INSERT INTO anuncios (id, clase_id, autor_id, tipo, titulo, contenido, fecha_entrega, archivo_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		anuncio.ID,
		anuncio.ClaseID,
		anuncio.AutorID,
		anuncio.Tipo,
		anuncio.Titulo,
		anuncio.Contenido,
		anuncio.FechaEntrega,
		anuncio.ArchivoID,
		anuncio.CreatedAt,
	)

	return err
}

func (r *anuncioRepository) GetByID(ctx context.Context, id string) (*models.Anuncio, error) {
	query := `
		SELECT id, clase_id, autor_id, tipo, titulo, contenido, fecha_entrega, archivo_id, created_at
		FROM anuncios
		WHERE id = $1
	`

	anuncio := &models.Anuncio{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&anuncio.ID,
		&anuncio.ClaseID,
		&anuncio.AutorID,
		&anuncio.Tipo,
		&anuncio.Titulo,
		&anuncio.Contenido,
		&anuncio.FechaEntrega,
		&anuncio.ArchivoID,
		&anuncio.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return anuncio, err
}

func (r *anuncioRepository) GetByClaseID(ctx context.Context, claseID string) ([]models.Anuncio, error) {
	query := `
		SELECT id, clase_id, autor_id, tipo, titulo, contenido, fecha_entrega, archivo_id, created_at
		FROM anuncios
		WHERE clase_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, claseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var anuncios []models.Anuncio
	for rows.Next() {
		var anuncio models.Anuncio
		err := rows.Scan(
			&anuncio.ID,
			&anuncio.ClaseID,
			&anuncio.AutorID,
			&anuncio.Tipo,
			&anuncio.Titulo,
			&anuncio.Contenido,
			&anuncio.FechaEntrega,
			&anuncio.ArchivoID,
			&anuncio.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		anuncios = append(anuncios, anuncio)
	}

	return anuncios, rows.Err()
}

// GetStatsByClase devuelve, para cada tarea de la clase, el total de
// entregas y cuantas estan calificadas. COUNT(e.nota) ignora NULL, asi que
// cuenta exactamente las calificadas.
func (r *anuncioRepository) GetStatsByClase(ctx context.Context, claseID string) ([]models.TareaStats, error) {
	query := `
		SELECT a.id, COUNT(e.id) as total_entregas, COUNT(e.nota) as calificadas
		FROM anuncios a
		LEFT JOIN entregas e ON e.anuncio_id = a.id
		WHERE a.clase_id = $1 AND a.tipo = 'tarea'
		GROUP BY a.id
	`

	rows, err := r.db.QueryContext(ctx, query, claseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.TareaStats
	for rows.Next() {
		var s models.TareaStats
		if err := rows.Scan(&s.AnuncioID, &s.TotalEntregas, &s.Calificadas); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetTareasDeAlumno devuelve todas las tareas de las clases donde el alumno
// esta inscrito, con su propia entrega (si existe) en la misma fila.
func (r *anuncioRepository) GetTareasDeAlumno(ctx context.Context, alumnoID string) ([]models.TareaDeAlumno, error) {
	query := `
		SELECT
			a.id, a.clase_id, a.autor_id, a.tipo, a.titulo, a.contenido,
			a.fecha_entrega, a.archivo_id, a.created_at,
			c.nombre as clase_nombre,
			e.id, e.archivo_id, e.comentario, e.nota, e.comentario_correccion,
			e.entregado_at, e.actualizado_at
		FROM anuncios a
		JOIN clases c ON c.id = a.clase_id
		JOIN clase_alumnos ca ON ca.clase_id = a.clase_id AND ca.alumno_id = $1
		LEFT JOIN entregas e ON e.anuncio_id = a.id AND e.alumno_id = $1
		WHERE a.tipo = 'tarea'
		ORDER BY a.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, alumnoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tareas []models.TareaDeAlumno
	for rows.Next() {
		var tarea models.TareaDeAlumno
		var (
			entregaID            sql.NullString
			entregaArchivoID     sql.NullString
			entregaComentario    sql.NullString
			entregaNota          sql.NullFloat64
			entregaCorreccion    sql.NullString
			entregaEntregadoAt   sql.NullTime
			entregaActualizadoAt sql.NullTime
		)

		err := rows.Scan(
			&tarea.ID,
			&tarea.ClaseID,
			&tarea.AutorID,
			&tarea.Tipo,
			&tarea.Titulo,
			&tarea.Contenido,
			&tarea.FechaEntrega,
			&tarea.ArchivoID,
			&tarea.CreatedAt,
			&tarea.ClaseNombre,
			&entregaID,
			&entregaArchivoID,
			&entregaComentario,
			&entregaNota,
			&entregaCorreccion,
			&entregaEntregadoAt,
			&entregaActualizadoAt,
		)
		if err != nil {
			return nil, err
		}

		if entregaID.Valid {
			entrega := &models.Entrega{
				ID:          entregaID.String,
				AnuncioID:   tarea.ID,
				AlumnoID:    alumnoID,
				EntregadoAt: entregaEntregadoAt.Time,
			}
			if entregaArchivoID.Valid {
				entrega.ArchivoID = &entregaArchivoID.String
			}
			if entregaComentario.Valid {
				entrega.Comentario = &entregaComentario.String
			}
			if entregaNota.Valid {
				entrega.Nota = &entregaNota.Float64
			}
			if entregaCorreccion.Valid {
				entrega.ComentarioCorreccion = &entregaCorreccion.String
			}
			if entregaActualizadoAt.Valid {
				entrega.ActualizadoAt = entregaActualizadoAt.Time
			}
			tarea.Entrega = entrega
		}

		tareas = append(tareas, tarea)
	}

	return tareas, rows.Err()
}

// GetEntregaArchivos devuelve los ids de archivo adjuntos a las entregas de
// un anuncio, para poder borrar los objetos antes del borrado en cascada.
func (r *anuncioRepository) GetEntregaArchivos(ctx context.Context, anuncioID string) ([]string, error) {
	query := `
		SELECT archivo_id FROM entregas
		WHERE anuncio_id = $1 AND archivo_id IS NOT NULL
	`

	rows, err := r.db.QueryContext(ctx, query, anuncioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var archivos []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		archivos = append(archivos, id)
	}

	return archivos, rows.Err()
}

func (r *anuncioRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM anuncios WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
