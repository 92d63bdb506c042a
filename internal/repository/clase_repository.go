package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
)

type ClaseRepository interface {
	Create(ctx context.Context, clase *models.Clase) error
	GetByID(ctx context.Context, id string) (*models.Clase, error)
	GetByCodigo(ctx context.Context, codigo string) (*models.Clase, error)
	GetByProfesorID(ctx context.Context, profesorID string) ([]models.Clase, error)
	GetByAlumnoID(ctx context.Context, alumnoID string) ([]models.ClaseConProfesor, error)
	GetAlumnos(ctx context.Context, claseID string) ([]models.Usuario, error)
	AddAlumno(ctx context.Context, claseID, alumnoID string) error
	IsAlumnoInscrito(ctx context.Context, claseID, alumnoID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type claseRepository struct {
	*PostgresRepository
}

func NewClaseRepository(db *sql.DB, logger zerolog.Logger) ClaseRepository {
	return &claseRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *claseRepository) Create(ctx context.Context, clase *models.Clase) error {
	query := `
		INSERT INTO clases (id, nombre, codigo, profesor_id, num_alumnos, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		clase.ID,
		clase.Nombre,
		clase.Codigo,
		clase.ProfesorID,
		clase.NumAlumnos,
		clase.CreatedAt,
	)

	return err
}

func (r *claseRepository) GetByID(ctx context.Context, id string) (*models.Clase, error) {
	query := `
		SELECT id, nombre, codigo, profesor_id, num_alumnos, created_at
		FROM clases
		WHERE id = $1
	`

	clase := &models.Clase{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&clase.ID,
		&clase.Nombre,
		&clase.Codigo,
		&clase.ProfesorID,
		&clase.NumAlumnos,
		&clase.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return clase, err
}

func (r *claseRepository) GetByCodigo(ctx context.Context, codigo string) (*models.Clase, error) {
	query := `
		SELECT id, nombre, codigo, profesor_id, num_alumnos, created_at
		FROM clases
		WHERE codigo = $1
	`

	clase := &models.Clase{}
	err := r.db.QueryRowContext(ctx, query, codigo).Scan(
		&clase.ID,
		&clase.Nombre,
		&clase.Codigo,
		&clase.ProfesorID,
		&clase.NumAlumnos,
		&clase.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return clase, err
}

func (r *claseRepository) GetByProfesorID(ctx context.Context, profesorID string) ([]models.Clase, error) {
	query := `
		SELECT id, nombre, codigo, profesor_id, num_alumnos, created_at
		FROM clases
		WHERE profesor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, profesorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clases []models.Clase
	for rows.Next() {
		var clase models.Clase
		err := rows.Scan(
			&clase.ID,
			&clase.Nombre,
			&clase.Codigo,
			&clase.ProfesorID,
			&clase.NumAlumnos,
			&clase.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		clases = append(clases, clase)
	}

	return clases, rows.Err()
}

func (r *claseRepository) GetByAlumnoID(ctx context.Context, alumnoID string) ([]models.ClaseConProfesor, error) {
	query := `
		SELECT
			c.id, c.nombre, c.codigo, c.profesor_id, c.num_alumnos, c.created_at,
			u.nombre as profesor_nombre
		FROM clases c
		JOIN clase_alumnos ca ON ca.clase_id = c.id
		JOIN usuarios u ON u.id = c.profesor_id
		WHERE ca.alumno_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, alumnoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clases []models.ClaseConProfesor
	for rows.Next() {
		var clase models.ClaseConProfesor
		err := rows.Scan(
			&clase.ID,
			&clase.Nombre,
			&clase.Codigo,
			&clase.ProfesorID,
			&clase.NumAlumnos,
			&clase.CreatedAt,
			&clase.ProfesorNombre,
		)
		if err != nil {
			return nil, err
		}
		clases = append(clases, clase)
	}

	return clases, rows.Err()
}

func (r *claseRepository) GetAlumnos(ctx context.Context, claseID string) ([]models.Usuario, error) {
	query := `
		SELECT u.id, u.nombre, u.email, u.rol, u.password_hash, u.created_at
		FROM usuarios u
		JOIN clase_alumnos ca ON ca.alumno_id = u.id
		WHERE ca.clase_id = $1
		ORDER BY u.nombre
	`

	rows, err := r.db.QueryContext(ctx, query, claseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alumnos []models.Usuario
	for rows.Next() {
		var alumno models.Usuario
		err := rows.Scan(
			&alumno.ID,
			&alumno.Nombre,
			&alumno.Email,
			&alumno.Rol,
			&alumno.PasswordHash,
			&alumno.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		alumnos = append(alumnos, alumno)
	}

	return alumnos, rows.Err()
}

// AddAlumno inserta al alumno en el roster y actualiza el contador en la
// misma transaccion. La clave primaria compuesta hace la insercion
// idempotente frente a dobles aceptaciones.
func (r *claseRepository) AddAlumno(ctx context.Context, claseID, alumnoID string) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO clase_alumnos (clase_id, alumno_id)
		VALUES ($1, $2)
		ON CONFLICT (clase_id, alumno_id) DO NOTHING
	`, claseID, alumnoID)
	if err != nil {
		return err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if inserted > 0 {
		_, err = tx.ExecContext(ctx, `
			UPDATE clases SET num_alumnos = num_alumnos + 1 WHERE id = $1
		`, claseID)
		if err != nil {
			return fmt.Errorf("failed to update num_alumnos: %w", err)
		}
	}

	return tx.Commit()
}

func (r *claseRepository) IsAlumnoInscrito(ctx context.Context, claseID, alumnoID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM clase_alumnos WHERE clase_id = $1 AND alumno_id = $2
		)
	`

	var inscrito bool
	err := r.db.QueryRowContext(ctx, query, claseID, alumnoID).Scan(&inscrito)
	return inscrito, err
}

func (r *claseRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM clases WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
