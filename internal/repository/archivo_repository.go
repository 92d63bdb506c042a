package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
)

type ArchivoRepository interface {
	Create(ctx context.Context, archivo *models.Archivo) error
	GetByID(ctx context.Context, id string) (*models.Archivo, error)
	Delete(ctx context.Context, id string) error
}

type archivoRepository struct {
	*PostgresRepository
}

func NewArchivoRepository(db *sql.DB, logger zerolog.Logger) ArchivoRepository {
	return &archivoRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *archivoRepository) Create(ctx context.Context, archivo *models.Archivo) error {
	query := `
		INSERT INTO archivos (id, nombre_original, clave, tamano, content_type, subido_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		archivo.ID,
		archivo.NombreOriginal,
		archivo.Clave,
		archivo.Tamano,
		archivo.ContentType,
		archivo.SubidoAt,
	)

	return err
}

func (r *archivoRepository) GetByID(ctx context.Context, id string) (*models.Archivo, error) {
	query := `
		SELECT id, nombre_original, clave, tamano, content_type, subido_at
		FROM archivos
		WHERE id = $1
	`

	archivo := &models.Archivo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&archivo.ID,
		&archivo.NombreOriginal,
		&archivo.Clave,
		&archivo.Tamano,
		&archivo.ContentType,
		&archivo.SubidoAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return archivo, err
}

func (r *archivoRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM archivos WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
