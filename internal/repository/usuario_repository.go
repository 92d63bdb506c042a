package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
)

type UsuarioRepository interface {
	Create(ctx context.Context, usuario *models.Usuario) error
	GetByID(ctx context.Context, id string) (*models.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
}

type usuarioRepository struct {
	*PostgresRepository
}

func NewUsuarioRepository(db *sql.DB, logger zerolog.Logger) UsuarioRepository {
	return &usuarioRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	query := `
		INSERT INTO usuarios (id, nombre, email, rol, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		usuario.ID,
		usuario.Nombre,
		usuario.Email,
		usuario.Rol,
		usuario.PasswordHash,
		usuario.CreatedAt,
	)

	return err
}

func (r *usuarioRepository) GetByID(ctx context.Context, id string) (*models.Usuario, error) {
	query := `
		SELECT id, nombre, email, rol, password_hash, created_at
		FROM usuarios
		WHERE id = $1
	`

	usuario := &models.Usuario{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&usuario.ID,
		&usuario.Nombre,
		&usuario.Email,
		&usuario.Rol,
		&usuario.PasswordHash,
		&usuario.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return usuario, err
}

func (r *usuarioRepository) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	query := `
		SELECT id, nombre, email, rol, password_hash, created_at
		FROM usuarios
		WHERE email = $1
	`

	usuario := &models.Usuario{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&usuario.ID,
		&usuario.Nombre,
		&usuario.Email,
		&usuario.Rol,
		&usuario.PasswordHash,
		&usuario.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return usuario, err
}
