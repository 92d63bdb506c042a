package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/internal/repository"
	"github.com/aulasync/aulasync-server/internal/storage"
)

type ArchivoService interface {
	Subir(ctx context.Context, subido *models.ArchivoSubido) (*models.Archivo, error)
	Descargar(ctx context.Context, id string) (*models.ArchivoDescarga, error)
	Eliminar(ctx context.Context, id string) error
	URL(id string) string
}

type archivoService struct {
	archivoRepo repository.ArchivoRepository
	storage     storage.ObjectStorage
	logger      zerolog.Logger
}

func NewArchivoService(
	archivoRepo repository.ArchivoRepository,
	objectStorage storage.ObjectStorage,
	logger zerolog.Logger,
) ArchivoService {
	return &archivoService{
		archivoRepo: archivoRepo,
		storage:     objectStorage,
		logger:      logger,
	}
}

func (s *archivoService) Subir(ctx context.Context, subido *models.ArchivoSubido) (*models.Archivo, error) {
	archivo := &models.Archivo{
		ID:             uuid.New().String(),
		NombreOriginal: subido.Nombre,
		Clave:          claveUnica(subido.Nombre),
		Tamano:         int64(len(subido.Contenido)),
		ContentType:    subido.ContentType,
		SubidoAt:       time.Now(),
	}

	if err := s.storage.Put(ctx, archivo.Clave, subido.Contenido, subido.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	if err := s.archivoRepo.Create(ctx, archivo); err != nil {
		// El registro fallo: el objeto queda sin referenciar, se retira.
		if delErr := s.storage.Delete(ctx, archivo.Clave); delErr != nil {
			s.logger.Error().Err(delErr).Str("clave", archivo.Clave).Msg("Failed to clean up orphan object")
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	s.logger.Info().
		Str("archivo_id", archivo.ID).
		Str("nombre", archivo.NombreOriginal).
		Int64("tamano", archivo.Tamano).
		Msg("File uploaded")

	return archivo, nil
}

func (s *archivoService) Descargar(ctx context.Context, id string) (*models.ArchivoDescarga, error) {
	archivo, err := s.archivoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get file record: %w", err)
	}
	if archivo == nil {
		return nil, ErrArchivoNoEncontrado
	}

	contenido, err := s.storage.Get(ctx, archivo.Clave)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return &models.ArchivoDescarga{
		Nombre:      archivo.NombreOriginal,
		ContentType: archivo.ContentType,
		Tamano:      archivo.Tamano,
		Contenido:   contenido,
	}, nil
}

func (s *archivoService) Eliminar(ctx context.Context, id string) error {
	archivo, err := s.archivoRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get file record: %w", err)
	}
	if archivo == nil {
		return nil
	}

	if err := s.storage.Delete(ctx, archivo.Clave); err != nil {
		s.logger.Error().Err(err).Str("clave", archivo.Clave).Msg("Failed to delete object")
	}

	return s.archivoRepo.Delete(ctx, id)
}

func (s *archivoService) URL(id string) string {
	return "/api/archivos/" + id
}

// claveUnica construye la clave de objeto a partir del nombre original con
// un sufijo aleatorio, de modo que dos subidas del mismo fichero nunca
// colisionen.
func claveUnica(nombre string) string {
	ext := filepath.Ext(nombre)
	base := strings.TrimSuffix(filepath.Base(nombre), ext)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, base)

	sufijo := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s_%s%s", base, sufijo, ext)
}
