package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/internal/repository"
	"github.com/aulasync/aulasync-server/pkg/joincode"
)

const maxIntentosCodigo = 5

type ClaseService interface {
	Crear(ctx context.Context, actor models.Actor, nombre string) (*models.Clase, error)
	ListDeProfesor(ctx context.Context, actor models.Actor) ([]models.Clase, error)
	ListDeAlumno(ctx context.Context, actor models.Actor) ([]models.ClaseConProfesor, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.ClaseDetalle, error)
	Unirse(ctx context.Context, actor models.Actor, codigo string) (*models.Clase, error)
	Eliminar(ctx context.Context, actor models.Actor, id string) error
}

type claseService struct {
	claseRepo   repository.ClaseRepository
	usuarioRepo repository.UsuarioRepository
	logger      zerolog.Logger
}

func NewClaseService(
	claseRepo repository.ClaseRepository,
	usuarioRepo repository.UsuarioRepository,
	logger zerolog.Logger,
) ClaseService {
	return &claseService{
		claseRepo:   claseRepo,
		usuarioRepo: usuarioRepo,
		logger:      logger,
	}
}

func (s *claseService) Crear(ctx context.Context, actor models.Actor, nombre string) (*models.Clase, error) {
	if !actor.EsProfesor() {
		return nil, ErrSoloProfesores
	}

	clase := &models.Clase{
		ID:         uuid.New().String(),
		Nombre:     nombre,
		ProfesorID: actor.ID,
		CreatedAt:  time.Now(),
	}

	// El codigo es corto, una colision es improbable pero posible: se
	// reintenta con uno nuevo hasta agotar intentos.
	var err error
	for intento := 0; intento < maxIntentosCodigo; intento++ {
		clase.Codigo, err = joincode.New()
		if err != nil {
			return nil, err
		}

		err = s.claseRepo.Create(ctx, clase)
		if err == nil {
			break
		}
		if !repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create class: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to allocate join code: %w", err)
	}

	s.logger.Info().
		Str("clase_id", clase.ID).
		Str("codigo", clase.Codigo).
		Msg("Class created")

	return clase, nil
}

func (s *claseService) ListDeProfesor(ctx context.Context, actor models.Actor) ([]models.Clase, error) {
	clases, err := s.claseRepo.GetByProfesorID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get classes: %w", err)
	}

	return clases, nil
}

func (s *claseService) ListDeAlumno(ctx context.Context, actor models.Actor) ([]models.ClaseConProfesor, error) {
	clases, err := s.claseRepo.GetByAlumnoID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get classes: %w", err)
	}

	return clases, nil
}

func (s *claseService) Get(ctx context.Context, actor models.Actor, id string) (*models.ClaseDetalle, error) {
	clase, err := s.claseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if clase == nil {
		return nil, ErrClaseNoEncontrada
	}

	if clase.ProfesorID != actor.ID {
		inscrito, err := s.claseRepo.IsAlumnoInscrito(ctx, id, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !inscrito {
			return nil, ErrNoInscrito
		}
	}

	profesor, err := s.usuarioRepo.GetByID(ctx, clase.ProfesorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}

	alumnos, err := s.claseRepo.GetAlumnos(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	detalle := &models.ClaseDetalle{
		ClaseConProfesor: models.ClaseConProfesor{Clase: *clase},
		Alumnos:          alumnos,
	}
	if profesor != nil {
		detalle.ProfesorNombre = profesor.Nombre
	}

	return detalle, nil
}

func (s *claseService) Unirse(ctx context.Context, actor models.Actor, codigo string) (*models.Clase, error) {
	if !actor.EsAlumno() {
		return nil, ErrSoloAlumnos
	}

	clase, err := s.claseRepo.GetByCodigo(ctx, codigo)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if clase == nil {
		return nil, ErrClaseNoEncontrada
	}

	inscrito, err := s.claseRepo.IsAlumnoInscrito(ctx, clase.ID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if inscrito {
		return nil, ErrYaInscrito
	}

	if err := s.claseRepo.AddAlumno(ctx, clase.ID, actor.ID); err != nil {
		return nil, fmt.Errorf("failed to enroll student: %w", err)
	}

	s.logger.Info().
		Str("clase_id", clase.ID).
		Str("alumno_id", actor.ID).
		Msg("Student joined class")

	clase.NumAlumnos++
	return clase, nil
}

func (s *claseService) Eliminar(ctx context.Context, actor models.Actor, id string) error {
	clase, err := s.claseRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get class: %w", err)
	}
	if clase == nil {
		return ErrClaseNoEncontrada
	}
	if clase.ProfesorID != actor.ID {
		return ErrNoPropietario
	}

	if err := s.claseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}

	s.logger.Info().
		Str("clase_id", id).
		Msg("Class deleted")

	return nil
}
