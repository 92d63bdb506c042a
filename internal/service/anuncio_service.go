package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/internal/repository"
	"github.com/aulasync/aulasync-server/internal/service/integration"
)

type AnuncioService interface {
	Crear(ctx context.Context, actor models.Actor, data *models.CrearAnuncioData, archivo *models.ArchivoSubido) (*models.CrearAnuncioResponse, error)
	ListParaProfesor(ctx context.Context, actor models.Actor, claseID string) (*models.AnunciosProfesorResponse, error)
	ListParaAlumno(ctx context.Context, actor models.Actor, claseID string) (*models.AnunciosAlumnoResponse, error)
	Eliminar(ctx context.Context, actor models.Actor, id string) error
}

type anuncioService struct {
	anuncioRepo    repository.AnuncioRepository
	claseRepo      repository.ClaseRepository
	entregaRepo    repository.EntregaRepository
	archivoService ArchivoService
	events         integration.EventPublisher
	logger         zerolog.Logger
}

func NewAnuncioService(
	anuncioRepo repository.AnuncioRepository,
	claseRepo repository.ClaseRepository,
	entregaRepo repository.EntregaRepository,
	archivoService ArchivoService,
	events integration.EventPublisher,
	logger zerolog.Logger,
) AnuncioService {
	return &anuncioService{
		anuncioRepo:    anuncioRepo,
		claseRepo:      claseRepo,
		entregaRepo:    entregaRepo,
		archivoService: archivoService,
		events:         events,
		logger:         logger,
	}
}

func (s *anuncioService) Crear(ctx context.Context, actor models.Actor, data *models.CrearAnuncioData, archivo *models.ArchivoSubido) (*models.CrearAnuncioResponse, error) {
	clase, err := s.claseRepo.GetByID(ctx, data.ClaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if clase == nil {
		return nil, ErrClaseNoEncontrada
	}
	if clase.ProfesorID != actor.ID {
		return nil, ErrNoPropietario
	}

	if !models.IsValidTipoAnuncio(data.Tipo) {
		return nil, ErrTipoAnuncioInvalido
	}

	tipo := models.TipoAnuncio(data.Tipo)
	if tipo == models.TipoAnuncioTarea && data.Titulo == "" {
		return nil, ErrTituloRequerido
	}

	anuncio := &models.Anuncio{
		ID:        uuid.New().String(),
		ClaseID:   clase.ID,
		AutorID:   actor.ID,
		Tipo:      tipo,
		Contenido: data.Contenido,
		CreatedAt: time.Now(),
	}

	if tipo == models.TipoAnuncioTarea {
		titulo := data.Titulo
		anuncio.Titulo = &titulo
		anuncio.FechaEntrega = data.FechaEntrega
	}

	var archivoURL *string
	if archivo != nil {
		registro, err := s.archivoService.Subir(ctx, archivo)
		if err != nil {
			return nil, err
		}
		anuncio.ArchivoID = &registro.ID
		url := s.archivoService.URL(registro.ID)
		archivoURL = &url
	}

	if err := s.anuncioRepo.Create(ctx, anuncio); err != nil {
		if anuncio.ArchivoID != nil {
			if delErr := s.archivoService.Eliminar(ctx, *anuncio.ArchivoID); delErr != nil {
				s.logger.Error().Err(delErr).Msg("Failed to clean up attachment")
			}
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info().
		Str("anuncio_id", anuncio.ID).
		Str("clase_id", clase.ID).
		Str("tipo", tipo.String()).
		Msg("Post created")

	if tipo == models.TipoAnuncioTarea && s.events != nil {
		event := &models.TareaPublicadaEvent{
			TareaID:   anuncio.ID,
			ClaseID:   clase.ID,
			Titulo:    data.Titulo,
			Timestamp: time.Now().Unix(),
		}
		if anuncio.FechaEntrega != nil {
			fe := anuncio.FechaEntrega.Unix()
			event.FechaEntrega = &fe
		}

		if err := s.events.PublishTareaPublicada(ctx, event); err != nil {
			s.logger.Error().Err(err).Msg("Failed to publish tarea publicada event")
		}
	}

	return &models.CrearAnuncioResponse{
		ID:         anuncio.ID,
		ArchivoURL: archivoURL,
	}, nil
}

func (s *anuncioService) ListParaProfesor(ctx context.Context, actor models.Actor, claseID string) (*models.AnunciosProfesorResponse, error) {
	clase, err := s.claseRepo.GetByID(ctx, claseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if clase == nil {
		return nil, ErrClaseNoEncontrada
	}
	if clase.ProfesorID != actor.ID {
		return nil, ErrNoPropietario
	}

	anuncios, err := s.anuncioRepo.GetByClaseID(ctx, claseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	stats, err := s.anuncioRepo.GetStatsByClase(ctx, claseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission stats: %w", err)
	}

	statsPorTarea := make(map[string]models.TareaStats, len(stats))
	for _, st := range stats {
		statsPorTarea[st.AnuncioID] = st
	}

	ahora := time.Now()
	views := make([]models.AnuncioProfesorView, 0, len(anuncios))
	for _, anuncio := range anuncios {
		view := models.AnuncioProfesorView{
			Anuncio:    anuncio,
			ArchivoURL: s.archivoURL(anuncio.ArchivoID),
		}

		if anuncio.EsTarea() {
			st := statsPorTarea[anuncio.ID]
			view.EntregasRealizadas = st.TotalEntregas
			view.EntregasPendientes = clase.NumAlumnos - st.TotalEntregas
			view.Estado = models.EstadoParaClase(anuncio.FechaEntrega, clase.NumAlumnos, st.TotalEntregas, st.Calificadas, ahora)
		}

		views = append(views, view)
	}

	return &models.AnunciosProfesorResponse{Anuncios: views}, nil
}

func (s *anuncioService) ListParaAlumno(ctx context.Context, actor models.Actor, claseID string) (*models.AnunciosAlumnoResponse, error) {
	clase, err := s.claseRepo.GetByID(ctx, claseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if clase == nil {
		return nil, ErrClaseNoEncontrada
	}

	inscrito, err := s.claseRepo.IsAlumnoInscrito(ctx, claseID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !inscrito {
		return nil, ErrNoInscrito
	}

	anuncios, err := s.anuncioRepo.GetByClaseID(ctx, claseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	ahora := time.Now()
	views := make([]models.AnuncioAlumnoView, 0, len(anuncios))
	for _, anuncio := range anuncios {
		view := models.AnuncioAlumnoView{
			Anuncio:    anuncio,
			ArchivoURL: s.archivoURL(anuncio.ArchivoID),
		}

		if anuncio.EsTarea() {
			entrega, err := s.entregaRepo.GetByAnuncioYAlumno(ctx, anuncio.ID, actor.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to get submission: %w", err)
			}
			view.Entrega = entrega
			view.Estado = models.EstadoParaAlumno(anuncio.FechaEntrega, entrega, ahora)
		}

		views = append(views, view)
	}

	return &models.AnunciosAlumnoResponse{Anuncios: views}, nil
}

// Eliminar borra el anuncio; las entregas asociadas caen por el cascade de
// la clave foranea y sus adjuntos se retiran del almacen. Politica
// explicita: borrar una tarea calificada elimina tambien sus entregas.
func (s *anuncioService) Eliminar(ctx context.Context, actor models.Actor, id string) error {
	anuncio, err := s.anuncioRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if anuncio == nil {
		return ErrAnuncioNoEncontrado
	}

	clase, err := s.claseRepo.GetByID(ctx, anuncio.ClaseID)
	if err != nil {
		return fmt.Errorf("failed to get class: %w", err)
	}
	if clase == nil || clase.ProfesorID != actor.ID {
		return ErrNoPropietario
	}

	archivos, err := s.anuncioRepo.GetEntregaArchivos(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list submission attachments: %w", err)
	}
	if anuncio.ArchivoID != nil {
		archivos = append(archivos, *anuncio.ArchivoID)
	}

	if err := s.anuncioRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	for _, archivoID := range archivos {
		if err := s.archivoService.Eliminar(ctx, archivoID); err != nil {
			s.logger.Error().Err(err).Str("archivo_id", archivoID).Msg("Failed to delete attachment")
		}
	}

	s.logger.Info().
		Str("anuncio_id", id).
		Str("clase_id", anuncio.ClaseID).
		Msg("Post deleted")

	return nil
}

func (s *anuncioService) archivoURL(archivoID *string) *string {
	if archivoID == nil {
		return nil
	}
	url := s.archivoService.URL(*archivoID)
	return &url
}
