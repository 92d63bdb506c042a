package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/internal/repository"
	"github.com/aulasync/aulasync-server/internal/service/integration"
)

type EntregaService interface {
	Entregar(ctx context.Context, actor models.Actor, tareaID, comentario string, archivo *models.ArchivoSubido) (*models.Entrega, error)
	Calificar(ctx context.Context, actor models.Actor, entregaID string, req *models.CalificarRequest) (*models.Entrega, error)
	ListByTarea(ctx context.Context, actor models.Actor, tareaID string) (*models.EntregasTareaResponse, error)
	VistaAlumno(ctx context.Context, actor models.Actor) (*models.TareasAlumnoResponse, error)
}

type entregaService struct {
	entregaRepo    repository.EntregaRepository
	anuncioRepo    repository.AnuncioRepository
	claseRepo      repository.ClaseRepository
	archivoService ArchivoService
	events         integration.EventPublisher
	rejectLate     bool
	logger         zerolog.Logger
}

func NewEntregaService(
	entregaRepo repository.EntregaRepository,
	anuncioRepo repository.AnuncioRepository,
	claseRepo repository.ClaseRepository,
	archivoService ArchivoService,
	events integration.EventPublisher,
	rejectLate bool,
	logger zerolog.Logger,
) EntregaService {
	return &entregaService{
		entregaRepo:    entregaRepo,
		anuncioRepo:    anuncioRepo,
		claseRepo:      claseRepo,
		archivoService: archivoService,
		events:         events,
		rejectLate:     rejectLate,
		logger:         logger,
	}
}

// Entregar crea o reemplaza la entrega del alumno para la tarea. La
// escritura es un upsert atomico sobre (tarea, alumno): reenviar actualiza,
// nunca duplica.
func (s *entregaService) Entregar(ctx context.Context, actor models.Actor, tareaID, comentario string, archivo *models.ArchivoSubido) (*models.Entrega, error) {
	anuncio, err := s.anuncioRepo.GetByID(ctx, tareaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if anuncio == nil || !anuncio.EsTarea() {
		return nil, ErrTareaNoEncontrada
	}

	inscrito, err := s.claseRepo.IsAlumnoInscrito(ctx, anuncio.ClaseID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !inscrito {
		return nil, ErrNoInscrito
	}

	ahora := time.Now()
	if anuncio.FechaEntrega != nil && anuncio.FechaEntrega.Before(ahora) {
		if s.rejectLate {
			return nil, ErrEntregaFueraDePlazo
		}
		s.logger.Warn().
			Str("tarea_id", tareaID).
			Str("alumno_id", actor.ID).
			Time("fecha_entrega", *anuncio.FechaEntrega).
			Msg("Late submission accepted")
	}

	entrega := &models.Entrega{
		ID:            uuid.New().String(),
		AnuncioID:     tareaID,
		AlumnoID:      actor.ID,
		EntregadoAt:   ahora,
		ActualizadoAt: ahora,
	}

	if comentario != "" {
		entrega.Comentario = &comentario
	}

	if archivo != nil {
		registro, err := s.archivoService.Subir(ctx, archivo)
		if err != nil {
			return nil, err
		}
		entrega.ArchivoID = &registro.ID
	}

	if err := s.entregaRepo.Upsert(ctx, entrega); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	s.logger.Info().
		Str("entrega_id", entrega.ID).
		Str("tarea_id", tareaID).
		Str("alumno_id", actor.ID).
		Msg("Submission saved")

	return entrega, nil
}

// Calificar fija nota y comentario de correccion. La validacion del rango
// es de servidor: fuera de [0,10] o con mas de un decimal se rechaza, no
// se recorta. Repetir la misma calificacion sobrescribe en el sitio.
func (s *entregaService) Calificar(ctx context.Context, actor models.Actor, entregaID string, req *models.CalificarRequest) (*models.Entrega, error) {
	if req.Nota == nil || !notaValida(*req.Nota) {
		return nil, ErrNotaInvalida
	}

	entrega, err := s.entregaRepo.GetByID(ctx, entregaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if entrega == nil {
		return nil, ErrEntregaNoEncontrada
	}

	anuncio, err := s.anuncioRepo.GetByID(ctx, entrega.AnuncioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if anuncio == nil {
		return nil, ErrTareaNoEncontrada
	}

	clase, err := s.claseRepo.GetByID(ctx, anuncio.ClaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if clase == nil || clase.ProfesorID != actor.ID {
		return nil, ErrNoPropietario
	}

	var comentario *string
	if req.ComentarioCorreccion != "" {
		comentario = &req.ComentarioCorreccion
	}

	if err := s.entregaRepo.SetNota(ctx, entregaID, *req.Nota, comentario); err != nil {
		return nil, fmt.Errorf("failed to set grade: %w", err)
	}

	entrega.Nota = req.Nota
	entrega.ComentarioCorreccion = comentario
	entrega.ActualizadoAt = time.Now()

	s.logger.Info().
		Str("entrega_id", entregaID).
		Float64("nota", *req.Nota).
		Msg("Submission graded")

	if s.events != nil {
		event := &models.EntregaCalificadaEvent{
			EntregaID: entregaID,
			TareaID:   entrega.AnuncioID,
			AlumnoID:  entrega.AlumnoID,
			Nota:      *req.Nota,
			Timestamp: time.Now().Unix(),
		}
		if err := s.events.PublishEntregaCalificada(ctx, event); err != nil {
			s.logger.Error().Err(err).Msg("Failed to publish entrega calificada event")
		}
	}

	return entrega, nil
}

func (s *entregaService) ListByTarea(ctx context.Context, actor models.Actor, tareaID string) (*models.EntregasTareaResponse, error) {
	anuncio, err := s.anuncioRepo.GetByID(ctx, tareaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if anuncio == nil || !anuncio.EsTarea() {
		return nil, ErrTareaNoEncontrada
	}

	clase, err := s.claseRepo.GetByID(ctx, anuncio.ClaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if clase == nil || clase.ProfesorID != actor.ID {
		return nil, ErrNoPropietario
	}

	entregas, err := s.entregaRepo.GetByAnuncioID(ctx, tareaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}

	alumnos, err := s.claseRepo.GetAlumnos(ctx, anuncio.ClaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	entregados := make(map[string]struct{}, len(entregas))
	for _, e := range entregas {
		entregados[e.AlumnoID] = struct{}{}
	}

	pendientes := make([]models.AlumnoSinEntregar, 0)
	for _, alumno := range alumnos {
		if _, ok := entregados[alumno.ID]; !ok {
			pendientes = append(pendientes, models.AlumnoSinEntregar{
				AlumnoID:     alumno.ID,
				AlumnoNombre: alumno.Nombre,
				AlumnoEmail:  alumno.Email,
			})
		}
	}

	return &models.EntregasTareaResponse{
		Entregas:   entregas,
		Pendientes: pendientes,
		Total:      len(entregas),
	}, nil
}

func (s *entregaService) VistaAlumno(ctx context.Context, actor models.Actor) (*models.TareasAlumnoResponse, error) {
	tareas, err := s.anuncioRepo.GetTareasDeAlumno(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}

	ahora := time.Now()
	views := make([]models.TareaAlumnoView, 0, len(tareas))
	for _, tarea := range tareas {
		view := models.TareaAlumnoView{
			TareaID:      tarea.ID,
			ClaseID:      tarea.ClaseID,
			ClaseNombre:  tarea.ClaseNombre,
			Contenido:    tarea.Contenido,
			FechaEntrega: tarea.FechaEntrega,
			Estado:       models.EstadoParaAlumno(tarea.FechaEntrega, tarea.Entrega, ahora),
		}

		if tarea.Titulo != nil {
			view.Titulo = *tarea.Titulo
		}
		if tarea.Entrega != nil {
			view.Nota = tarea.Entrega.Nota
			view.ComentarioCorreccion = tarea.Entrega.ComentarioCorreccion
		}
		if tarea.ArchivoID != nil {
			url := s.archivoService.URL(*tarea.ArchivoID)
			view.ArchivoURL = &url
		}

		views = append(views, view)
	}

	return &models.TareasAlumnoResponse{
		Tareas: views,
		Total:  len(views),
	}, nil
}

// notaValida acepta valores en [0,10] con granularidad de un decimal.
func notaValida(nota float64) bool {
	if nota < 0 || nota > 10 {
		return false
	}
	decimas := nota * 10
	return math.Abs(decimas-math.Round(decimas)) < 1e-9
}
