package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/internal/repository"
)

type InvitacionService interface {
	Enviar(ctx context.Context, actor models.Actor, req *models.EnviarInvitacionRequest) (*models.Invitacion, error)
	Responder(ctx context.Context, actor models.Actor, id, respuesta string) (*models.Invitacion, error)
	ListPendientes(ctx context.Context, actor models.Actor) ([]models.InvitacionConClase, error)
}

type invitacionService struct {
	invitacionRepo repository.InvitacionRepository
	claseRepo      repository.ClaseRepository
	usuarioRepo    repository.UsuarioRepository
	logger         zerolog.Logger
}

func NewInvitacionService(
	invitacionRepo repository.InvitacionRepository,
	claseRepo repository.ClaseRepository,
	usuarioRepo repository.UsuarioRepository,
	logger zerolog.Logger,
) InvitacionService {
	return &invitacionService{
		invitacionRepo: invitacionRepo,
		claseRepo:      claseRepo,
		usuarioRepo:    usuarioRepo,
		logger:         logger,
	}
}

// Enviar crea una invitacion pendiente. Los chequeos previos dan mensajes
// utiles; la garantia real de unicidad es el indice parcial, que convierte
// al perdedor de una carrera de doble invitacion en un conflicto.
func (s *invitacionService) Enviar(ctx context.Context, actor models.Actor, req *models.EnviarInvitacionRequest) (*models.Invitacion, error) {
	clase, err := s.claseRepo.GetByID(ctx, req.ClaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if clase == nil {
		return nil, ErrClaseNoEncontrada
	}
	if clase.ProfesorID != actor.ID {
		return nil, ErrNoPropietario
	}

	alumno, err := s.usuarioRepo.GetByID(ctx, req.AlumnoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if alumno == nil || alumno.Rol != models.RolAlumno {
		return nil, ErrAlumnoNoEncontrado
	}

	inscrito, err := s.claseRepo.IsAlumnoInscrito(ctx, req.ClaseID, req.AlumnoID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if inscrito {
		return nil, ErrYaInscrito
	}

	pendiente, err := s.invitacionRepo.ExistsPendiente(ctx, req.AlumnoID, req.ClaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending invitation: %w", err)
	}
	if pendiente {
		return nil, ErrInvitacionDuplicada
	}

	invitacion := &models.Invitacion{
		ID:        uuid.New().String(),
		AlumnoID:  req.AlumnoID,
		ClaseID:   req.ClaseID,
		Estado:    models.InvitacionPendiente,
		CreatedAt: time.Now(),
	}

	if err := s.invitacionRepo.Create(ctx, invitacion); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrInvitacionDuplicada
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.logger.Info().
		Str("invitacion_id", invitacion.ID).
		Str("alumno_id", req.AlumnoID).
		Str("clase_id", req.ClaseID).
		Msg("Invitation sent")

	return invitacion, nil
}

// Responder acepta o rechaza una invitacion pendiente. Aceptar inscribe al
// alumno en el roster; ambos resultados son terminales.
func (s *invitacionService) Responder(ctx context.Context, actor models.Actor, id, respuesta string) (*models.Invitacion, error) {
	if respuesta != "aceptar" && respuesta != "rechazar" {
		return nil, ErrRespuestaInvalida
	}

	invitacion, err := s.invitacionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	if invitacion == nil {
		return nil, ErrInvitacionNoEncontrada
	}
	if invitacion.AlumnoID != actor.ID {
		return nil, ErrNoDestinatario
	}
	if invitacion.Estado != models.InvitacionPendiente {
		return nil, ErrInvitacionRespondida
	}

	estado := models.InvitacionRechazada
	if respuesta == "aceptar" {
		estado = models.InvitacionAceptada

		if err := s.claseRepo.AddAlumno(ctx, invitacion.ClaseID, invitacion.AlumnoID); err != nil {
			return nil, fmt.Errorf("failed to enroll student: %w", err)
		}
	}

	if err := s.invitacionRepo.UpdateEstado(ctx, id, estado); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	invitacion.Estado = estado
	ahora := time.Now()
	invitacion.RespondidoAt = &ahora

	s.logger.Info().
		Str("invitacion_id", id).
		Str("estado", estado.String()).
		Msg("Invitation answered")

	return invitacion, nil
}

func (s *invitacionService) ListPendientes(ctx context.Context, actor models.Actor) ([]models.InvitacionConClase, error) {
	invitaciones, err := s.invitacionRepo.GetPendientesByAlumno(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending invitations: %w", err)
	}

	return invitaciones, nil
}
