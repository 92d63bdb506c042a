package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/internal/repository"
)

type NotificacionService interface {
	Feed(ctx context.Context, actor models.Actor) (*models.NotificacionesResponse, error)
	MarcarLeida(ctx context.Context, actor models.Actor, req *models.MarcarLeidaRequest) error
}

type notificacionService struct {
	notificacionRepo repository.NotificacionRepository
	logger           zerolog.Logger
}

func NewNotificacionService(
	notificacionRepo repository.NotificacionRepository,
	logger zerolog.Logger,
) NotificacionService {
	return &notificacionService{
		notificacionRepo: notificacionRepo,
		logger:           logger,
	}
}

// Feed compone la vista de notificaciones del alumno: invitaciones
// pendientes, tareas publicadas y entregas calificadas, descontando las ya
// leidas. Todo derivado de las tablas de dominio, nada persistido aparte.
func (s *notificacionService) Feed(ctx context.Context, actor models.Actor) (*models.NotificacionesResponse, error) {
	notificaciones := make([]models.Notificacion, 0)

	invitaciones, err := s.notificacionRepo.GetInvitacionesNoLeidas(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation notifications: %w", err)
	}
	notificaciones = append(notificaciones, invitaciones...)

	tareas, err := s.notificacionRepo.GetTareasNoLeidas(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task notifications: %w", err)
	}
	notificaciones = append(notificaciones, tareas...)

	calificaciones, err := s.notificacionRepo.GetCalificacionesNoLeidas(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get grade notifications: %w", err)
	}
	notificaciones = append(notificaciones, calificaciones...)

	return &models.NotificacionesResponse{
		Notificaciones: notificaciones,
		Total:          len(notificaciones),
	}, nil
}

// MarcarLeida retira una notificacion del conjunto no leido del alumno.
// No toca los registros subyacentes; marcar dos veces es inocuo.
func (s *notificacionService) MarcarLeida(ctx context.Context, actor models.Actor, req *models.MarcarLeidaRequest) error {
	if !models.IsValidTipoNotificacion(req.Tipo) {
		return ErrTipoNotificacionInvalido
	}

	if err := s.notificacionRepo.MarcarLeida(ctx, actor.ID, models.TipoNotificacion(req.Tipo), req.RefID); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	return nil
}
