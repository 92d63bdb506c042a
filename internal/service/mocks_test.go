package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aulasync/aulasync-server/internal/models"
)

// Dobles de los repositorios y colaboradores, escritos a mano sobre
// testify/mock.

type mockClaseRepo struct{ mock.Mock }

func (m *mockClaseRepo) Create(ctx context.Context, clase *models.Clase) error {
	return m.Called(ctx, clase).Error(0)
}

func (m *mockClaseRepo) GetByID(ctx context.Context, id string) (*models.Clase, error) {
	args := m.Called(ctx, id)
	clase, _ := args.Get(0).(*models.Clase)
	return clase, args.Error(1)
}

func (m *mockClaseRepo) GetByCodigo(ctx context.Context, codigo string) (*models.Clase, error) {
	args := m.Called(ctx, codigo)
	clase, _ := args.Get(0).(*models.Clase)
	return clase, args.Error(1)
}

func (m *mockClaseRepo) GetByProfesorID(ctx context.Context, profesorID string) ([]models.Clase, error) {
	args := m.Called(ctx, profesorID)
	clases, _ := args.Get(0).([]models.Clase)
	return clases, args.Error(1)
}

func (m *mockClaseRepo) GetByAlumnoID(ctx context.Context, alumnoID string) ([]models.ClaseConProfesor, error) {
	args := m.Called(ctx, alumnoID)
	clases, _ := args.Get(0).([]models.ClaseConProfesor)
	return clases, args.Error(1)
}

func (m *mockClaseRepo) GetAlumnos(ctx context.Context, claseID string) ([]models.Usuario, error) {
	args := m.Called(ctx, claseID)
	alumnos, _ := args.Get(0).([]models.Usuario)
	return alumnos, args.Error(1)
}

func (m *mockClaseRepo) AddAlumno(ctx context.Context, claseID, alumnoID string) error {
	return m.Called(ctx, claseID, alumnoID).Error(0)
}

func (m *mockClaseRepo) IsAlumnoInscrito(ctx context.Context, claseID, alumnoID string) (bool, error) {
	args := m.Called(ctx, claseID, alumnoID)
	return args.Bool(0), args.Error(1)
}

func (m *mockClaseRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockAnuncioRepo struct{ mock.Mock }

func (m *mockAnuncioRepo) Create(ctx context.Context, anuncio *models.Anuncio) error {
	return m.Called(ctx, anuncio).Error(0)
}

func (m *mockAnuncioRepo) GetByID(ctx context.Context, id string) (*models.Anuncio, error) {
	args := m.Called(ctx, id)
	anuncio, _ := args.Get(0).(*models.Anuncio)
	return anuncio, args.Error(1)
}

func (m *mockAnuncioRepo) GetByClaseID(ctx context.Context, claseID string) ([]models.Anuncio, error) {
	args := m.Called(ctx, claseID)
	anuncios, _ := args.Get(0).([]models.Anuncio)
	return anuncios, args.Error(1)
}

func (m *mockAnuncioRepo) GetStatsByClase(ctx context.Context, claseID string) ([]models.TareaStats, error) {
	args := m.Called(ctx, claseID)
	stats, _ := args.Get(0).([]models.TareaStats)
	return stats, args.Error(1)
}

func (m *mockAnuncioRepo) GetTareasDeAlumno(ctx context.Context, alumnoID string) ([]models.TareaDeAlumno, error) {
	args := m.Called(ctx, alumnoID)
	tareas, _ := args.Get(0).([]models.TareaDeAlumno)
	return tareas, args.Error(1)
}

func (m *mockAnuncioRepo) GetEntregaArchivos(ctx context.Context, anuncioID string) ([]string, error) {
	args := m.Called(ctx, anuncioID)
	archivos, _ := args.Get(0).([]string)
	return archivos, args.Error(1)
}

func (m *mockAnuncioRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockEntregaRepo struct{ mock.Mock }

func (m *mockEntregaRepo) Upsert(ctx context.Context, entrega *models.Entrega) error {
	return m.Called(ctx, entrega).Error(0)
}

func (m *mockEntregaRepo) GetByID(ctx context.Context, id string) (*models.Entrega, error) {
	args := m.Called(ctx, id)
	entrega, _ := args.Get(0).(*models.Entrega)
	return entrega, args.Error(1)
}

func (m *mockEntregaRepo) GetByAnuncioYAlumno(ctx context.Context, anuncioID, alumnoID string) (*models.Entrega, error) {
	args := m.Called(ctx, anuncioID, alumnoID)
	entrega, _ := args.Get(0).(*models.Entrega)
	return entrega, args.Error(1)
}

func (m *mockEntregaRepo) GetByAnuncioID(ctx context.Context, anuncioID string) ([]models.EntregaConAlumno, error) {
	args := m.Called(ctx, anuncioID)
	entregas, _ := args.Get(0).([]models.EntregaConAlumno)
	return entregas, args.Error(1)
}

func (m *mockEntregaRepo) SetNota(ctx context.Context, id string, nota float64, comentario *string) error {
	return m.Called(ctx, id, nota, comentario).Error(0)
}

type mockInvitacionRepo struct{ mock.Mock }

func (m *mockInvitacionRepo) Create(ctx context.Context, invitacion *models.Invitacion) error {
	return m.Called(ctx, invitacion).Error(0)
}

func (m *mockInvitacionRepo) GetByID(ctx context.Context, id string) (*models.Invitacion, error) {
	args := m.Called(ctx, id)
	invitacion, _ := args.Get(0).(*models.Invitacion)
	return invitacion, args.Error(1)
}

func (m *mockInvitacionRepo) GetPendientesByAlumno(ctx context.Context, alumnoID string) ([]models.InvitacionConClase, error) {
	args := m.Called(ctx, alumnoID)
	invitaciones, _ := args.Get(0).([]models.InvitacionConClase)
	return invitaciones, args.Error(1)
}

func (m *mockInvitacionRepo) ExistsPendiente(ctx context.Context, alumnoID, claseID string) (bool, error) {
	args := m.Called(ctx, alumnoID, claseID)
	return args.Bool(0), args.Error(1)
}

func (m *mockInvitacionRepo) UpdateEstado(ctx context.Context, id string, estado models.EstadoInvitacion) error {
	return m.Called(ctx, id, estado).Error(0)
}

type mockUsuarioRepo struct{ mock.Mock }

func (m *mockUsuarioRepo) Create(ctx context.Context, usuario *models.Usuario) error {
	return m.Called(ctx, usuario).Error(0)
}

func (m *mockUsuarioRepo) GetByID(ctx context.Context, id string) (*models.Usuario, error) {
	args := m.Called(ctx, id)
	usuario, _ := args.Get(0).(*models.Usuario)
	return usuario, args.Error(1)
}

func (m *mockUsuarioRepo) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	args := m.Called(ctx, email)
	usuario, _ := args.Get(0).(*models.Usuario)
	return usuario, args.Error(1)
}

type mockArchivoRepo struct{ mock.Mock }

func (m *mockArchivoRepo) Create(ctx context.Context, archivo *models.Archivo) error {
	return m.Called(ctx, archivo).Error(0)
}

func (m *mockArchivoRepo) GetByID(ctx context.Context, id string) (*models.Archivo, error) {
	args := m.Called(ctx, id)
	archivo, _ := args.Get(0).(*models.Archivo)
	return archivo, args.Error(1)
}

func (m *mockArchivoRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockNotificacionRepo struct{ mock.Mock }

func (m *mockNotificacionRepo) GetInvitacionesNoLeidas(ctx context.Context, alumnoID string) ([]models.Notificacion, error) {
	args := m.Called(ctx, alumnoID)
	notificaciones, _ := args.Get(0).([]models.Notificacion)
	return notificaciones, args.Error(1)
}

func (m *mockNotificacionRepo) GetTareasNoLeidas(ctx context.Context, alumnoID string) ([]models.Notificacion, error) {
	args := m.Called(ctx, alumnoID)
	notificaciones, _ := args.Get(0).([]models.Notificacion)
	return notificaciones, args.Error(1)
}

func (m *mockNotificacionRepo) GetCalificacionesNoLeidas(ctx context.Context, alumnoID string) ([]models.Notificacion, error) {
	args := m.Called(ctx, alumnoID)
	notificaciones, _ := args.Get(0).([]models.Notificacion)
	return notificaciones, args.Error(1)
}

func (m *mockNotificacionRepo) MarcarLeida(ctx context.Context, alumnoID string, tipo models.TipoNotificacion, refID string) error {
	return m.Called(ctx, alumnoID, tipo, refID).Error(0)
}

type mockArchivoService struct{ mock.Mock }

func (m *mockArchivoService) Subir(ctx context.Context, subido *models.ArchivoSubido) (*models.Archivo, error) {
	args := m.Called(ctx, subido)
	archivo, _ := args.Get(0).(*models.Archivo)
	return archivo, args.Error(1)
}

func (m *mockArchivoService) Descargar(ctx context.Context, id string) (*models.ArchivoDescarga, error) {
	args := m.Called(ctx, id)
	descarga, _ := args.Get(0).(*models.ArchivoDescarga)
	return descarga, args.Error(1)
}

func (m *mockArchivoService) Eliminar(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockArchivoService) URL(id string) string {
	return "/api/archivos/" + id
}

type mockEventPublisher struct{ mock.Mock }

func (m *mockEventPublisher) PublishTareaPublicada(ctx context.Context, event *models.TareaPublicadaEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventPublisher) PublishEntregaCalificada(ctx context.Context, event *models.EntregaCalificadaEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}
