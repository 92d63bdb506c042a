package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/internal/service"
)

var (
	profesor = models.Actor{ID: "prof-1", Nombre: "Marta", Rol: models.RolProfesor}
	alumno   = models.Actor{ID: "alum-1", Nombre: "Pablo", Rol: models.RolAlumno}
)

func tareaDePrueba(fechaEntrega *time.Time) *models.Anuncio {
	titulo := "Ecuaciones de segundo grado"
	return &models.Anuncio{
		ID:           "tarea-1",
		ClaseID:      "clase-1",
		AutorID:      profesor.ID,
		Tipo:         models.TipoAnuncioTarea,
		Titulo:       &titulo,
		Contenido:    "Resolver los ejercicios 1 a 10",
		FechaEntrega: fechaEntrega,
		CreatedAt:    time.Now().Add(-48 * time.Hour),
	}
}

func newEntregaService(rejectLate bool) (service.EntregaService, *mockEntregaRepo, *mockAnuncioRepo, *mockClaseRepo, *mockEventPublisher) {
	entregaRepo := new(mockEntregaRepo)
	anuncioRepo := new(mockAnuncioRepo)
	claseRepo := new(mockClaseRepo)
	archivos := new(mockArchivoService)
	events := new(mockEventPublisher)

	svc := service.NewEntregaService(entregaRepo, anuncioRepo, claseRepo, archivos, events, rejectLate, zerolog.Nop())
	return svc, entregaRepo, anuncioRepo, claseRepo, events
}

func TestEntregar(t *testing.T) {
	t.Run("crea la entrega del alumno inscrito", func(t *testing.T) {
		svc, entregaRepo, anuncioRepo, claseRepo, _ := newEntregaService(false)

		anuncioRepo.On("GetByID", mock.Anything, "tarea-1").Return(tareaDePrueba(nil), nil)
		claseRepo.On("IsAlumnoInscrito", mock.Anything, "clase-1", alumno.ID).Return(true, nil)
		entregaRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.Entrega")).Return(nil)

		entrega, err := svc.Entregar(context.Background(), alumno, "tarea-1", "mi solucion", nil)
		require.NoError(t, err)
		assert.Equal(t, "tarea-1", entrega.AnuncioID)
		assert.Equal(t, alumno.ID, entrega.AlumnoID)
		require.NotNil(t, entrega.Comentario)
		assert.Equal(t, "mi solucion", *entrega.Comentario)
		assert.Nil(t, entrega.Nota)

		entregaRepo.AssertExpectations(t)
	})

	t.Run("rechaza al alumno no inscrito", func(t *testing.T) {
		svc, entregaRepo, anuncioRepo, claseRepo, _ := newEntregaService(false)

		anuncioRepo.On("GetByID", mock.Anything, "tarea-1").Return(tareaDePrueba(nil), nil)
		claseRepo.On("IsAlumnoInscrito", mock.Anything, "clase-1", alumno.ID).Return(false, nil)

		_, err := svc.Entregar(context.Background(), alumno, "tarea-1", "", nil)
		assert.ErrorIs(t, err, service.ErrNoInscrito)
		entregaRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("un anuncio normal no admite entregas", func(t *testing.T) {
		svc, _, anuncioRepo, _, _ := newEntregaService(false)

		anuncio := tareaDePrueba(nil)
		anuncio.Tipo = models.TipoAnuncioGeneral
		anuncioRepo.On("GetByID", mock.Anything, "tarea-1").Return(anuncio, nil)

		_, err := svc.Entregar(context.Background(), alumno, "tarea-1", "", nil)
		assert.ErrorIs(t, err, service.ErrTareaNoEncontrada)
	})

	t.Run("acepta la entrega tardia por defecto", func(t *testing.T) {
		svc, entregaRepo, anuncioRepo, claseRepo, _ := newEntregaService(false)

		vencida := time.Now().Add(-time.Hour)
		anuncioRepo.On("GetByID", mock.Anything, "tarea-1").Return(tareaDePrueba(&vencida), nil)
		claseRepo.On("IsAlumnoInscrito", mock.Anything, "clase-1", alumno.ID).Return(true, nil)
		entregaRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.Entrega")).Return(nil)

		_, err := svc.Entregar(context.Background(), alumno, "tarea-1", "llego tarde", nil)
		assert.NoError(t, err)
		entregaRepo.AssertExpectations(t)
	})

	t.Run("rechaza la entrega tardia si esta configurado", func(t *testing.T) {
		svc, entregaRepo, anuncioRepo, claseRepo, _ := newEntregaService(true)

		vencida := time.Now().Add(-time.Hour)
		anuncioRepo.On("GetByID", mock.Anything, "tarea-1").Return(tareaDePrueba(&vencida), nil)
		claseRepo.On("IsAlumnoInscrito", mock.Anything, "clase-1", alumno.ID).Return(true, nil)

		_, err := svc.Entregar(context.Background(), alumno, "tarea-1", "", nil)
		assert.ErrorIs(t, err, service.ErrEntregaFueraDePlazo)
		entregaRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestCalificar(t *testing.T) {
	entregaExistente := func() *models.Entrega {
		return &models.Entrega{
			ID:        "entrega-1",
			AnuncioID: "tarea-1",
			AlumnoID:  alumno.ID,
		}
	}

	t.Run("fija nota y comentario", func(t *testing.T) {
		svc, entregaRepo, anuncioRepo, claseRepo, events := newEntregaService(false)

		entregaRepo.On("GetByID", mock.Anything, "entrega-1").Return(entregaExistente(), nil)
		anuncioRepo.On("GetByID", mock.Anything, "tarea-1").Return(tareaDePrueba(nil), nil)
		claseRepo.On("GetByID", mock.Anything, "clase-1").Return(&models.Clase{ID: "clase-1", ProfesorID: profesor.ID}, nil)
		entregaRepo.On("SetNota", mock.Anything, "entrega-1", 8.5, mock.Anything).Return(nil)
		events.On("PublishEntregaCalificada", mock.Anything, mock.AnythingOfType("*models.EntregaCalificadaEvent")).Return(nil)

		nota := 8.5
		entrega, err := svc.Calificar(context.Background(), profesor, "entrega-1", &models.CalificarRequest{
			Nota:                 &nota,
			ComentarioCorreccion: "buen trabajo",
		})
		require.NoError(t, err)
		require.NotNil(t, entrega.Nota)
		assert.Equal(t, 8.5, *entrega.Nota)
		require.NotNil(t, entrega.ComentarioCorreccion)
		assert.Equal(t, "buen trabajo", *entrega.ComentarioCorreccion)

		entregaRepo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("recalificar sobrescribe la nota", func(t *testing.T) {
		svc, entregaRepo, anuncioRepo, claseRepo, events := newEntregaService(false)

		anterior := 5.0
		entrega := entregaExistente()
		entrega.Nota = &anterior

		entregaRepo.On("GetByID", mock.Anything, "entrega-1").Return(entrega, nil)
		anuncioRepo.On("GetByID", mock.Anything, "tarea-1").Return(tareaDePrueba(nil), nil)
		claseRepo.On("GetByID", mock.Anything, "clase-1").Return(&models.Clase{ID: "clase-1", ProfesorID: profesor.ID}, nil)
		entregaRepo.On("SetNota", mock.Anything, "entrega-1", 7.0, mock.Anything).Return(nil)
		events.On("PublishEntregaCalificada", mock.Anything, mock.Anything).Return(nil)

		nota := 7.0
		resultado, err := svc.Calificar(context.Background(), profesor, "entrega-1", &models.CalificarRequest{Nota: &nota})
		require.NoError(t, err)
		assert.Equal(t, 7.0, *resultado.Nota)
	})

	t.Run("rechaza notas fuera de rango o con mas de un decimal", func(t *testing.T) {
		svc, entregaRepo, _, _, _ := newEntregaService(false)

		for _, nota := range []float64{-0.1, 10.1, 8.55, 3.14} {
			n := nota
			_, err := svc.Calificar(context.Background(), profesor, "entrega-1", &models.CalificarRequest{Nota: &n})
			assert.ErrorIs(t, err, service.ErrNotaInvalida, "nota %v", nota)
		}

		entregaRepo.AssertNotCalled(t, "SetNota", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("acepta los extremos del rango", func(t *testing.T) {
		for _, nota := range []float64{0, 10, 9.9, 0.1} {
			svc, entregaRepo, anuncioRepo, claseRepo, events := newEntregaService(false)

			entregaRepo.On("GetByID", mock.Anything, "entrega-1").Return(entregaExistente(), nil)
			anuncioRepo.On("GetByID", mock.Anything, "tarea-1").Return(tareaDePrueba(nil), nil)
			claseRepo.On("GetByID", mock.Anything, "clase-1").Return(&models.Clase{ID: "clase-1", ProfesorID: profesor.ID}, nil)
			entregaRepo.On("SetNota", mock.Anything, "entrega-1", nota, mock.Anything).Return(nil)
			events.On("PublishEntregaCalificada", mock.Anything, mock.Anything).Return(nil)

			n := nota
			_, err := svc.Calificar(context.Background(), profesor, "entrega-1", &models.CalificarRequest{Nota: &n})
			assert.NoError(t, err, "nota %v", nota)
		}
	})

	t.Run("solo el profesor propietario califica", func(t *testing.T) {
		svc, entregaRepo, anuncioRepo, claseRepo, _ := newEntregaService(false)

		otro := models.Actor{ID: "prof-2", Rol: models.RolProfesor}
		entregaRepo.On("GetByID", mock.Anything, "entrega-1").Return(entregaExistente(), nil)
		anuncioRepo.On("GetByID", mock.Anything, "tarea-1").Return(tareaDePrueba(nil), nil)
		claseRepo.On("GetByID", mock.Anything, "clase-1").Return(&models.Clase{ID: "clase-1", ProfesorID: profesor.ID}, nil)

		nota := 6.0
		_, err := svc.Calificar(context.Background(), otro, "entrega-1", &models.CalificarRequest{Nota: &nota})
		assert.ErrorIs(t, err, service.ErrNoPropietario)
		entregaRepo.AssertNotCalled(t, "SetNota", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("entrega inexistente", func(t *testing.T) {
		svc, entregaRepo, _, _, _ := newEntregaService(false)

		entregaRepo.On("GetByID", mock.Anything, "nope").Return(nil, nil)

		nota := 5.0
		_, err := svc.Calificar(context.Background(), profesor, "nope", &models.CalificarRequest{Nota: &nota})
		assert.ErrorIs(t, err, service.ErrEntregaNoEncontrada)
	})
}

func TestListByTarea(t *testing.T) {
	t.Run("separa entregados de pendientes", func(t *testing.T) {
		svc, entregaRepo, anuncioRepo, claseRepo, _ := newEntregaService(false)

		anuncioRepo.On("GetByID", mock.Anything, "tarea-1").Return(tareaDePrueba(nil), nil)
		claseRepo.On("GetByID", mock.Anything, "clase-1").Return(&models.Clase{ID: "clase-1", ProfesorID: profesor.ID, NumAlumnos: 3}, nil)
		entregaRepo.On("GetByAnuncioID", mock.Anything, "tarea-1").Return([]models.EntregaConAlumno{
			{Entrega: models.Entrega{ID: "e-1", AlumnoID: "alum-1"}, AlumnoNombre: "Pablo"},
		}, nil)
		claseRepo.On("GetAlumnos", mock.Anything, "clase-1").Return([]models.Usuario{
			{ID: "alum-1", Nombre: "Pablo", Email: "pablo@aula.es"},
			{ID: "alum-2", Nombre: "Lucia", Email: "lucia@aula.es"},
			{ID: "alum-3", Nombre: "Diego", Email: "diego@aula.es"},
		}, nil)

		resp, err := svc.ListByTarea(context.Background(), profesor, "tarea-1")
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		require.Len(t, resp.Pendientes, 2)
		assert.Equal(t, "alum-2", resp.Pendientes[0].AlumnoID)
		assert.Equal(t, "alum-3", resp.Pendientes[1].AlumnoID)
	})

	t.Run("solo el propietario ve las entregas", func(t *testing.T) {
		svc, _, anuncioRepo, claseRepo, _ := newEntregaService(false)

		otro := models.Actor{ID: "prof-2", Rol: models.RolProfesor}
		anuncioRepo.On("GetByID", mock.Anything, "tarea-1").Return(tareaDePrueba(nil), nil)
		claseRepo.On("GetByID", mock.Anything, "clase-1").Return(&models.Clase{ID: "clase-1", ProfesorID: profesor.ID}, nil)

		_, err := svc.ListByTarea(context.Background(), otro, "tarea-1")
		assert.ErrorIs(t, err, service.ErrNoPropietario)
	})
}

func TestVistaAlumno(t *testing.T) {
	svc, _, anuncioRepo, _, _ := newEntregaService(false)

	vencida := time.Now().Add(-time.Hour)
	abierta := time.Now().Add(24 * time.Hour)
	nota := 9.0
	titulo1, titulo2, titulo3 := "Tema 1", "Tema 2", "Tema 3"

	anuncioRepo.On("GetTareasDeAlumno", mock.Anything, alumno.ID).Return([]models.TareaDeAlumno{
		{
			Anuncio:     models.Anuncio{ID: "t-1", ClaseID: "clase-1", Titulo: &titulo1, FechaEntrega: &abierta},
			ClaseNombre: "Matematicas",
		},
		{
			Anuncio:     models.Anuncio{ID: "t-2", ClaseID: "clase-1", Titulo: &titulo2, FechaEntrega: &vencida},
			ClaseNombre: "Matematicas",
		},
		{
			Anuncio:     models.Anuncio{ID: "t-3", ClaseID: "clase-2", Titulo: &titulo3},
			ClaseNombre: "Historia",
			Entrega:     &models.Entrega{ID: "e-3", Nota: &nota},
		},
	}, nil)

	resp, err := svc.VistaAlumno(context.Background(), alumno)
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	assert.Equal(t, models.EstadoPendiente, resp.Tareas[0].Estado)
	assert.Equal(t, models.EstadoExpirada, resp.Tareas[1].Estado)
	assert.Equal(t, models.EstadoCalificada, resp.Tareas[2].Estado)
	require.NotNil(t, resp.Tareas[2].Nota)
	assert.Equal(t, 9.0, *resp.Tareas[2].Nota)
}
