package service_test

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/internal/service"
	"github.com/aulasync/aulasync-server/pkg/joincode"
)

func newClaseService() (service.ClaseService, *mockClaseRepo, *mockUsuarioRepo) {
	claseRepo := new(mockClaseRepo)
	usuarioRepo := new(mockUsuarioRepo)

	svc := service.NewClaseService(claseRepo, usuarioRepo, zerolog.Nop())
	return svc, claseRepo, usuarioRepo
}

func TestCrearClase(t *testing.T) {
	t.Run("crea la clase con codigo de union", func(t *testing.T) {
		svc, claseRepo, _ := newClaseService()

		claseRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Clase")).Return(nil)

		clase, err := svc.Crear(context.Background(), profesor, "Matematicas 2B")
		require.NoError(t, err)
		assert.Equal(t, "Matematicas 2B", clase.Nombre)
		assert.Equal(t, profesor.ID, clase.ProfesorID)
		assert.Len(t, clase.Codigo, joincode.Length)
	})

	t.Run("reintenta ante colision de codigo", func(t *testing.T) {
		svc, claseRepo, _ := newClaseService()

		claseRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Clase")).
			Return(&pq.Error{Code: "23505"}).Once()
		claseRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Clase")).
			Return(nil).Once()

		clase, err := svc.Crear(context.Background(), profesor, "Historia")
		require.NoError(t, err)
		assert.NotEmpty(t, clase.Codigo)
		claseRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("un alumno no crea clases", func(t *testing.T) {
		svc, claseRepo, _ := newClaseService()

		_, err := svc.Crear(context.Background(), alumno, "Mi clase")
		assert.ErrorIs(t, err, service.ErrSoloProfesores)
		claseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUnirseClase(t *testing.T) {
	clase := &models.Clase{ID: "clase-1", Nombre: "Matematicas", Codigo: "ABC234", ProfesorID: profesor.ID, NumAlumnos: 4}

	t.Run("inscribe por codigo", func(t *testing.T) {
		svc, claseRepo, _ := newClaseService()

		claseRepo.On("GetByCodigo", mock.Anything, "ABC234").Return(clase, nil)
		claseRepo.On("IsAlumnoInscrito", mock.Anything, "clase-1", alumno.ID).Return(false, nil)
		claseRepo.On("AddAlumno", mock.Anything, "clase-1", alumno.ID).Return(nil)

		resultado, err := svc.Unirse(context.Background(), alumno, "ABC234")
		require.NoError(t, err)
		assert.Equal(t, 5, resultado.NumAlumnos)
	})

	t.Run("codigo desconocido", func(t *testing.T) {
		svc, claseRepo, _ := newClaseService()

		claseRepo.On("GetByCodigo", mock.Anything, "ZZZZZZ").Return(nil, nil)

		_, err := svc.Unirse(context.Background(), alumno, "ZZZZZZ")
		assert.ErrorIs(t, err, service.ErrClaseNoEncontrada)
	})

	t.Run("el ya inscrito no repite", func(t *testing.T) {
		svc, claseRepo, _ := newClaseService()

		claseRepo.On("GetByCodigo", mock.Anything, "ABC234").Return(clase, nil)
		claseRepo.On("IsAlumnoInscrito", mock.Anything, "clase-1", alumno.ID).Return(true, nil)

		_, err := svc.Unirse(context.Background(), alumno, "ABC234")
		assert.ErrorIs(t, err, service.ErrYaInscrito)
	})

	t.Run("un profesor no se une como alumno", func(t *testing.T) {
		svc, _, _ := newClaseService()

		_, err := svc.Unirse(context.Background(), profesor, "ABC234")
		assert.ErrorIs(t, err, service.ErrSoloAlumnos)
	})
}

func TestGetClase(t *testing.T) {
	clase := &models.Clase{ID: "clase-1", Nombre: "Matematicas", ProfesorID: profesor.ID}

	t.Run("el propietario ve el detalle con roster", func(t *testing.T) {
		svc, claseRepo, usuarioRepo := newClaseService()

		claseRepo.On("GetByID", mock.Anything, "clase-1").Return(clase, nil)
		usuarioRepo.On("GetByID", mock.Anything, profesor.ID).Return(&models.Usuario{ID: profesor.ID, Nombre: "Marta"}, nil)
		claseRepo.On("GetAlumnos", mock.Anything, "clase-1").Return([]models.Usuario{
			{ID: alumno.ID, Nombre: "Pablo"},
		}, nil)

		detalle, err := svc.Get(context.Background(), profesor, "clase-1")
		require.NoError(t, err)
		assert.Equal(t, "Marta", detalle.ProfesorNombre)
		assert.Len(t, detalle.Alumnos, 1)
	})

	t.Run("un tercero no ve la clase", func(t *testing.T) {
		svc, claseRepo, _ := newClaseService()

		claseRepo.On("GetByID", mock.Anything, "clase-1").Return(clase, nil)
		claseRepo.On("IsAlumnoInscrito", mock.Anything, "clase-1", "alum-9").Return(false, nil)

		intruso := models.Actor{ID: "alum-9", Rol: models.RolAlumno}
		_, err := svc.Get(context.Background(), intruso, "clase-1")
		assert.ErrorIs(t, err, service.ErrNoInscrito)
	})
}

func TestEliminarClase(t *testing.T) {
	clase := &models.Clase{ID: "clase-1", ProfesorID: profesor.ID}

	t.Run("el propietario borra", func(t *testing.T) {
		svc, claseRepo, _ := newClaseService()

		claseRepo.On("GetByID", mock.Anything, "clase-1").Return(clase, nil)
		claseRepo.On("Delete", mock.Anything, "clase-1").Return(nil)

		assert.NoError(t, svc.Eliminar(context.Background(), profesor, "clase-1"))
		claseRepo.AssertExpectations(t)
	})

	t.Run("otro profesor no borra", func(t *testing.T) {
		svc, claseRepo, _ := newClaseService()

		otro := models.Actor{ID: "prof-2", Rol: models.RolProfesor}
		claseRepo.On("GetByID", mock.Anything, "clase-1").Return(clase, nil)

		err := svc.Eliminar(context.Background(), otro, "clase-1")
		assert.ErrorIs(t, err, service.ErrNoPropietario)
		claseRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
