package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/aulasync/aulasync-server/internal/models"
	"github.com/aulasync/aulasync-server/internal/repository"
)

type AuthService interface {
	Registrar(ctx context.Context, req *models.RegistroRequest) (*models.Usuario, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	ParseToken(token string) (*models.Actor, error)
}

// Claims del token bearer: identidad minima del actor, nada de estado de
// sesion en servidor.
type Claims struct {
	jwt.RegisteredClaims
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
}

type authService struct {
	usuarioRepo repository.UsuarioRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
	logger      zerolog.Logger
}

func NewAuthService(
	usuarioRepo repository.UsuarioRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		usuarioRepo: usuarioRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

func (s *authService) Registrar(ctx context.Context, req *models.RegistroRequest) (*models.Usuario, error) {
	if !models.IsValidRol(req.Rol) {
		return nil, ErrRolInvalido
	}

	existente, err := s.usuarioRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existente != nil {
		return nil, ErrEmailYaRegistrado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usuario := &models.Usuario{
		ID:           uuid.New().String(),
		Nombre:       req.Nombre,
		Email:        req.Email,
		Rol:          models.Rol(req.Rol),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.usuarioRepo.Create(ctx, usuario); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailYaRegistrado
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Str("usuario_id", usuario.ID).
		Str("rol", usuario.Rol.String()).
		Msg("User registered")

	return usuario, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	usuario, err := s.usuarioRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if usuario == nil {
		return nil, ErrCredencialesInvalidas
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   usuario.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
		Nombre: usuario.Nombre,
		Rol:    usuario.Rol.String(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.LoginResponse{
		Token:   token,
		Usuario: *usuario,
	}, nil
}

func (s *authService) ParseToken(tokenString string) (*models.Actor, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrCredencialesInvalidas
	}

	return &models.Actor{
		ID:     claims.Subject,
		Nombre: claims.Nombre,
		Rol:    models.Rol(claims.Rol),
	}, nil
}
