// Package auth autenticação dos utilizadores do backoffice (bcrypt + JWT).
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/application/dto"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/repository"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/config"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/jwt"
)

var validRoles = map[string]bool{
	entity.RoleAdmin:      true,
	entity.RoleSecretaria: true,
	entity.RoleFinanceiro: true,
}

// UseCase regista e autentica utilizadores do backoffice.
type UseCase struct {
	users repository.UserRepository
	cfg   config.JWTConfig
}

// NewUseCase cria o caso de uso de autenticação.
func NewUseCase(users repository.UserRepository, cfg config.JWTConfig) *UseCase {
	return &UseCase{users: users, cfg: cfg}
}

// Register cria um utilizador novo com a password em hash bcrypt.
func (uc *UseCase) Register(req dto.RegisterRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: nome, email e password são obrigatórios", domain.ErrInvalidInput)
	}
	if !validRoles[req.Role] {
		return nil, fmt.Errorf("%w: role desconhecido %q", domain.ErrInvalidInput, req.Role)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: a password deve ter pelo menos 8 caracteres", domain.ErrInvalidInput)
	}

	if _, err := uc.users.GetByEmail(email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: gerar hash da password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login valida as credenciais e emite um token JWT com o role do utilizador.
// Credenciais erradas e utilizador inexistente devolvem o mesmo erro.
func (uc *UseCase) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Role, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("auth: emitir token: %w", err)
	}
	return &dto.AuthResponse{Token: token, Name: user.Name, Role: user.Role}, nil
}
