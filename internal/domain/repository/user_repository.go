package repository

import "github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"

// UserRepository define a porta de persistência para User (backoffice).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
