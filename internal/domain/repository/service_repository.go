package repository

import "github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"

// ServiceRepository define a porta de persistência para Service (rubricas cobráveis).
type ServiceRepository interface {
	Create(service *entity.Service) error
	GetByID(id string) (*entity.Service, error)
	GetByCode(code string) (*entity.Service, error)
	ListActive() ([]*entity.Service, error)
	Update(service *entity.Service) error
}
