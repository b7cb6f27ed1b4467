package repository

import "github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"

// StudentRepository define a porta de persistência para Student.
type StudentRepository interface {
	Create(student *entity.Student) error
	GetByID(id string) (*entity.Student, error)
	GetByCode(code string) (*entity.Student, error)
	ListActive() ([]*entity.Student, error)
	ListByIDs(ids []string) ([]*entity.Student, error)
	Update(student *entity.Student) error
}
