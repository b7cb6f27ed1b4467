package repository

import "github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"

// CompanyRepository define a porta de persistência para Company (dados da escola).
type CompanyRepository interface {
	Get() (*entity.Company, error)
	Save(company *entity.Company) error
}
