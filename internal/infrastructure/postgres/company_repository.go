package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementação de CompanyRepository. A tabela tem no máximo
// uma linha: os dados da escola emitente.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Get devolve os dados da escola.
func (r *CompanyRepo) Get() (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(context.Background(), `
		SELECT id, nif, name, address, city, postal_code, province, phone, email, created_at, updated_at
		FROM company LIMIT 1`).Scan(
		&c.ID, &c.NIF, &c.Name, &c.Address, &c.City, &c.PostalCode, &c.Province,
		&c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Save cria ou substitui os dados da escola.
func (r *CompanyRepo) Save(c *entity.Company) error {
	query := `
		INSERT INTO company (id, nif, name, address, city, postal_code, province, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			nif = EXCLUDED.nif, name = EXCLUDED.name, address = EXCLUDED.address,
			city = EXCLUDED.city, postal_code = EXCLUDED.postal_code,
			province = EXCLUDED.province, phone = EXCLUDED.phone,
			email = EXCLUDED.email, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.NIF, c.Name, c.Address, c.City, c.PostalCode, c.Province,
		c.Phone, c.Email, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save company: %w", err)
	}
	return nil
}
