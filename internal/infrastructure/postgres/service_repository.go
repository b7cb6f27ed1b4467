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

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

const serviceColumns = `id, code, name, description, "group", type, price, tax_code,
	active, created_at, updated_at`

// ServiceRepo implementação de ServiceRepository (aceita pool ou tx).
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// Create persiste uma rubrica nova.
func (r *ServiceRepo) Create(s *entity.Service) error {
	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Code, s.Name, s.Description, s.Group, s.Type, s.Price, s.TaxCode,
		s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID obtém uma rubrica por ID.
func (r *ServiceRepo) GetByID(id string) (*entity.Service, error) {
	return r.getOne(`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
}

// GetByCode obtém uma rubrica pelo código.
func (r *ServiceRepo) GetByCode(code string) (*entity.Service, error) {
	return r.getOne(`SELECT `+serviceColumns+` FROM services WHERE code = $1`, code)
}

func (r *ServiceRepo) getOne(query string, arg any) (*entity.Service, error) {
	var s entity.Service
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.Code, &s.Name, &s.Description, &s.Group, &s.Type, &s.Price,
		&s.TaxCode, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// ListActive lista as rubricas activas por código.
func (r *ServiceRepo) ListActive() ([]*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE active ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var out []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(
			&s.ID, &s.Code, &s.Name, &s.Description, &s.Group, &s.Type, &s.Price,
			&s.TaxCode, &s.Active, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Update actualiza uma rubrica.
func (r *ServiceRepo) Update(s *entity.Service) error {
	query := `
		UPDATE services SET code = $2, name = $3, description = $4, "group" = $5,
			type = $6, price = $7, tax_code = $8, active = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		s.ID, s.Code, s.Name, s.Description, s.Group, s.Type, s.Price, s.TaxCode,
		s.Active, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
