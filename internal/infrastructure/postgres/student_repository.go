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

var _ repository.StudentRepository = (*StudentRepo)(nil)

const studentColumns = `id, code, name, guardian_name, nif, address, city,
	postal_code, province, phone, email, class_name, active, created_at, updated_at`

// StudentRepo implementação de StudentRepository (aceita pool ou tx).
type StudentRepo struct {
	q Querier
}

// NewStudentRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStudentRepository(q Querier) *StudentRepo {
	return &StudentRepo{q: q}
}

// Create persiste um aluno novo.
func (r *StudentRepo) Create(s *entity.Student) error {
	query := `
		INSERT INTO students (` + studentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Code, s.Name, s.GuardianName, s.NIF, s.Address, s.City,
		s.PostalCode, s.Province, s.Phone, s.Email, s.ClassName, s.Active,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// GetByID obtém um aluno por ID.
func (r *StudentRepo) GetByID(id string) (*entity.Student, error) {
	return r.getOne(`SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
}

// GetByCode obtém um aluno pelo número de estudante.
func (r *StudentRepo) GetByCode(code string) (*entity.Student, error) {
	return r.getOne(`SELECT `+studentColumns+` FROM students WHERE code = $1`, code)
}

func (r *StudentRepo) getOne(query string, arg any) (*entity.Student, error) {
	var s entity.Student
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.Code, &s.Name, &s.GuardianName, &s.NIF, &s.Address, &s.City,
		&s.PostalCode, &s.Province, &s.Phone, &s.Email, &s.ClassName, &s.Active,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &s, nil
}

// ListActive lista os alunos activos por número de estudante.
func (r *StudentRepo) ListActive() ([]*entity.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE active ORDER BY code`
	return r.list(query)
}

// ListByIDs lista os alunos com os IDs dados (activos ou não).
func (r *StudentRepo) ListByIDs(ids []string) ([]*entity.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ANY($1) ORDER BY code`
	return r.list(query, ids)
}

func (r *StudentRepo) list(query string, args ...any) ([]*entity.Student, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()
	var out []*entity.Student
	for rows.Next() {
		var s entity.Student
		if err := rows.Scan(
			&s.ID, &s.Code, &s.Name, &s.GuardianName, &s.NIF, &s.Address, &s.City,
			&s.PostalCode, &s.Province, &s.Phone, &s.Email, &s.ClassName, &s.Active,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Update actualiza um aluno.
func (r *StudentRepo) Update(s *entity.Student) error {
	query := `
		UPDATE students SET code = $2, name = $3, guardian_name = $4, nif = $5,
			address = $6, city = $7, postal_code = $8, province = $9, phone = $10,
			email = $11, class_name = $12, active = $13, updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		s.ID, s.Code, s.Name, s.GuardianName, s.NIF, s.Address, s.City,
		s.PostalCode, s.Province, s.Phone, s.Email, s.ClassName, s.Active, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
