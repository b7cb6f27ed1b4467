package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, receipt_number, student_id, date, method, status,
	status_date, user_id, amount, created_at, updated_at`

// PaymentRepo implementação de PaymentRepository (aceita pool ou tx).
// Os itens do pagamento são carregados e gravados junto com a cabeça.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste um pagamento e os seus itens.
func (r *PaymentRepo) Create(p *entity.Payment) error {
	ctx := context.Background()
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ReceiptNumber, p.StudentID, p.Date, p.Method, p.Status,
		p.StatusDate, p.UserID, p.Amount, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	for _, item := range p.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO payment_items (id, payment_id, service_id, description, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, p.ID, item.ServiceID, item.Description, item.Quantity, item.UnitPrice, item.Total,
		)
		if err != nil {
			return fmt.Errorf("insert payment item: %w", err)
		}
	}
	return nil
}

// GetByID obtém um pagamento por ID, com os itens.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	var p entity.Payment
	err := r.q.QueryRow(context.Background(),
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id).Scan(
		&p.ID, &p.ReceiptNumber, &p.StudentID, &p.Date, &p.Method, &p.Status,
		&p.StatusDate, &p.UserID, &p.Amount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	if err := r.loadItems(map[string]*entity.Payment{p.ID: &p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByPeriod devolve os pagamentos com data em [start, end], com itens,
// ordenados por número de recibo. A ordem é a da cadeia de hashes.
func (r *PaymentRepo) ListByPeriod(start, end time.Time) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+paymentColumns+` FROM payments
		 WHERE date >= $1 AND date <= $2
		 ORDER BY date_part('year', date), receipt_number`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.Payment
	byID := make(map[string]*entity.Payment)
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.ReceiptNumber, &p.StudentID, &p.Date, &p.Method, &p.Status,
			&p.StatusDate, &p.UserID, &p.Amount, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(byID); err != nil {
		return nil, err
	}
	return out, nil
}

// loadItems carrega os itens de todos os pagamentos dados numa única query.
func (r *PaymentRepo) loadItems(payments map[string]*entity.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	ids := make([]string, 0, len(payments))
	for id := range payments {
		ids = append(ids, id)
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT id, payment_id, service_id, description, quantity, unit_price, total
		FROM payment_items WHERE payment_id = ANY($1) ORDER BY payment_id, id`, ids)
	if err != nil {
		return fmt.Errorf("list payment items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.PaymentItem
		if err := rows.Scan(
			&item.ID, &item.PaymentID, &item.ServiceID, &item.Description,
			&item.Quantity, &item.UnitPrice, &item.Total,
		); err != nil {
			return fmt.Errorf("scan payment item: %w", err)
		}
		if p, ok := payments[item.PaymentID]; ok {
			p.Items = append(p.Items, item)
		}
	}
	return rows.Err()
}

// NextReceiptNumber devolve o próximo número da sequência anual de recibos.
func (r *PaymentRepo) NextReceiptNumber(year int) (int64, error) {
	var max int64
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(MAX(receipt_number), 0) FROM payments
		WHERE date_part('year', date) = $1`, year).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("next receipt number: %w", err)
	}
	return max + 1, nil
}

// Update actualiza a cabeça do pagamento (estado, datas). Os itens são
// imutáveis depois de emitido o recibo.
func (r *PaymentRepo) Update(p *entity.Payment) error {
	query := `
		UPDATE payments SET status = $2, status_date = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, p.ID, p.Status, p.StatusDate, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
