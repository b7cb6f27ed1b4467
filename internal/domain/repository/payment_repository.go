package repository

import (
	"time"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"
)

// PaymentRepository define a porta de persistência para Payment (recibos da secretaria).
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	// ListByPeriod devolve os pagamentos com data em [start, end], com os
	// respectivos itens, ordenados por número de recibo ascendente.
	// A ordem é relevante: a cadeia de hashes do SAFT segue a ordem dos documentos.
	ListByPeriod(start, end time.Time) ([]*entity.Payment, error)
	NextReceiptNumber(year int) (int64, error)
	Update(payment *entity.Payment) error
}
