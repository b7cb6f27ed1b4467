package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de um pagamento no sistema.
const (
	PaymentStatusPaid      = "PAGO"
	PaymentStatusCancelled = "ANULADO"
)

// Payment representa um pagamento efectuado na secretaria (um recibo).
// Cada pagamento origina uma factura e um recibo no SAFT-AO.
type Payment struct {
	ID            string
	ReceiptNumber int64  // sequência anual do recibo; base do número de documento SAFT
	StudentID     string // aluno a quem o pagamento respeita
	Date          time.Time
	Method        string // agt.PaymentMechanism*: NU, TB, CC, CH, OU
	Status        string // PAGO | ANULADO
	StatusDate    time.Time
	UserID        string // operador que registou o pagamento
	Amount        decimal.Decimal
	Items         []PaymentItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentItem uma rubrica paga dentro do pagamento (ex: propina de Março).
type PaymentItem struct {
	ID          string
	PaymentID   string
	ServiceID   string
	Description string // descrição livre (ex: "Propina Março 2024, turma 10A")
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}
