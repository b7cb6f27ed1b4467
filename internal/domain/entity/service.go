package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service representa uma rubrica cobrável da escola (propina, matrícula,
// uniforme, transporte, ...). Corresponde a um Product no SAFT-AO.
type Service struct {
	ID          string
	Code        string // código único da rubrica (ex: "PROP", "MATR")
	Name        string
	Description string
	Group       string          // agrupamento opcional (ex: "Mensalidades")
	Type        string          // agt.ProductType*: "S" serviços, "P" produtos, ...
	Price       decimal.Decimal // preço unitário em AOA
	TaxCode     string          // agt.TaxCodeNormal / agt.TaxCodeExempt; vazio = sem enquadramento
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
