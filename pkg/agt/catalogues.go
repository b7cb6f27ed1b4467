// Package agt contém catálogos e validações alinhados ao SAFT-AO
// (Standard Audit File for Tax, Angola), versão de esquema AO_1.04_01,
// conforme publicado pela AGT (Administração Geral Tributária).
package agt

import "github.com/shopspring/decimal"

// =============================================================================
// Identificação do ficheiro (Header)
// =============================================================================

const (
	// AuditFileVersion versão do esquema SAFT-AO emitido.
	AuditFileVersion = "1.04_01"
	// Namespace do elemento raiz AuditFile.
	NamespaceAuditFile = "urn:OECD:StandardAuditFile-Tax:AO_1.04_01"
	// CountryAO país fixo do ficheiro (ISO 3166-1 alfa-2).
	CountryAO = "AO"
	// CurrencyAOA moeda fixa do ficheiro (Kwanza, ISO 4217).
	CurrencyAOA = "AOA"
	// TaxAccountingBasis "F": facturação.
	TaxAccountingBasisInvoicing = "F"
	// TaxEntity para ficheiros de estabelecimento único.
	TaxEntityGlobal = "Global"
)

// =============================================================================
// Tipos de produto (MasterFiles/Product/ProductType)
// =============================================================================

const (
	ProductTypeGoods   = "P" // Produtos
	ProductTypeService = "S" // Serviços (propinas, matrículas, ...)
	ProductTypeOther   = "O" // Outros (portes, adiantamentos, ...)
	ProductTypeTax     = "I" // Impostos, taxas e encargos parafiscais
)

// ValidProductTypes tipos de produto admitidos pelo esquema.
var ValidProductTypes = map[string]bool{
	ProductTypeGoods: true, ProductTypeService: true,
	ProductTypeOther: true, ProductTypeTax: true,
}

// =============================================================================
// Tabela de impostos (MasterFiles/TaxTable): códigos IVA Angola
// =============================================================================

const (
	TaxTypeIVA = "IVA"

	TaxCodeNormal = "NOR" // Taxa normal de IVA (14%)
	TaxCodeExempt = "ISE" // Isento

	// ExemptionReasonDefault motivo de isenção usado quando a rubrica não
	// tem enquadramento de IVA conhecido (mapeada para ISE a 0%).
	ExemptionReasonDefault = "Isento nos termos do CIVA"
)

// IVARateNormal taxa normal de IVA em vigor (percentagem).
var IVARateNormal = decimal.NewFromInt(14)

// TaxTableSeedEntry entrada estática da tabela de impostos.
type TaxTableSeedEntry struct {
	TaxType       string
	CountryRegion string
	TaxCode       string
	Description   string
	Percentage    decimal.Decimal
}

// TaxTableSeed devolve a tabela de impostos de referência para o ficheiro.
// Devolve sempre uma slice nova: o chamador pode anexar sem afectar o seed.
func TaxTableSeed() []TaxTableSeedEntry {
	return []TaxTableSeedEntry{
		{TaxType: TaxTypeIVA, CountryRegion: CountryAO, TaxCode: TaxCodeNormal, Description: "Taxa normal", Percentage: IVARateNormal},
		{TaxType: TaxTypeIVA, CountryRegion: CountryAO, TaxCode: TaxCodeExempt, Description: "Isento", Percentage: decimal.Zero},
	}
}

// =============================================================================
// Tipos de documento (SourceDocuments)
// =============================================================================

const (
	InvoiceTypeFT = "FT" // Factura
	InvoiceTypeFR = "FR" // Factura-recibo
	InvoiceTypeND = "ND" // Nota de débito
	InvoiceTypeNC = "NC" // Nota de crédito

	PaymentTypeRC = "RC" // Recibo emitido no regime geral
)

// ValidInvoiceTypes tipos de documento de venda admitidos.
var ValidInvoiceTypes = map[string]bool{
	InvoiceTypeFT: true, InvoiceTypeFR: true, InvoiceTypeND: true, InvoiceTypeNC: true,
}

// =============================================================================
// Estados de documento (DocumentStatus)
// =============================================================================

const (
	DocumentStatusNormal    = "N" // Normal
	DocumentStatusCancelled = "A" // Anulado
	SourceBillingProduced   = "P" // Documento produzido na aplicação
)

// =============================================================================
// Mecanismos de pagamento (Payments/PaymentMethod/PaymentMechanism)
// =============================================================================

const (
	PaymentMechanismCash     = "NU" // Numerário
	PaymentMechanismTransfer = "TB" // Transferência bancária
	PaymentMechanismCard     = "CC" // Cartão de crédito/débito
	PaymentMechanismCheck    = "CH" // Cheque
	PaymentMechanismOther    = "OU" // Outros
)

// ValidPaymentMechanisms mecanismos de pagamento admitidos.
var ValidPaymentMechanisms = map[string]bool{
	PaymentMechanismCash: true, PaymentMechanismTransfer: true,
	PaymentMechanismCard: true, PaymentMechanismCheck: true, PaymentMechanismOther: true,
}

// UnitOfMeasureDefault unidade de medida por omissão nas linhas (unidade).
const UnitOfMeasureDefault = "UN"
