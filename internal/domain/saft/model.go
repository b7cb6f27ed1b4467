// Package saft contém o modelo intermédio do SAFT-AO (AO_1.04_01), a cadeia de
// hashes dos documentos e o motor de validação estrutural. É código puro: sem
// I/O, sem estado partilhado entre exportações.
package saft

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFile é a estrutura completa de uma exportação SAFT-AO.
type AuditFile struct {
	Header          Header
	MasterFiles     MasterFiles
	SourceDocuments SourceDocuments
}

// Header identifica o ficheiro, a entidade emitente e o período fiscal.
type Header struct {
	AuditFileVersion   string // fixo: agt.AuditFileVersion
	CompanyID          string // igual ao NIF quando não há registo comercial
	TaxRegistrationNum string // NIF da escola (9 dígitos, dígito de controlo válido)
	TaxAccountingBasis string // "F" facturação
	CompanyName        string
	CompanyAddress     Address
	FiscalYear         int
	StartDate          time.Time
	EndDate            time.Time
	CurrencyCode       string // fixo: agt.CurrencyAOA
	DateCreated        time.Time
	TaxEntity          string
	ProductCompanyNIF  string // NIF do produtor do software
	SoftwareCertNumber string // número do certificado de validação AGT
	ProductID          string
	ProductVersion     string
}

// Address morada estruturada (Header e Customer).
type Address struct {
	AddressDetail string
	City          string
	PostalCode    string
	Province      string
	Country       string // fixo: agt.CountryAO
}

// MasterFiles dados de referência: clientes, produtos e tabela de impostos.
type MasterFiles struct {
	Customers []Customer
	Products  []Product
	TaxTable  []TaxTableEntry
}

// Customer uma entidade facturável (aluno ou encarregado de educação).
type Customer struct {
	CustomerID     string // único em todo o ficheiro
	AccountID      string
	CustomerTaxID  string // opcional; "999999999" = consumidor final
	CompanyName    string
	BillingAddress Address
	Telephone      string
	Email          string
}

// Product uma rubrica cobrável (propina, matrícula, ...).
type Product struct {
	ProductType       string // agt.ProductType*
	ProductCode       string // único em todo o ficheiro
	ProductGroup      string // opcional
	ProductDesc       string
	ProductNumberCode string // código secundário; igual a ProductCode quando não há outro
}

// TaxTableEntry entrada da tabela de impostos.
type TaxTableEntry struct {
	TaxType       string // "IVA"
	CountryRegion string // "AO"
	TaxCode       string // "NOR", "ISE"
	Description   string
	Percentage    decimal.Decimal // [0, 100]
}

// SourceDocuments documentos transaccionais do período.
type SourceDocuments struct {
	NumberOfInvoiceEntries int
	TotalDebit             decimal.Decimal
	TotalCredit            decimal.Decimal
	Invoices               []Invoice

	NumberOfPaymentEntries int
	PaymentTotalDebit      decimal.Decimal
	PaymentTotalCredit     decimal.Decimal
	Payments               []Payment
}

// DocumentStatus estado de um documento no momento da exportação.
type DocumentStatus struct {
	Status        string // "N" normal, "A" anulado
	StatusDate    time.Time
	SourceID      string // operador responsável
	SourceBilling string // "P" produzido na aplicação
}

// Invoice uma factura emitida no período.
// Hash e HashControl são preenchidos pela cadeia de assinatura; imutável depois.
type Invoice struct {
	InvoiceNo       string // formato recomendado: "SÉRIE AAAA/NÚMERO" (ex: "FT 2024/17")
	DocumentStatus  DocumentStatus
	Hash            string // SHA-256 hex maiúsculo, encadeado ao documento anterior
	HashControl     string // assinatura do hash (base64)
	Period          int    // mês 1-12; 0 = omitido
	InvoiceDate     time.Time
	InvoiceType     string // agt.InvoiceType*
	SourceID        string
	SystemEntryDate time.Time
	CustomerID      string // referência obrigatória a um Customer do MasterFiles
	Lines           []Line
	DocumentTotals  DocumentTotals
}

// Line uma linha de documento.
type Line struct {
	LineNumber      int
	ProductCode     string // referência a um Product do MasterFiles
	ProductDesc     string
	Quantity        decimal.Decimal // > 0
	UnitOfMeasure   string
	UnitPrice       decimal.Decimal // >= 0
	Description     string
	CreditAmount    decimal.Decimal
	DebitAmount     decimal.Decimal
	Tax             LineTax
	TaxExemptReason string // obrigatório quando a taxa é 0
}

// LineTax enquadramento fiscal da linha.
type LineTax struct {
	TaxType       string
	CountryRegion string
	TaxCode       string
	Percentage    decimal.Decimal
	Amount        decimal.Decimal
}

// DocumentTotals totais de um documento. Invariante: Gross = Net + Tax (±0.01).
type DocumentTotals struct {
	TaxPayable decimal.Decimal // >= 0
	NetTotal   decimal.Decimal // >= 0
	GrossTotal decimal.Decimal
}

// Payment um recibo emitido no período.
type Payment struct {
	PaymentRefNo    string // ex: "RC 2024/17"
	TransactionDate time.Time
	PaymentType     string // agt.PaymentTypeRC
	DocumentStatus  DocumentStatus
	PaymentMethods  []PaymentMethod
	SourceID        string
	SystemEntryDate time.Time
	CustomerID      string
	Lines           []PaymentLine
	DocumentTotals  DocumentTotals
}

// PaymentMethod meio de pagamento usado no recibo.
type PaymentMethod struct {
	PaymentMechanism string // agt.PaymentMechanism*
	PaymentAmount    decimal.Decimal
	PaymentDate      time.Time
}

// PaymentLine linha de recibo, referencia a factura de origem.
type PaymentLine struct {
	LineNumber    int
	OriginatingON string // InvoiceNo da factura liquidada
	InvoiceDate   time.Time
	CreditAmount  decimal.Decimal
}
