package saft_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/saft"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
)

// auditFileFixture constrói um ficheiro completo e válido: um cliente, um
// produto, a tabela de impostos, uma factura isenta e o recibo correspondente.
func auditFileFixture() *saft.AuditFile {
	af := &saft.AuditFile{
		Header: saft.Header{
			AuditFileVersion:   agt.AuditFileVersion,
			CompanyID:          "500008884",
			TaxRegistrationNum: "500008884",
			TaxAccountingBasis: agt.TaxAccountingBasisInvoicing,
			CompanyName:        "Colégio Horizonte Azul",
			CompanyAddress: saft.Address{
				AddressDetail: "Rua da Missão, 24",
				City:          "Luanda",
				Province:      "Luanda",
				Country:       agt.CountryAO,
			},
			FiscalYear:         2024,
			StartDate:          time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:            time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			CurrencyCode:       agt.CurrencyAOA,
			DateCreated:        time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC),
			TaxEntity:          agt.TaxEntityGlobal,
			ProductCompanyNIF:  "123456789",
			SoftwareCertNumber: "312/AGT/2024",
			ProductID:          "SystemSchool",
			ProductVersion:     "1.0",
		},
	}

	af.MasterFiles.Customers = []saft.Customer{{
		CustomerID:    "AL001",
		AccountID:     "Desconhecido",
		CustomerTaxID: "540212989",
		CompanyName:   "Maria dos Santos",
		BillingAddress: saft.Address{
			AddressDetail: "Bairro Maianga",
			City:          "Luanda",
			Country:       agt.CountryAO,
		},
	}}
	af.MasterFiles.Products = []saft.Product{{
		ProductType:       agt.ProductTypeService,
		ProductCode:       "PROP",
		ProductDesc:       "Propina mensal",
		ProductNumberCode: "PROP",
	}}
	for _, e := range agt.TaxTableSeed() {
		af.MasterFiles.TaxTable = append(af.MasterFiles.TaxTable, saft.TaxTableEntry{
			TaxType:       e.TaxType,
			CountryRegion: e.CountryRegion,
			TaxCode:       e.TaxCode,
			Description:   e.Description,
			Percentage:    e.Percentage,
		})
	}

	gross := decimal.NewFromInt(50000)
	af.SourceDocuments.Invoices = []saft.Invoice{{
		InvoiceNo: "FT 2024/1",
		DocumentStatus: saft.DocumentStatus{
			Status:        agt.DocumentStatusNormal,
			StatusDate:    time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
			SourceID:      "op1",
			SourceBilling: agt.SourceBillingProduced,
		},
		Period:          1,
		InvoiceDate:     time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		InvoiceType:     agt.InvoiceTypeFT,
		SourceID:        "op1",
		SystemEntryDate: time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
		CustomerID:      "AL001",
		Lines: []saft.Line{{
			LineNumber:    1,
			ProductCode:   "PROP",
			ProductDesc:   "Propina mensal",
			Quantity:      decimal.NewFromInt(1),
			UnitOfMeasure: agt.UnitOfMeasureDefault,
			UnitPrice:     gross,
			Description:   "Propina Janeiro 2024",
			CreditAmount:  gross,
			Tax: saft.LineTax{
				TaxType:       agt.TaxTypeIVA,
				CountryRegion: agt.CountryAO,
				TaxCode:       agt.TaxCodeExempt,
				Percentage:    decimal.Zero,
				Amount:        decimal.Zero,
			},
			TaxExemptReason: agt.ExemptionReasonDefault,
		}},
		DocumentTotals: saft.DocumentTotals{
			TaxPayable: decimal.Zero,
			NetTotal:   gross,
			GrossTotal: gross,
		},
	}}
	af.SourceDocuments.NumberOfInvoiceEntries = 1
	af.SourceDocuments.TotalDebit = decimal.Zero
	af.SourceDocuments.TotalCredit = gross

	af.SourceDocuments.Payments = []saft.Payment{{
		PaymentRefNo:    "RC 2024/1",
		TransactionDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		PaymentType:     agt.PaymentTypeRC,
		DocumentStatus: saft.DocumentStatus{
			Status:        agt.DocumentStatusNormal,
			StatusDate:    time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
			SourceID:      "op1",
			SourceBilling: agt.SourceBillingProduced,
		},
		PaymentMethods: []saft.PaymentMethod{{
			PaymentMechanism: agt.PaymentMechanismCash,
			PaymentAmount:    gross,
			PaymentDate:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		}},
		SourceID:        "op1",
		SystemEntryDate: time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
		CustomerID:      "AL001",
		Lines: []saft.PaymentLine{{
			LineNumber:    1,
			OriginatingON: "FT 2024/1",
			InvoiceDate:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			CreditAmount:  gross,
		}},
		DocumentTotals: saft.DocumentTotals{
			TaxPayable: decimal.Zero,
			NetTotal:   gross,
			GrossTotal: gross,
		},
	}}
	af.SourceDocuments.NumberOfPaymentEntries = 1
	af.SourceDocuments.PaymentTotalDebit = decimal.Zero
	af.SourceDocuments.PaymentTotalCredit = gross

	rehash(af)
	return af
}

// rehash recalcula a cadeia de hashes pela ordem actual das facturas.
func rehash(af *saft.AuditFile) {
	previous := ""
	for i := range af.SourceDocuments.Invoices {
		inv := &af.SourceDocuments.Invoices[i]
		inv.Hash = saft.DocumentHash(inv.InvoiceNo, inv.InvoiceDate.Format("2006-01-02"), inv.DocumentTotals.GrossTotal, previous)
		previous = inv.Hash
	}
}

// countCode conta achados (erros e avisos) com o código dado.
func countCode(r saft.ValidationResult, code string) int {
	n := 0
	for _, f := range append(append([]saft.Finding{}, r.Errors...), r.Warnings...) {
		if f.Code == code {
			n++
		}
	}
	return n
}

func TestValidate_FicheiroValidoSemErros(t *testing.T) {
	result := saft.NewValidator(nil).Validate(auditFileFixture())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Zero(t, result.Summary.TotalErrors)
	assert.Zero(t, result.Summary.CriticalErrors)
}

func TestValidate_FicheiroNulo(t *testing.T) {
	result := saft.NewValidator(nil).Validate(nil)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, countCode(result, "AUDITFILE_REQUIRED"))
}

func TestValidate_NIFInvalidoEhCritico(t *testing.T) {
	af := auditFileFixture()
	af.Header.TaxRegistrationNum = "500008885"

	result := saft.NewValidator(nil).Validate(af)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, countCode(result, "HEADER_NIF_INVALID"))
	assert.Equal(t, 1, result.Summary.CriticalErrors)
}

func TestValidate_NumeroDeFacturaDuplicado(t *testing.T) {
	af := auditFileFixture()
	dup := af.SourceDocuments.Invoices[0]
	af.SourceDocuments.Invoices = append(af.SourceDocuments.Invoices, dup)
	af.SourceDocuments.NumberOfInvoiceEntries = 2
	rehash(af)

	result := saft.NewValidator(nil).Validate(af)

	assert.False(t, result.Valid)
	// O duplicado é reportado uma única vez, na segunda ocorrência.
	assert.Equal(t, 1, countCode(result, "INVOICE_NUMBER_DUPLICATE"))
}

func TestValidate_TotaisInconsistentes(t *testing.T) {
	af := auditFileFixture()
	// Net 50000 + Tax 0, mas Gross 49999: fora da tolerância de 0.01.
	af.SourceDocuments.Invoices[0].DocumentTotals.GrossTotal = decimal.NewFromInt(49999)
	rehash(af)

	result := saft.NewValidator(nil).Validate(af)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, countCode(result, "INVOICE_TOTALS_INCONSISTENT"))
	assert.Zero(t, countCode(result, "INTEGRITY_HASH_MISMATCH"), "o hash foi recalculado, só os totais divergem")
}

func TestValidate_AdulteracaoPropagaPelaCadeia(t *testing.T) {
	af := auditFileFixture()
	segunda := af.SourceDocuments.Invoices[0]
	segunda.InvoiceNo = "FT 2024/2"
	segunda.InvoiceDate = time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	af.SourceDocuments.Invoices = append(af.SourceDocuments.Invoices, segunda)
	af.SourceDocuments.NumberOfInvoiceEntries = 2
	rehash(af)

	// Adulterar o hash ARMAZENADO da primeira factura DEPOIS de assinada: a
	// própria deixa de bater com o recalculado e a segunda, cuja cadeia
	// encadeia nesse hash armazenado, também acusa divergência.
	af.SourceDocuments.Invoices[0].Hash = "0000000000000000000000000000000000000000000000000000000000000000"

	result := saft.NewValidator(nil).Validate(af)

	assert.False(t, result.Valid)
	assert.Equal(t, 2, countCode(result, "INTEGRITY_HASH_MISMATCH"))
}

func TestValidate_AdulteracaoDeConteudoAcusaSoAPropria(t *testing.T) {
	af := auditFileFixture()
	segunda := af.SourceDocuments.Invoices[0]
	segunda.InvoiceNo = "FT 2024/2"
	segunda.InvoiceDate = time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	af.SourceDocuments.Invoices = append(af.SourceDocuments.Invoices, segunda)
	af.SourceDocuments.NumberOfInvoiceEntries = 2
	rehash(af)

	// Adulterar o CONTEÚDO da primeira sem tocar no hash armazenado: a cadeia
	// segue o hash armazenado, pelo que a segunda continua íntegra e só a
	// primeira acusa divergência.
	af.SourceDocuments.Invoices[0].DocumentTotals.GrossTotal = decimal.NewFromInt(1)
	af.SourceDocuments.Invoices[0].DocumentTotals.NetTotal = decimal.NewFromInt(1)

	result := saft.NewValidator(nil).Validate(af)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, countCode(result, "INTEGRITY_HASH_MISMATCH"))
}

func TestValidate_ClienteDesconhecido(t *testing.T) {
	af := auditFileFixture()
	af.SourceDocuments.Invoices[0].CustomerID = "AL999"

	result := saft.NewValidator(nil).Validate(af)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, countCode(result, "INVOICE_CUSTOMER_UNKNOWN"))
}

func TestValidate_FormatoDeNumeroGeraAviso(t *testing.T) {
	af := auditFileFixture()
	af.SourceDocuments.Invoices[0].InvoiceNo = "fact-17"
	af.SourceDocuments.Payments[0].Lines[0].OriginatingON = "fact-17"
	rehash(af)

	result := saft.NewValidator(nil).Validate(af)

	// Aviso, não erro: séries legadas continuam exportáveis.
	assert.True(t, result.Valid)
	assert.Equal(t, 1, countCode(result, "INVOICE_NUMBER_FORMAT"))
}

func TestValidate_ReciboComOrigemForaDoPeriodo(t *testing.T) {
	af := auditFileFixture()
	af.SourceDocuments.Payments[0].Lines[0].OriginatingON = "FT 2023/442"

	result := saft.NewValidator(nil).Validate(af)

	assert.True(t, result.Valid, "origem fora do período é aviso")
	assert.Equal(t, 1, countCode(result, "PAYMENT_ORIGIN_UNKNOWN"))
}

func TestValidate_MecanismoDePagamentoDesconhecido(t *testing.T) {
	af := auditFileFixture()
	af.SourceDocuments.Payments[0].PaymentMethods[0].PaymentMechanism = "XX"

	result := saft.NewValidator(nil).Validate(af)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, countCode(result, "PAYMENT_MECHANISM_INVALID"))
}

// fakeVerifier devolve sempre o erro configurado.
type fakeVerifier struct {
	err error
}

func (v *fakeVerifier) Verify(hash, signature string) error { return v.err }

func TestValidate_AssinaturaInvalida(t *testing.T) {
	af := auditFileFixture()

	result := saft.NewValidator(&fakeVerifier{err: errors.New("assinatura não corresponde")}).Validate(af)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, countCode(result, "INTEGRITY_SIGNATURE_INVALID"))
}

func TestValidate_ChavePublicaEmFalta(t *testing.T) {
	af := auditFileFixture()

	result := saft.NewValidator(&fakeVerifier{err: agt.ErrKeyNotLoaded}).Validate(af)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, countCode(result, "INTEGRITY_KEY_REQUIRED"))
}

func TestValidate_AssinaturaVerificadaComSucesso(t *testing.T) {
	af := auditFileFixture()

	result := saft.NewValidator(&fakeVerifier{err: nil}).Validate(af)

	assert.True(t, result.Valid)
}

func TestValidate_SumarioContaErrosEAvisos(t *testing.T) {
	af := auditFileFixture()
	// Nome em falta (erro crítico), data de fim futura (aviso) e totais
	// inconsistentes (erro não crítico).
	af.Header.CompanyName = ""
	af.Header.EndDate = time.Now().Add(48 * time.Hour)
	af.SourceDocuments.Invoices[0].DocumentTotals.GrossTotal = decimal.NewFromInt(49000)
	rehash(af)

	result := saft.NewValidator(nil).Validate(af)

	require.False(t, result.Valid)
	assert.Equal(t, 2, result.Summary.TotalErrors)
	assert.Equal(t, 1, result.Summary.TotalWarnings)
	assert.Equal(t, 1, result.Summary.CriticalErrors)
}

func TestFinding_Critical(t *testing.T) {
	assert.True(t, saft.Finding{Code: "HEADER_NIF_REQUIRED"}.Critical())
	assert.True(t, saft.Finding{Code: "INVOICE_DATE_INVALID"}.Critical())
	assert.False(t, saft.Finding{Code: "INVOICE_TOTALS_INCONSISTENT"}.Critical())
	assert.False(t, saft.Finding{Code: "INVOICE_NUMBER_DUPLICATE"}.Critical())
}
