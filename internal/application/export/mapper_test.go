package export_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/application/export"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
)

func mapperInputFixture() export.MapperInput {
	january := func(day int) time.Time {
		return time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
	}
	return export.MapperInput{
		Company: &entity.Company{
			ID:       "co1",
			NIF:      "500008884",
			Name:     "Colégio Horizonte Azul",
			Address:  "Rua da Missão, 24",
			City:     "Luanda",
			Province: "Luanda",
		},
		Software: export.SoftwareInfo{
			ProductID:         "SystemSchool",
			ProductVersion:    "1.0",
			CertificateNumber: "312/AGT/2024",
			CompanyNIF:        "123456789",
		},
		Students: []*entity.Student{
			{ID: "st1", Code: "AL001", Name: "João Baptista", GuardianName: "Maria dos Santos", NIF: "540212989", Address: "Bairro Maianga", City: "Luanda"},
			{ID: "st2", Code: "AL002", Name: "Teresa N'Gola"},
		},
		Services: []*entity.Service{
			{ID: "sv1", Code: "PROP", Name: "Propina mensal", Type: agt.ProductTypeService, TaxCode: agt.TaxCodeExempt},
			{ID: "sv2", Code: "UNIF", Name: "Uniforme", Type: agt.ProductTypeGoods, TaxCode: agt.TaxCodeNormal},
		},
		Payments: []*entity.Payment{
			{
				ID: "p1", ReceiptNumber: 1, StudentID: "st1", Date: january(15),
				Method: agt.PaymentMechanismCash, Status: entity.PaymentStatusPaid,
				StatusDate: january(15), UserID: "op1",
				Amount: decimal.NewFromInt(50000),
				Items: []entity.PaymentItem{{
					ID: "i1", PaymentID: "p1", ServiceID: "sv1",
					Description: "Propina Janeiro 2024",
					Quantity:    decimal.NewFromInt(1),
					UnitPrice:   decimal.NewFromInt(50000),
					Total:       decimal.NewFromInt(50000),
				}},
				CreatedAt: january(15),
			},
			{
				ID: "p2", ReceiptNumber: 2, StudentID: "st2", Date: january(20),
				Method: agt.PaymentMechanismTransfer, Status: entity.PaymentStatusPaid,
				StatusDate: january(20), UserID: "op1",
				Amount: decimal.NewFromInt(11400),
				Items: []entity.PaymentItem{{
					ID: "i2", PaymentID: "p2", ServiceID: "sv2",
					Description: "Uniforme completo",
					Quantity:    decimal.NewFromInt(1),
					UnitPrice:   decimal.NewFromInt(10000),
					Total:       decimal.NewFromInt(10000),
				}},
				CreatedAt: january(20),
			},
		},
		Options: export.Options{
			StartDate:        january(1),
			EndDate:          january(31),
			IncludeCustomers: true,
			IncludeProducts:  true,
			IncludeInvoices:  true,
			IncludePayments:  true,
		},
		Now: time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMapAuditFile_Header(t *testing.T) {
	af, err := export.MapAuditFile(mapperInputFixture())
	require.NoError(t, err)

	h := af.Header
	assert.Equal(t, agt.AuditFileVersion, h.AuditFileVersion)
	assert.Equal(t, "500008884", h.TaxRegistrationNum)
	assert.Equal(t, "500008884", h.CompanyID)
	assert.Equal(t, agt.TaxAccountingBasisInvoicing, h.TaxAccountingBasis)
	assert.Equal(t, agt.CountryAO, h.CompanyAddress.Country)
	assert.Equal(t, agt.CurrencyAOA, h.CurrencyCode)
	assert.Equal(t, 2024, h.FiscalYear)
	assert.Equal(t, "312/AGT/2024", h.SoftwareCertNumber)
	assert.Equal(t, "123456789", h.ProductCompanyNIF)
}

func TestMapAuditFile_IdentificadoresDeterministas(t *testing.T) {
	in := mapperInputFixture()

	a, err := export.MapAuditFile(in)
	require.NoError(t, err)
	b, err := export.MapAuditFile(in)
	require.NoError(t, err)

	// Mapear duas vezes a mesma entrada produz exactamente os mesmos IDs.
	require.Len(t, a.SourceDocuments.Invoices, 2)
	assert.Equal(t, "FT 2024/1", a.SourceDocuments.Invoices[0].InvoiceNo)
	assert.Equal(t, "FT 2024/2", a.SourceDocuments.Invoices[1].InvoiceNo)
	assert.Equal(t, "RC 2024/1", a.SourceDocuments.Payments[0].PaymentRefNo)
	for i := range a.SourceDocuments.Invoices {
		assert.Equal(t, a.SourceDocuments.Invoices[i], b.SourceDocuments.Invoices[i])
	}

	// CustomerID e ProductCode derivam dos códigos de origem.
	assert.Equal(t, "AL001", a.MasterFiles.Customers[0].CustomerID)
	assert.Equal(t, "PROP", a.MasterFiles.Products[0].ProductCode)
	assert.Equal(t, "AL001", a.SourceDocuments.Invoices[0].CustomerID)
	assert.Equal(t, "PROP", a.SourceDocuments.Invoices[0].Lines[0].ProductCode)
}

func TestMapAuditFile_ClienteUsaEncarregadoQuandoPresente(t *testing.T) {
	af, err := export.MapAuditFile(mapperInputFixture())
	require.NoError(t, err)

	assert.Equal(t, "Maria dos Santos", af.MasterFiles.Customers[0].CompanyName)
	assert.Equal(t, "Teresa N'Gola", af.MasterFiles.Customers[1].CompanyName, "sem encarregado usa o nome do aluno")
}

func TestMapAuditFile_MoradaEmFaltaUsaDesconhecido(t *testing.T) {
	af, err := export.MapAuditFile(mapperInputFixture())
	require.NoError(t, err)

	// AL002 não tem morada registada na secretaria; a morada de facturação
	// sai preenchida na mesma para cumprir o esquema.
	c := af.MasterFiles.Customers[1]
	require.Equal(t, "AL002", c.CustomerID)
	assert.Equal(t, "Desconhecido", c.BillingAddress.AddressDetail)
	assert.Equal(t, "Desconhecido", c.BillingAddress.City)

	// AL001 mantém a morada real.
	assert.Equal(t, "Bairro Maianga", af.MasterFiles.Customers[0].BillingAddress.AddressDetail)
	assert.Equal(t, "Luanda", af.MasterFiles.Customers[0].BillingAddress.City)
}

func TestMapAuditFile_EnquadramentoFiscal(t *testing.T) {
	af, err := export.MapAuditFile(mapperInputFixture())
	require.NoError(t, err)

	// Rubrica isenta: taxa 0, motivo de isenção preenchido.
	isenta := af.SourceDocuments.Invoices[0].Lines[0]
	assert.Equal(t, agt.TaxCodeExempt, isenta.Tax.TaxCode)
	assert.True(t, isenta.Tax.Percentage.IsZero())
	assert.Equal(t, agt.ExemptionReasonDefault, isenta.TaxExemptReason)

	// Rubrica à taxa normal: IVA 14% sobre o líquido, sem motivo de isenção.
	normal := af.SourceDocuments.Invoices[1].Lines[0]
	assert.Equal(t, agt.TaxCodeNormal, normal.Tax.TaxCode)
	assert.True(t, normal.Tax.Percentage.Equal(decimal.NewFromInt(14)))
	assert.True(t, normal.Tax.Amount.Equal(decimal.NewFromInt(1400)), "14%% de 10000, obteve %s", normal.Tax.Amount)
	assert.Empty(t, normal.TaxExemptReason)

	totals := af.SourceDocuments.Invoices[1].DocumentTotals
	assert.True(t, totals.NetTotal.Equal(decimal.NewFromInt(10000)))
	assert.True(t, totals.TaxPayable.Equal(decimal.NewFromInt(1400)))
	assert.True(t, totals.GrossTotal.Equal(decimal.NewFromInt(11400)))
}

func TestMapAuditFile_PagamentoAnulado(t *testing.T) {
	in := mapperInputFixture()
	in.Payments[0].Status = entity.PaymentStatusCancelled

	af, err := export.MapAuditFile(in)
	require.NoError(t, err)

	assert.Equal(t, agt.DocumentStatusCancelled, af.SourceDocuments.Invoices[0].DocumentStatus.Status)
	// Documentos anulados continuam no ficheiro mas não somam ao TotalCredit.
	assert.True(t, af.SourceDocuments.TotalCredit.Equal(decimal.NewFromInt(11400)),
		"TotalCredit deve excluir o anulado, obteve %s", af.SourceDocuments.TotalCredit)
}

func TestMapAuditFile_FiltraEOrdenaPorPeriodo(t *testing.T) {
	in := mapperInputFixture()
	fora := &entity.Payment{
		ID: "p3", ReceiptNumber: 3, StudentID: "st1",
		Date:   time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC),
		Method: agt.PaymentMechanismCash, Status: entity.PaymentStatusPaid,
		Amount: decimal.NewFromInt(99),
		Items: []entity.PaymentItem{{
			ServiceID: "sv1", Quantity: decimal.NewFromInt(1),
			UnitPrice: decimal.NewFromInt(99), Total: decimal.NewFromInt(99),
		}},
	}
	// Entrada desordenada: o mapeador ordena por número de recibo.
	in.Payments = []*entity.Payment{fora, in.Payments[1], in.Payments[0]}

	af, err := export.MapAuditFile(in)
	require.NoError(t, err)

	require.Len(t, af.SourceDocuments.Invoices, 2, "pagamento de Fevereiro fica fora do período")
	assert.Equal(t, "FT 2024/1", af.SourceDocuments.Invoices[0].InvoiceNo)
	assert.Equal(t, "FT 2024/2", af.SourceDocuments.Invoices[1].InvoiceNo)
	assert.Equal(t, 2, af.SourceDocuments.NumberOfInvoiceEntries)
}

func TestMapAuditFile_SeccoesOpcionais(t *testing.T) {
	in := mapperInputFixture()
	in.Options.IncludeCustomers = false
	in.Options.IncludePayments = false

	af, err := export.MapAuditFile(in)
	require.NoError(t, err)

	assert.Empty(t, af.MasterFiles.Customers)
	assert.NotEmpty(t, af.MasterFiles.Products)
	assert.NotEmpty(t, af.SourceDocuments.Invoices)
	assert.Empty(t, af.SourceDocuments.Payments)
	assert.Zero(t, af.SourceDocuments.NumberOfPaymentEntries)
}

func TestMapAuditFile_HashesFicamVazios(t *testing.T) {
	af, err := export.MapAuditFile(mapperInputFixture())
	require.NoError(t, err)

	// O mapeador não assina: Hash e HashControl pertencem à cadeia de assinatura.
	for _, inv := range af.SourceDocuments.Invoices {
		assert.Empty(t, inv.Hash)
		assert.Empty(t, inv.HashControl)
	}
}

func TestMapAuditFile_EscolaEmFalta(t *testing.T) {
	in := mapperInputFixture()
	in.Company = nil

	_, err := export.MapAuditFile(in)
	assert.Error(t, err)
}

func TestMapAuditFile_RecibosEspelhamAsFacturas(t *testing.T) {
	af, err := export.MapAuditFile(mapperInputFixture())
	require.NoError(t, err)

	require.Len(t, af.SourceDocuments.Payments, 2)
	rc := af.SourceDocuments.Payments[0]
	assert.Equal(t, agt.PaymentTypeRC, rc.PaymentType)
	assert.Equal(t, "FT 2024/1", rc.Lines[0].OriginatingON)
	assert.Equal(t, agt.PaymentMechanismCash, rc.PaymentMethods[0].PaymentMechanism)
	// Recibos não liquidam imposto: líquido igual ao bruto.
	assert.True(t, rc.DocumentTotals.TaxPayable.IsZero())
	assert.True(t, rc.DocumentTotals.NetTotal.Equal(rc.DocumentTotals.GrossTotal))
}
