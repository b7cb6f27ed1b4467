package agt_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/saft"
	infraagt "github.com/emanuel-malungo/systemSchool-sub001/internal/infrastructure/agt"
	pkgagt "github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
)

func auditFileFixture() *saft.AuditFile {
	gross := decimal.NewFromInt(50000)
	return &saft.AuditFile{
		Header: saft.Header{
			AuditFileVersion:   pkgagt.AuditFileVersion,
			CompanyID:          "500008884",
			TaxRegistrationNum: "500008884",
			TaxAccountingBasis: pkgagt.TaxAccountingBasisInvoicing,
			CompanyName:        "Colégio Horizonte Azul",
			CompanyAddress: saft.Address{
				AddressDetail: "Rua da Missão, 24",
				City:          "Luanda",
				Country:       pkgagt.CountryAO,
			},
			FiscalYear:         2024,
			StartDate:          time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:            time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			CurrencyCode:       pkgagt.CurrencyAOA,
			DateCreated:        time.Date(2024, time.February, 1, 10, 30, 0, 0, time.UTC),
			TaxEntity:          pkgagt.TaxEntityGlobal,
			ProductCompanyNIF:  "123456789",
			SoftwareCertNumber: "312/AGT/2024",
			ProductID:          "SystemSchool",
			ProductVersion:     "1.0",
		},
		MasterFiles: saft.MasterFiles{
			Customers: []saft.Customer{{
				CustomerID:    "AL001",
				AccountID:     "Desconhecido",
				CustomerTaxID: "540212989",
				CompanyName:   "Maria dos Santos",
				BillingAddress: saft.Address{
					AddressDetail: "Bairro Maianga",
					City:          "Luanda",
					Country:       pkgagt.CountryAO,
				},
			}},
			Products: []saft.Product{{
				ProductType:       pkgagt.ProductTypeService,
				ProductCode:       "PROP",
				ProductDesc:       "Propina mensal",
				ProductNumberCode: "PROP",
			}},
			TaxTable: []saft.TaxTableEntry{{
				TaxType:       pkgagt.TaxTypeIVA,
				CountryRegion: pkgagt.CountryAO,
				TaxCode:       pkgagt.TaxCodeExempt,
				Description:   "Isento",
				Percentage:    decimal.Zero,
			}},
		},
		SourceDocuments: saft.SourceDocuments{
			NumberOfInvoiceEntries: 1,
			TotalDebit:             decimal.Zero,
			TotalCredit:            gross,
			Invoices: []saft.Invoice{{
				InvoiceNo: "FT 2024/1",
				DocumentStatus: saft.DocumentStatus{
					Status:        pkgagt.DocumentStatusNormal,
					StatusDate:    time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
					SourceID:      "op1",
					SourceBilling: pkgagt.SourceBillingProduced,
				},
				Hash:            "ABCD",
				HashControl:     "c2ln",
				Period:          1,
				InvoiceDate:     time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
				InvoiceType:     pkgagt.InvoiceTypeFT,
				SourceID:        "op1",
				SystemEntryDate: time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
				CustomerID:      "AL001",
				Lines: []saft.Line{{
					LineNumber:      1,
					ProductCode:     "PROP",
					ProductDesc:     "Propina mensal",
					Quantity:        decimal.NewFromInt(1),
					UnitOfMeasure:   pkgagt.UnitOfMeasureDefault,
					UnitPrice:       gross,
					Description:     "Propina Janeiro 2024",
					CreditAmount:    gross,
					Tax:             saft.LineTax{TaxType: pkgagt.TaxTypeIVA, CountryRegion: pkgagt.CountryAO, TaxCode: pkgagt.TaxCodeExempt},
					TaxExemptReason: pkgagt.ExemptionReasonDefault,
				}},
				DocumentTotals: saft.DocumentTotals{
					TaxPayable: decimal.Zero,
					NetTotal:   gross,
					GrossTotal: gross,
				},
			}},
			NumberOfPaymentEntries: 1,
			PaymentTotalDebit:      decimal.Zero,
			PaymentTotalCredit:     gross,
			Payments: []saft.Payment{{
				PaymentRefNo:    "RC 2024/1",
				TransactionDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
				PaymentType:     pkgagt.PaymentTypeRC,
				DocumentStatus: saft.DocumentStatus{
					Status:        pkgagt.DocumentStatusNormal,
					StatusDate:    time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
					SourceID:      "op1",
					SourceBilling: pkgagt.SourceBillingProduced,
				},
				PaymentMethods: []saft.PaymentMethod{{
					PaymentMechanism: pkgagt.PaymentMechanismCash,
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
			}},
		},
	}
}

func TestSerialize_IdaEVoltaDoHeader(t *testing.T) {
	xmlBytes := infraagt.NewXMLBuilderService().Serialize(auditFileFixture())

	summary, err := infraagt.InspectDocument(xmlBytes)
	require.NoError(t, err)

	assert.Equal(t, pkgagt.AuditFileVersion, summary.AuditFileVersion)
	assert.Equal(t, "500008884", summary.CompanyID)
	assert.Equal(t, "500008884", summary.TaxRegistration)
	assert.Equal(t, "Colégio Horizonte Azul", summary.CompanyName)
	assert.Equal(t, "2024-01-01", summary.StartDate)
	assert.Equal(t, "2024-01-31", summary.EndDate)
	assert.Equal(t, pkgagt.CurrencyAOA, summary.CurrencyCode)
	assert.Equal(t, 1, summary.InvoiceCount)
	assert.Equal(t, 1, summary.PaymentCount)
}

func TestSerialize_Determinista(t *testing.T) {
	svc := infraagt.NewXMLBuilderService()
	af := auditFileFixture()

	a := svc.Serialize(af)
	b := svc.Serialize(af)
	assert.Equal(t, a, b, "as duas serializações devem ser byte a byte iguais")
}

func TestSerialize_DeclaracaoENamespace(t *testing.T) {
	out := string(infraagt.NewXMLBuilderService().Serialize(auditFileFixture()))

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<AuditFile xmlns="urn:OECD:StandardAuditFile-Tax:AO_1.04_01">`)
}

func TestSerialize_MontantesComDuasCasas(t *testing.T) {
	out := string(infraagt.NewXMLBuilderService().Serialize(auditFileFixture()))

	assert.Contains(t, out, "<GrossTotal>50000.00</GrossTotal>")
	assert.Contains(t, out, "<TaxPayable>0.00</TaxPayable>")
	assert.Contains(t, out, "<TotalDebit>0.00</TotalDebit>")
	assert.NotContains(t, out, "50,000", "sem separador de milhares")
}

func TestSerialize_EscapaCaracteresEspeciais(t *testing.T) {
	af := auditFileFixture()
	af.Header.CompanyName = `Colégio "Esperança" & Filhos <Lda>`

	out := string(infraagt.NewXMLBuilderService().Serialize(af))

	assert.Contains(t, out, "Colégio &#34;Esperança&#34; &amp; Filhos &lt;Lda&gt;")

	summary, err := infraagt.InspectDocument(infraagt.NewXMLBuilderService().Serialize(af))
	require.NoError(t, err)
	assert.Equal(t, `Colégio "Esperança" & Filhos <Lda>`, summary.CompanyName, "a releitura recupera o texto original")
}

func TestSerialize_OpcionaisOmitidos(t *testing.T) {
	af := auditFileFixture()
	af.MasterFiles.Customers[0].CustomerTaxID = ""
	af.MasterFiles.Customers[0].Telephone = ""

	out := string(infraagt.NewXMLBuilderService().Serialize(af))

	assert.NotContains(t, out, "<CustomerTaxID>")
	assert.NotContains(t, out, "<Telephone>")
	// Obrigatórios vazios saem como elemento vazio, não desaparecem.
	af.Header.CompanyName = ""
	out = string(infraagt.NewXMLBuilderService().Serialize(af))
	assert.Contains(t, out, "<CompanyName></CompanyName>")
}

func TestSerialize_NuncaFalha(t *testing.T) {
	svc := infraagt.NewXMLBuilderService()

	assert.NotPanics(t, func() {
		out := svc.Serialize(nil)
		assert.Contains(t, string(out), "<AuditFile")
	})
	assert.NotPanics(t, func() {
		svc.Serialize(&saft.AuditFile{})
	})
}

func TestSerialize_OrdemDosElementos(t *testing.T) {
	out := string(infraagt.NewXMLBuilderService().Serialize(auditFileFixture()))

	header := strings.Index(out, "<Header>")
	master := strings.Index(out, "<MasterFiles>")
	source := strings.Index(out, "<SourceDocuments>")
	require.True(t, header >= 0 && master >= 0 && source >= 0)
	assert.Less(t, header, master)
	assert.Less(t, master, source)

	// Dentro do Header a ordem do esquema é fixa.
	version := strings.Index(out, "<AuditFileVersion>")
	company := strings.Index(out, "<CompanyID>")
	fiscal := strings.Index(out, "<FiscalYear>")
	assert.Less(t, version, company)
	assert.Less(t, company, fiscal)
}

func TestDocumentDigest_EstavelEReagindoAoConteudo(t *testing.T) {
	svc := infraagt.NewXMLBuilderService()
	af := auditFileFixture()

	a, err := infraagt.DocumentDigest(svc.Serialize(af))
	require.NoError(t, err)
	b, err := infraagt.DocumentDigest(svc.Serialize(af))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	af.SourceDocuments.Invoices[0].DocumentTotals.GrossTotal = decimal.NewFromInt(1)
	c, err := infraagt.DocumentDigest(svc.Serialize(af))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestInspectDocument_XMLInvalido(t *testing.T) {
	_, err := infraagt.InspectDocument([]byte("isto não é XML"))
	assert.Error(t, err)

	_, err = infraagt.InspectDocument([]byte(`<?xml version="1.0"?><Outro/>`))
	assert.Error(t, err)
}
