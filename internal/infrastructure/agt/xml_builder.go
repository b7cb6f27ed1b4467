package agt

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"time"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/saft"
	pkgagt "github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Formatos de data/hora do esquema SAFT-AO.
const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02T15:04:05"
)

// XMLBuilderService serializa a estrutura AuditFile para o XML SAFT-AO
// (AO_1.04_01), com a ordem de elementos exigida pelo esquema.
//
// O serializador não valida: confia que a validação correu a montante. Uma
// vez invocado nunca falha: campos obrigatórios em falta saem com conteúdo
// vazio e campos opcionais ausentes são OMITIDOS (não emitidos vazios).
type XMLBuilderService struct{}

// NewXMLBuilderService cria o serviço.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Serialize devolve o documento completo em UTF-8, começando na declaração XML.
func (s *XMLBuilderService) Serialize(af *saft.AuditFile) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "AuditFile"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: pkgagt.NamespaceAuditFile}},
	}
	_ = enc.EncodeToken(root)

	if af != nil {
		s.writeHeader(enc, af.Header)
		s.writeMasterFiles(enc, af.MasterFiles)
		s.writeSourceDocuments(enc, af.SourceDocuments)
	}

	_ = enc.EncodeToken(root.End())
	_ = enc.Flush()
	buf.WriteByte('\n')
	return buf.Bytes()
}

func (s *XMLBuilderService) writeHeader(enc *xml.Encoder, h saft.Header) {
	open(enc, "Header")
	writeEl(enc, "AuditFileVersion", h.AuditFileVersion)
	writeEl(enc, "CompanyID", h.CompanyID)
	writeEl(enc, "TaxRegistrationNumber", h.TaxRegistrationNum)
	writeEl(enc, "TaxAccountingBasis", h.TaxAccountingBasis)
	writeEl(enc, "CompanyName", h.CompanyName)
	s.writeAddress(enc, "CompanyAddress", h.CompanyAddress)
	writeEl(enc, "FiscalYear", strconv.Itoa(h.FiscalYear))
	writeDate(enc, "StartDate", h.StartDate)
	writeDate(enc, "EndDate", h.EndDate)
	writeEl(enc, "CurrencyCode", h.CurrencyCode)
	writeDateTime(enc, "DateCreated", h.DateCreated)
	writeEl(enc, "TaxEntity", h.TaxEntity)
	writeEl(enc, "ProductCompanyTaxID", h.ProductCompanyNIF)
	writeEl(enc, "SoftwareCertificateNumber", h.SoftwareCertNumber)
	writeEl(enc, "ProductID", h.ProductID)
	writeEl(enc, "ProductVersion", h.ProductVersion)
	closeEl(enc, "Header")
}

func (s *XMLBuilderService) writeAddress(enc *xml.Encoder, local string, a saft.Address) {
	open(enc, local)
	writeEl(enc, "AddressDetail", a.AddressDetail)
	writeEl(enc, "City", a.City)
	writeOptional(enc, "PostalCode", a.PostalCode)
	writeOptional(enc, "Province", a.Province)
	writeEl(enc, "Country", a.Country)
	closeEl(enc, local)
}

func (s *XMLBuilderService) writeMasterFiles(enc *xml.Encoder, mf saft.MasterFiles) {
	open(enc, "MasterFiles")

	for _, c := range mf.Customers {
		open(enc, "Customer")
		writeEl(enc, "CustomerID", c.CustomerID)
		writeEl(enc, "AccountID", c.AccountID)
		writeOptional(enc, "CustomerTaxID", c.CustomerTaxID)
		writeEl(enc, "CompanyName", c.CompanyName)
		s.writeAddress(enc, "BillingAddress", c.BillingAddress)
		writeOptional(enc, "Telephone", c.Telephone)
		writeOptional(enc, "Email", c.Email)
		writeEl(enc, "SelfBillingIndicator", "0")
		closeEl(enc, "Customer")
	}

	for _, p := range mf.Products {
		open(enc, "Product")
		writeEl(enc, "ProductType", p.ProductType)
		writeEl(enc, "ProductCode", p.ProductCode)
		writeOptional(enc, "ProductGroup", p.ProductGroup)
		writeEl(enc, "ProductDescription", p.ProductDesc)
		writeEl(enc, "ProductNumberCode", p.ProductNumberCode)
		closeEl(enc, "Product")
	}

	if len(mf.TaxTable) > 0 {
		open(enc, "TaxTable")
		for _, t := range mf.TaxTable {
			open(enc, "TaxTableEntry")
			writeEl(enc, "TaxType", t.TaxType)
			writeEl(enc, "TaxCountryRegion", t.CountryRegion)
			writeEl(enc, "TaxCode", t.TaxCode)
			writeEl(enc, "Description", t.Description)
			writeAmount(enc, "TaxPercentage", t.Percentage)
			closeEl(enc, "TaxTableEntry")
		}
		closeEl(enc, "TaxTable")
	}

	closeEl(enc, "MasterFiles")
}

func (s *XMLBuilderService) writeSourceDocuments(enc *xml.Encoder, sd saft.SourceDocuments) {
	open(enc, "SourceDocuments")

	open(enc, "SalesInvoices")
	writeEl(enc, "NumberOfEntries", strconv.Itoa(sd.NumberOfInvoiceEntries))
	writeAmount(enc, "TotalDebit", sd.TotalDebit)
	writeAmount(enc, "TotalCredit", sd.TotalCredit)
	for i := range sd.Invoices {
		s.writeInvoice(enc, &sd.Invoices[i])
	}
	closeEl(enc, "SalesInvoices")

	open(enc, "Payments")
	writeEl(enc, "NumberOfEntries", strconv.Itoa(sd.NumberOfPaymentEntries))
	writeAmount(enc, "TotalDebit", sd.PaymentTotalDebit)
	writeAmount(enc, "TotalCredit", sd.PaymentTotalCredit)
	for i := range sd.Payments {
		s.writePayment(enc, &sd.Payments[i])
	}
	closeEl(enc, "Payments")

	closeEl(enc, "SourceDocuments")
}

func (s *XMLBuilderService) writeInvoice(enc *xml.Encoder, inv *saft.Invoice) {
	open(enc, "Invoice")
	writeEl(enc, "InvoiceNo", inv.InvoiceNo)

	open(enc, "DocumentStatus")
	writeEl(enc, "InvoiceStatus", inv.DocumentStatus.Status)
	writeDateTime(enc, "InvoiceStatusDate", inv.DocumentStatus.StatusDate)
	writeEl(enc, "SourceID", inv.DocumentStatus.SourceID)
	writeEl(enc, "SourceBilling", inv.DocumentStatus.SourceBilling)
	closeEl(enc, "DocumentStatus")

	writeEl(enc, "Hash", inv.Hash)
	writeEl(enc, "HashControl", inv.HashControl)
	if inv.Period >= 1 && inv.Period <= 12 {
		writeEl(enc, "Period", strconv.Itoa(inv.Period))
	}
	writeDate(enc, "InvoiceDate", inv.InvoiceDate)
	writeEl(enc, "InvoiceType", inv.InvoiceType)
	writeEl(enc, "SourceID", inv.SourceID)
	writeDateTime(enc, "SystemEntryDate", inv.SystemEntryDate)
	writeEl(enc, "CustomerID", inv.CustomerID)

	// Linhas na ordem original do documento, depois os totais.
	for _, line := range inv.Lines {
		open(enc, "Line")
		writeEl(enc, "LineNumber", strconv.Itoa(line.LineNumber))
		writeEl(enc, "ProductCode", line.ProductCode)
		writeEl(enc, "ProductDescription", line.ProductDesc)
		writeAmount(enc, "Quantity", line.Quantity)
		writeEl(enc, "UnitOfMeasure", line.UnitOfMeasure)
		writeAmount(enc, "UnitPrice", line.UnitPrice)
		writeEl(enc, "Description", line.Description)
		if line.DebitAmount.IsPositive() {
			writeAmount(enc, "DebitAmount", line.DebitAmount)
		} else {
			writeAmount(enc, "CreditAmount", line.CreditAmount)
		}
		open(enc, "Tax")
		writeEl(enc, "TaxType", line.Tax.TaxType)
		writeEl(enc, "TaxCountryRegion", line.Tax.CountryRegion)
		writeEl(enc, "TaxCode", line.Tax.TaxCode)
		writeAmount(enc, "TaxPercentage", line.Tax.Percentage)
		closeEl(enc, "Tax")
		writeOptional(enc, "TaxExemptionReason", line.TaxExemptReason)
		closeEl(enc, "Line")
	}

	s.writeTotals(enc, inv.DocumentTotals)
	closeEl(enc, "Invoice")
}

func (s *XMLBuilderService) writePayment(enc *xml.Encoder, pay *saft.Payment) {
	open(enc, "Payment")
	writeEl(enc, "PaymentRefNo", pay.PaymentRefNo)
	writeDate(enc, "TransactionDate", pay.TransactionDate)
	writeEl(enc, "PaymentType", pay.PaymentType)

	open(enc, "DocumentStatus")
	writeEl(enc, "PaymentStatus", pay.DocumentStatus.Status)
	writeDateTime(enc, "PaymentStatusDate", pay.DocumentStatus.StatusDate)
	writeEl(enc, "SourceID", pay.DocumentStatus.SourceID)
	writeEl(enc, "SourcePayment", pay.DocumentStatus.SourceBilling)
	closeEl(enc, "DocumentStatus")

	for _, m := range pay.PaymentMethods {
		open(enc, "PaymentMethod")
		writeEl(enc, "PaymentMechanism", m.PaymentMechanism)
		writeAmount(enc, "PaymentAmount", m.PaymentAmount)
		writeDate(enc, "PaymentDate", m.PaymentDate)
		closeEl(enc, "PaymentMethod")
	}

	writeEl(enc, "SourceID", pay.SourceID)
	writeDateTime(enc, "SystemEntryDate", pay.SystemEntryDate)
	writeEl(enc, "CustomerID", pay.CustomerID)

	for _, line := range pay.Lines {
		open(enc, "Line")
		writeEl(enc, "LineNumber", strconv.Itoa(line.LineNumber))
		open(enc, "SourceDocumentID")
		writeEl(enc, "OriginatingON", line.OriginatingON)
		writeDate(enc, "InvoiceDate", line.InvoiceDate)
		closeEl(enc, "SourceDocumentID")
		writeAmount(enc, "CreditAmount", line.CreditAmount)
		closeEl(enc, "Line")
	}

	s.writeTotals(enc, pay.DocumentTotals)
	closeEl(enc, "Payment")
}

func (s *XMLBuilderService) writeTotals(enc *xml.Encoder, t saft.DocumentTotals) {
	open(enc, "DocumentTotals")
	writeAmount(enc, "TaxPayable", t.TaxPayable)
	writeAmount(enc, "NetTotal", t.NetTotal)
	writeAmount(enc, "GrossTotal", t.GrossTotal)
	closeEl(enc, "DocumentTotals")
}

// ── helpers de escrita ────────────────────────────────────────────────────────

func open(enc *xml.Encoder, local string) {
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: local}})
}

func closeEl(enc *xml.Encoder, local string) {
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: local}})
}

// writeEl emite um elemento com texto escapado e normalizado (NFC).
// O encoding/xml escapa & < > " ' no CharData.
func writeEl(enc *xml.Encoder, local, value string) {
	open(enc, local)
	_ = enc.EncodeToken(xml.CharData(norm.NFC.String(value)))
	closeEl(enc, local)
}

// writeOptional emite o elemento apenas quando há valor: ausência é omissão,
// nunca elemento vazio.
func writeOptional(enc *xml.Encoder, local, value string) {
	if value == "" {
		return
	}
	writeEl(enc, local, value)
}

// writeAmount formata montantes/quantidades/percentagens com exactamente
// 2 casas decimais, sem separador de milhares.
func writeAmount(enc *xml.Encoder, local string, d decimal.Decimal) {
	writeEl(enc, local, d.Round(2).StringFixed(2))
}

func writeDate(enc *xml.Encoder, local string, t time.Time) {
	if t.IsZero() {
		writeEl(enc, local, "")
		return
	}
	writeEl(enc, local, t.Format(dateFormat))
}

func writeDateTime(enc *xml.Encoder, local string, t time.Time) {
	if t.IsZero() {
		writeEl(enc, local, "")
		return
	}
	writeEl(enc, local, t.Format(dateTimeFormat))
}
