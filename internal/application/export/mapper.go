// Mapeamento dos registos do domínio escolar para o modelo intermédio SAFT-AO.
// Funções puras: sem I/O, sem relógio implícito, sem acesso a repositórios;
// os colaboradores de persistência correm antes do mapeamento.

package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/entity"
	"github.com/emanuel-malungo/systemSchool-sub001/internal/domain/saft"
	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
	"github.com/shopspring/decimal"
)

// SoftwareInfo dados do software certificado para o Header do ficheiro.
type SoftwareInfo struct {
	ProductID         string
	ProductVersion    string
	CertificateNumber string
	CompanyNIF        string // NIF do produtor do software
}

// Options período e secções de uma exportação.
type Options struct {
	StartDate        time.Time
	EndDate          time.Time
	IncludeCustomers bool
	IncludeProducts  bool
	IncludeInvoices  bool
	IncludePayments  bool
}

// MapperInput registos já carregados pelos colaboradores externos.
type MapperInput struct {
	Company  *entity.Company
	Software SoftwareInfo
	Students []*entity.Student
	Services []*entity.Service
	Payments []*entity.Payment
	Options  Options
	Now      time.Time // momento da criação do ficheiro (injectado: mapeamento determinista)
}

// MapAuditFile constrói a estrutura AuditFile a partir dos registos de origem.
//
// Os identificadores (CustomerID, ProductCode, InvoiceNo) derivam
// deterministicamente das chaves primárias de origem: mapear duas vezes a
// mesma entrada produz exactamente os mesmos IDs (reexportação idempotente).
// Hash e HashControl ficam vazios e são preenchidos pela cadeia de assinatura.
func MapAuditFile(in MapperInput) (*saft.AuditFile, error) {
	if in.Company == nil {
		return nil, fmt.Errorf("export: dados da escola em falta")
	}

	af := &saft.AuditFile{
		Header: mapHeader(in.Company, in.Software, in.Options, in.Now),
	}

	if in.Options.IncludeCustomers {
		af.MasterFiles.Customers = mapCustomers(in.Students)
	}
	if in.Options.IncludeProducts {
		af.MasterFiles.Products = mapProducts(in.Services)
	}
	af.MasterFiles.TaxTable = mapTaxTable()

	services := make(map[string]*entity.Service, len(in.Services))
	for _, s := range in.Services {
		services[s.ID] = s
	}
	students := make(map[string]*entity.Student, len(in.Students))
	for _, s := range in.Students {
		students[s.ID] = s
	}

	payments := paymentsInPeriod(in.Payments, in.Options.StartDate, in.Options.EndDate)

	if in.Options.IncludeInvoices {
		af.SourceDocuments.Invoices = mapInvoices(payments, students, services)
		af.SourceDocuments.NumberOfInvoiceEntries = len(af.SourceDocuments.Invoices)
		af.SourceDocuments.TotalDebit = decimal.Zero
		af.SourceDocuments.TotalCredit = sumCredit(af.SourceDocuments.Invoices)
	}
	if in.Options.IncludePayments {
		af.SourceDocuments.Payments = mapPayments(payments, students)
		af.SourceDocuments.NumberOfPaymentEntries = len(af.SourceDocuments.Payments)
		af.SourceDocuments.PaymentTotalDebit = decimal.Zero
		af.SourceDocuments.PaymentTotalCredit = sumPaymentCredit(af.SourceDocuments.Payments)
	}

	return af, nil
}

func mapHeader(c *entity.Company, sw SoftwareInfo, opts Options, now time.Time) saft.Header {
	return saft.Header{
		AuditFileVersion:   agt.AuditFileVersion,
		CompanyID:          c.NIF,
		TaxRegistrationNum: c.NIF,
		TaxAccountingBasis: agt.TaxAccountingBasisInvoicing,
		CompanyName:        c.Name,
		CompanyAddress: saft.Address{
			AddressDetail: c.Address,
			City:          c.City,
			PostalCode:    c.PostalCode,
			Province:      c.Province,
			Country:       agt.CountryAO,
		},
		FiscalYear:         opts.StartDate.Year(),
		StartDate:          opts.StartDate,
		EndDate:            opts.EndDate,
		CurrencyCode:       agt.CurrencyAOA,
		DateCreated:        now,
		TaxEntity:          agt.TaxEntityGlobal,
		ProductCompanyNIF:  sw.CompanyNIF,
		SoftwareCertNumber: sw.CertificateNumber,
		ProductID:          sw.ProductID,
		ProductVersion:     sw.ProductVersion,
	}
}

// customerID deriva o CustomerID do número de estudante (fallback: chave primária).
func customerID(s *entity.Student) string {
	if s.Code != "" {
		return s.Code
	}
	return s.ID
}

// productCode deriva o ProductCode do código da rubrica (fallback: chave primária).
func productCode(s *entity.Service) string {
	if s.Code != "" {
		return s.Code
	}
	return s.ID
}

func mapCustomers(students []*entity.Student) []saft.Customer {
	out := make([]saft.Customer, 0, len(students))
	for _, s := range students {
		name := s.Name
		if s.GuardianName != "" {
			name = s.GuardianName
		}
		// Morada de facturação é obrigatória no esquema; registos de
		// secretaria sem morada saem com "Desconhecido".
		addr := s.Address
		if addr == "" {
			addr = "Desconhecido"
		}
		city := s.City
		if city == "" {
			city = "Desconhecido"
		}
		out = append(out, saft.Customer{
			CustomerID:    customerID(s),
			AccountID:     "Desconhecido",
			CustomerTaxID: s.NIF,
			CompanyName:   name,
			BillingAddress: saft.Address{
				AddressDetail: addr,
				City:          city,
				PostalCode:    s.PostalCode,
				Province:      s.Province,
				Country:       agt.CountryAO,
			},
			Telephone: s.Phone,
			Email:     s.Email,
		})
	}
	return out
}

func mapProducts(services []*entity.Service) []saft.Product {
	out := make([]saft.Product, 0, len(services))
	for _, s := range services {
		pType := s.Type
		if pType == "" {
			pType = agt.ProductTypeService
		}
		desc := s.Description
		if desc == "" {
			desc = s.Name
		}
		code := productCode(s)
		out = append(out, saft.Product{
			ProductType:       pType,
			ProductCode:       code,
			ProductGroup:      s.Group,
			ProductDesc:       desc,
			ProductNumberCode: code,
		})
	}
	return out
}

func mapTaxTable() []saft.TaxTableEntry {
	seed := agt.TaxTableSeed()
	out := make([]saft.TaxTableEntry, 0, len(seed))
	for _, e := range seed {
		out = append(out, saft.TaxTableEntry{
			TaxType:       e.TaxType,
			CountryRegion: e.CountryRegion,
			TaxCode:       e.TaxCode,
			Description:   e.Description,
			Percentage:    e.Percentage,
		})
	}
	return out
}

// paymentsInPeriod filtra por data e garante a ordem de documento
// (número de recibo ascendente), que é a ordem da cadeia de hashes.
func paymentsInPeriod(payments []*entity.Payment, start, end time.Time) []*entity.Payment {
	var out []*entity.Payment
	for _, p := range payments {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Year() != out[j].Date.Year() {
			return out[i].Date.Year() < out[j].Date.Year()
		}
		return out[i].ReceiptNumber < out[j].ReceiptNumber
	})
	return out
}

// invoiceNo número de documento derivado do recibo: "FT AAAA/NÚMERO".
func invoiceNo(p *entity.Payment) string {
	return fmt.Sprintf("%s %d/%d", agt.InvoiceTypeFT, p.Date.Year(), p.ReceiptNumber)
}

// paymentRefNo referência do recibo SAFT: "RC AAAA/NÚMERO".
func paymentRefNo(p *entity.Payment) string {
	return fmt.Sprintf("%s %d/%d", agt.PaymentTypeRC, p.Date.Year(), p.ReceiptNumber)
}

func documentStatus(p *entity.Payment) saft.DocumentStatus {
	status := agt.DocumentStatusNormal
	if p.Status == entity.PaymentStatusCancelled {
		status = agt.DocumentStatusCancelled
	}
	statusDate := p.StatusDate
	if statusDate.IsZero() {
		statusDate = p.Date
	}
	return saft.DocumentStatus{
		Status:        status,
		StatusDate:    statusDate,
		SourceID:      p.UserID,
		SourceBilling: agt.SourceBillingProduced,
	}
}

// lineTax enquadramento fiscal da linha a partir da rubrica. Rubrica sem
// enquadramento conhecido mapeia para o código de isenção a 0% com o motivo
// por omissão.
func lineTax(svc *entity.Service, net decimal.Decimal) (saft.LineTax, string) {
	if svc != nil && svc.TaxCode == agt.TaxCodeNormal {
		return saft.LineTax{
			TaxType:       agt.TaxTypeIVA,
			CountryRegion: agt.CountryAO,
			TaxCode:       agt.TaxCodeNormal,
			Percentage:    agt.IVARateNormal,
			Amount:        net.Mul(agt.IVARateNormal).Div(hundred).Round(2),
		}, ""
	}
	return saft.LineTax{
		TaxType:       agt.TaxTypeIVA,
		CountryRegion: agt.CountryAO,
		TaxCode:       agt.TaxCodeExempt,
		Percentage:    decimal.Zero,
		Amount:        decimal.Zero,
	}, agt.ExemptionReasonDefault
}

var hundred = decimal.NewFromInt(100)

func mapInvoices(payments []*entity.Payment, students map[string]*entity.Student, services map[string]*entity.Service) []saft.Invoice {
	out := make([]saft.Invoice, 0, len(payments))
	for _, p := range payments {
		inv := saft.Invoice{
			InvoiceNo:       invoiceNo(p),
			DocumentStatus:  documentStatus(p),
			Period:          int(p.Date.Month()),
			InvoiceDate:     p.Date,
			InvoiceType:     agt.InvoiceTypeFT,
			SourceID:        p.UserID,
			SystemEntryDate: p.CreatedAt,
			CustomerID:      invoiceCustomerID(p, students),
		}

		var net, tax decimal.Decimal
		for i, item := range p.Items {
			svc := services[item.ServiceID]
			lineNet := item.Total
			if lineNet.IsZero() {
				lineNet = item.Quantity.Mul(item.UnitPrice).Round(2)
			}
			lt, exemption := lineTax(svc, lineNet)

			line := saft.Line{
				LineNumber:      i + 1,
				ProductDesc:     itemDescription(item, svc),
				Quantity:        item.Quantity,
				UnitOfMeasure:   agt.UnitOfMeasureDefault,
				UnitPrice:       item.UnitPrice,
				Description:     itemDescription(item, svc),
				CreditAmount:    lineNet,
				Tax:             lt,
				TaxExemptReason: exemption,
			}
			if svc != nil {
				line.ProductCode = productCode(svc)
			} else {
				line.ProductCode = item.ServiceID
			}
			inv.Lines = append(inv.Lines, line)

			net = net.Add(lineNet)
			tax = tax.Add(lt.Amount)
		}

		inv.DocumentTotals = saft.DocumentTotals{
			TaxPayable: tax.Round(2),
			NetTotal:   net.Round(2),
			GrossTotal: net.Add(tax).Round(2),
		}
		out = append(out, inv)
	}
	return out
}

func invoiceCustomerID(p *entity.Payment, students map[string]*entity.Student) string {
	if s, ok := students[p.StudentID]; ok {
		return customerID(s)
	}
	return p.StudentID
}

func itemDescription(item entity.PaymentItem, svc *entity.Service) string {
	if item.Description != "" {
		return item.Description
	}
	if svc != nil {
		return svc.Name
	}
	return "Rubrica " + item.ServiceID
}

func mapPayments(payments []*entity.Payment, students map[string]*entity.Student) []saft.Payment {
	out := make([]saft.Payment, 0, len(payments))
	for _, p := range payments {
		gross := p.Amount
		if gross.IsZero() {
			for _, item := range p.Items {
				gross = gross.Add(item.Total)
			}
		}
		mechanism := p.Method
		if !agt.ValidPaymentMechanisms[mechanism] {
			mechanism = agt.PaymentMechanismOther
		}

		out = append(out, saft.Payment{
			PaymentRefNo:    paymentRefNo(p),
			TransactionDate: p.Date,
			PaymentType:     agt.PaymentTypeRC,
			DocumentStatus:  documentStatus(p),
			PaymentMethods: []saft.PaymentMethod{{
				PaymentMechanism: mechanism,
				PaymentAmount:    gross.Round(2),
				PaymentDate:      p.Date,
			}},
			SourceID:        p.UserID,
			SystemEntryDate: p.CreatedAt,
			CustomerID:      invoiceCustomerID(p, students),
			Lines: []saft.PaymentLine{{
				LineNumber:    1,
				OriginatingON: invoiceNo(p),
				InvoiceDate:   p.Date,
				CreditAmount:  gross.Round(2),
			}},
			DocumentTotals: saft.DocumentTotals{
				TaxPayable: decimal.Zero,
				NetTotal:   gross.Round(2),
				GrossTotal: gross.Round(2),
			},
		})
	}
	return out
}

// sumCredit soma o total dos documentos normais; anulados não contam.
func sumCredit(invoices []saft.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.DocumentStatus.Status == agt.DocumentStatusNormal {
			total = total.Add(inv.DocumentTotals.GrossTotal)
		}
	}
	return total
}

func sumPaymentCredit(payments []saft.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.DocumentStatus.Status == agt.DocumentStatusNormal {
			total = total.Add(p.DocumentTotals.GrossTotal)
		}
	}
	return total
}
