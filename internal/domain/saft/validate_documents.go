package saft

import (
	"fmt"
	"regexp"
	"time"

	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
	"github.com/shopspring/decimal"
)

// totalsTolerance tolerância absoluta na verificação Gross = Net + Tax.
var totalsTolerance = decimal.NewFromFloat(0.01)

// invoiceNoFormat formato recomendado "SÉRIE AAAA/NÚMERO" (ex: "FT 2024/17").
// O desvio gera aviso, não erro: séries legadas continuam exportáveis.
var invoiceNoFormat = regexp.MustCompile(`^[A-Z][A-Z0-9]* [0-9]{4}/[0-9]+$`)

// validateInvoices corre as regras de documento sobre as facturas.
// customerIDs e productCodes são os sets do MasterFiles, para verificação
// de referências cruzadas.
func validateInvoices(docs SourceDocuments, customerIDs, productCodes map[string]bool, now time.Time) partial {
	var p partial

	if docs.NumberOfInvoiceEntries != len(docs.Invoices) {
		p.errorf("INVOICE_ENTRIES_MISMATCH", "sourceDocuments.numberOfEntries",
			"NumberOfEntries declara %d facturas mas o ficheiro contém %d", docs.NumberOfInvoiceEntries, len(docs.Invoices))
	}

	seen := make(map[string]bool, len(docs.Invoices))
	for i, inv := range docs.Invoices {
		field := fieldIndex("sourceDocuments.invoices", i)

		if inv.InvoiceNo == "" {
			p.errorf("INVOICE_NUMBER_REQUIRED", field, "factura sem número")
		} else {
			if seen[inv.InvoiceNo] {
				p.errorf("INVOICE_NUMBER_DUPLICATE", field, "número de factura %q duplicado", inv.InvoiceNo)
			} else {
				seen[inv.InvoiceNo] = true
			}
			if !invoiceNoFormat.MatchString(inv.InvoiceNo) {
				p.warnf("INVOICE_NUMBER_FORMAT", field, "número %q fora do formato recomendado \"SÉRIE AAAA/NÚMERO\"", inv.InvoiceNo)
			}
		}

		if inv.InvoiceDate.IsZero() {
			p.errorf("INVOICE_DATE_REQUIRED", field, "factura %q sem data", inv.InvoiceNo)
		} else if inv.InvoiceDate.After(now) {
			p.errorf("INVOICE_DATE_INVALID", field, "factura %q com data futura %s", inv.InvoiceNo, inv.InvoiceDate.Format(dateISO))
		}
		if inv.Period != 0 && (inv.Period < 1 || inv.Period > 12) {
			p.errorf("INVOICE_PERIOD_INVALID", field, "factura %q com período %d fora de 1-12", inv.InvoiceNo, inv.Period)
		}

		if inv.InvoiceType == "" {
			p.errorf("INVOICE_TYPE_REQUIRED", field, "factura %q sem tipo de documento", inv.InvoiceNo)
		} else if !agt.ValidInvoiceTypes[inv.InvoiceType] {
			p.errorf("INVOICE_TYPE_INVALID", field, "factura %q com tipo desconhecido %q", inv.InvoiceNo, inv.InvoiceType)
		}

		if inv.Hash == "" {
			p.errorf("INVOICE_HASH_REQUIRED", field, "factura %q sem hash da cadeia", inv.InvoiceNo)
		}

		if inv.CustomerID == "" {
			p.errorf("INVOICE_CUSTOMER_REQUIRED", field, "factura %q sem cliente", inv.InvoiceNo)
		} else if !customerIDs[inv.CustomerID] {
			p.errorf("INVOICE_CUSTOMER_UNKNOWN", field, "factura %q referencia cliente inexistente %q", inv.InvoiceNo, inv.CustomerID)
		}

		if len(inv.Lines) == 0 {
			p.errorf("INVOICE_LINES_REQUIRED", field, "factura %q sem linhas", inv.InvoiceNo)
		}
		for j, line := range inv.Lines {
			lineField := fmt.Sprintf("%s.lines[%d]", field, j)
			validateLine(&p, inv.InvoiceNo, line, productCodes, lineField)
		}

		validateTotals(&p, inv.InvoiceNo, inv.DocumentTotals, field)
	}
	return p
}

func validateLine(p *partial, docNo string, line Line, productCodes map[string]bool, field string) {
	if line.LineNumber <= 0 {
		p.errorf("LINE_NUMBER_REQUIRED", field, "documento %q com linha sem número", docNo)
	}
	if line.ProductCode == "" {
		p.errorf("LINE_PRODUCT_REQUIRED", field, "documento %q com linha sem código de produto", docNo)
	} else if !productCodes[line.ProductCode] {
		p.errorf("LINE_PRODUCT_UNKNOWN", field, "documento %q referencia produto inexistente %q", docNo, line.ProductCode)
	}
	if line.Description == "" {
		p.errorf("LINE_DESCRIPTION_REQUIRED", field, "documento %q com linha sem descrição", docNo)
	}
	if !line.Quantity.IsPositive() {
		p.errorf("LINE_QUANTITY_INVALID", field, "documento %q com quantidade %s (deve ser > 0)", docNo, line.Quantity.String())
	}
	if line.UnitPrice.IsNegative() {
		p.errorf("LINE_UNIT_PRICE_INVALID", field, "documento %q com preço unitário negativo %s", docNo, line.UnitPrice.String())
	}
}

// validateTotals verifica não-negatividade e a invariante Gross = Net + Tax (±0.01).
func validateTotals(p *partial, docNo string, t DocumentTotals, field string) {
	if t.TaxPayable.IsNegative() {
		p.errorf("TOTALS_TAX_INVALID", field, "documento %q com imposto negativo %s", docNo, t.TaxPayable.String())
	}
	if t.NetTotal.IsNegative() {
		p.errorf("TOTALS_NET_INVALID", field, "documento %q com total líquido negativo %s", docNo, t.NetTotal.String())
	}
	expected := t.NetTotal.Add(t.TaxPayable)
	if t.GrossTotal.Sub(expected).Abs().GreaterThan(totalsTolerance) {
		p.errorf("INVOICE_TOTALS_INCONSISTENT", field,
			"documento %q: GrossTotal %s difere de NetTotal + TaxPayable = %s",
			docNo, t.GrossTotal.Round(2).StringFixed(2), expected.Round(2).StringFixed(2))
	}
}

// validatePayments espelha as regras de factura nos recibos: unicidade de
// referência, datas, mecanismos de pagamento, linhas e totais.
func validatePayments(docs SourceDocuments, customerIDs map[string]bool, invoiceNos map[string]bool, now time.Time) partial {
	var p partial

	if docs.NumberOfPaymentEntries != len(docs.Payments) {
		p.errorf("PAYMENT_ENTRIES_MISMATCH", "sourceDocuments.payments.numberOfEntries",
			"NumberOfEntries declara %d recibos mas o ficheiro contém %d", docs.NumberOfPaymentEntries, len(docs.Payments))
	}

	seen := make(map[string]bool, len(docs.Payments))
	for i, pay := range docs.Payments {
		field := fieldIndex("sourceDocuments.payments", i)

		if pay.PaymentRefNo == "" {
			p.errorf("PAYMENT_NUMBER_REQUIRED", field, "recibo sem referência")
		} else if seen[pay.PaymentRefNo] {
			p.errorf("PAYMENT_NUMBER_DUPLICATE", field, "referência de recibo %q duplicada", pay.PaymentRefNo)
		} else {
			seen[pay.PaymentRefNo] = true
		}

		if pay.TransactionDate.IsZero() {
			p.errorf("PAYMENT_DATE_REQUIRED", field, "recibo %q sem data", pay.PaymentRefNo)
		} else if pay.TransactionDate.After(now) {
			p.errorf("PAYMENT_DATE_INVALID", field, "recibo %q com data futura %s", pay.PaymentRefNo, pay.TransactionDate.Format(dateISO))
		}

		if pay.CustomerID == "" {
			p.errorf("PAYMENT_CUSTOMER_REQUIRED", field, "recibo %q sem cliente", pay.PaymentRefNo)
		} else if !customerIDs[pay.CustomerID] {
			p.errorf("PAYMENT_CUSTOMER_UNKNOWN", field, "recibo %q referencia cliente inexistente %q", pay.PaymentRefNo, pay.CustomerID)
		}

		if len(pay.PaymentMethods) == 0 {
			p.errorf("PAYMENT_METHOD_REQUIRED", field, "recibo %q sem meio de pagamento", pay.PaymentRefNo)
		}
		for _, m := range pay.PaymentMethods {
			if !agt.ValidPaymentMechanisms[m.PaymentMechanism] {
				p.errorf("PAYMENT_MECHANISM_INVALID", field, "recibo %q com mecanismo desconhecido %q", pay.PaymentRefNo, m.PaymentMechanism)
			}
			if m.PaymentAmount.IsNegative() {
				p.errorf("PAYMENT_AMOUNT_INVALID", field, "recibo %q com montante negativo %s", pay.PaymentRefNo, m.PaymentAmount.String())
			}
		}

		if len(pay.Lines) == 0 {
			p.errorf("PAYMENT_LINES_REQUIRED", field, "recibo %q sem linhas", pay.PaymentRefNo)
		}
		for j, line := range pay.Lines {
			lineField := fmt.Sprintf("%s.lines[%d]", field, j)
			if line.LineNumber <= 0 {
				p.errorf("LINE_NUMBER_REQUIRED", lineField, "recibo %q com linha sem número", pay.PaymentRefNo)
			}
			if line.OriginatingON == "" {
				p.errorf("PAYMENT_ORIGIN_REQUIRED", lineField, "recibo %q com linha sem documento de origem", pay.PaymentRefNo)
			} else if len(invoiceNos) > 0 && !invoiceNos[line.OriginatingON] {
				p.warnf("PAYMENT_ORIGIN_UNKNOWN", lineField, "recibo %q referencia factura %q fora do período exportado", pay.PaymentRefNo, line.OriginatingON)
			}
		}

		validateTotals(&p, pay.PaymentRefNo, pay.DocumentTotals, field)
	}
	return p
}

func fieldIndex(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}
