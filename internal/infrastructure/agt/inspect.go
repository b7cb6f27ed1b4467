package agt

import (
	"fmt"

	"github.com/beevik/etree"
)

// HeaderSummary campos de identificação relidos de um ficheiro SAFT-AO emitido.
// Usado pelo CLI e pelos testes de ida-e-volta: serializar e reler o Header
// tem de recuperar exactamente os valores de origem.
type HeaderSummary struct {
	AuditFileVersion string
	CompanyID        string
	TaxRegistration  string
	CompanyName      string
	StartDate        string
	EndDate          string
	CurrencyCode     string
	InvoiceCount     int
	PaymentCount     int
}

// InspectDocument reparseia o XML emitido e extrai o resumo do Header.
func InspectDocument(xmlBytes []byte) (*HeaderSummary, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("agt: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "AuditFile" {
		return nil, fmt.Errorf("agt: documento sem raiz AuditFile")
	}
	header := root.SelectElement("Header")
	if header == nil {
		return nil, fmt.Errorf("agt: documento sem Header")
	}

	summary := &HeaderSummary{
		AuditFileVersion: childText(header, "AuditFileVersion"),
		CompanyID:        childText(header, "CompanyID"),
		TaxRegistration:  childText(header, "TaxRegistrationNumber"),
		CompanyName:      childText(header, "CompanyName"),
		StartDate:        childText(header, "StartDate"),
		EndDate:          childText(header, "EndDate"),
		CurrencyCode:     childText(header, "CurrencyCode"),
	}

	if sd := root.SelectElement("SourceDocuments"); sd != nil {
		if si := sd.SelectElement("SalesInvoices"); si != nil {
			summary.InvoiceCount = len(si.SelectElements("Invoice"))
		}
		if pm := sd.SelectElement("Payments"); pm != nil {
			summary.PaymentCount = len(pm.SelectElements("Payment"))
		}
	}
	return summary, nil
}

func childText(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return el.Text()
	}
	return ""
}
