// Motor de validação estrutural do SAFT-AO.
// Cada sub-validador é uma função pura que devolve o seu próprio par
// (erros, avisos); o nível de topo é um fold sobre todos eles. Nenhum
// sub-validador interrompe os restantes: uma única chamada devolve a
// lista completa de defeitos do ficheiro.

package saft

import (
	"time"

	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
)

// Validator valida estruturas AuditFile. Puro, determinista e só de leitura.
type Validator struct {
	verifier agt.Verifier // pode ser nil: sem verificação de assinaturas
	now      func() time.Time
}

// NewValidator cria o validador. verifier é a chave pública da cadeia de
// hashes; com nil a validação corre standalone, sem verificar assinaturas.
func NewValidator(verifier agt.Verifier) *Validator {
	return &Validator{verifier: verifier, now: time.Now}
}

// Validate corre todos os sub-validadores sobre a estrutura e agrega os
// resultados. Erros tornam o ficheiro inexportável; avisos não.
func (v *Validator) Validate(af *AuditFile) ValidationResult {
	if af == nil {
		var p partial
		p.errorf("AUDITFILE_REQUIRED", "", "estrutura AuditFile nula")
		return merge(p)
	}
	now := v.now()

	// Sets de referência construídos uma única vez para as verificações cruzadas.
	customerIDs := make(map[string]bool, len(af.MasterFiles.Customers))
	for _, c := range af.MasterFiles.Customers {
		customerIDs[c.CustomerID] = true
	}
	productCodes := make(map[string]bool, len(af.MasterFiles.Products))
	for _, pr := range af.MasterFiles.Products {
		productCodes[pr.ProductCode] = true
	}
	invoiceNos := make(map[string]bool, len(af.SourceDocuments.Invoices))
	for _, inv := range af.SourceDocuments.Invoices {
		invoiceNos[inv.InvoiceNo] = true
	}

	return merge(
		validateHeader(af.Header, now),
		validateCustomers(af.MasterFiles.Customers),
		validateProducts(af.MasterFiles.Products),
		validateTaxTable(af.MasterFiles.TaxTable),
		validateInvoices(af.SourceDocuments, customerIDs, productCodes, now),
		validatePayments(af.SourceDocuments, customerIDs, invoiceNos, now),
		validateIntegrity(af.SourceDocuments.Invoices, v.verifier),
	)
}
