package saft

import (
	"fmt"

	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
)

// dateISO formato das datas na cadeia de hashes e no XML.
const dateISO = "2006-01-02"

// SignChain percorre as facturas pela ordem dada (ordem de documento), calcula
// o hash encadeado de cada uma e assina-o com a chave privada do signer.
//
// A cadeia é estritamente sequencial: o hash de cada documento incorpora o do
// anterior, começando na string vazia. Por isso não há paralelismo dentro de
// uma cadeia; exportações de períodos distintos são independentes entre si.
//
// Devolve uma NOVA slice com cópias das facturas já com Hash e HashControl
// preenchidos; a slice de entrada não é alterada, para que possa ser reutilizada
// em novas tentativas sem aliasing escondido.
func SignChain(invoices []Invoice, signer agt.Signer) ([]Invoice, error) {
	out := make([]Invoice, len(invoices))
	previousHash := ""
	for i, inv := range invoices {
		hash := DocumentHash(inv.InvoiceNo, inv.InvoiceDate.Format(dateISO), inv.DocumentTotals.GrossTotal, previousHash)
		signature, err := signer.Sign(hash)
		if err != nil {
			return nil, fmt.Errorf("saft: assinar hash da factura %s: %w", inv.InvoiceNo, err)
		}
		inv.Hash = hash
		inv.HashControl = signature
		out[i] = inv
		previousHash = hash
	}
	return out, nil
}

// SignPayments é o homólogo para recibos. Os recibos não integram a cadeia de
// hashes no esquema actual; devolve cópias inalteradas pela mesma disciplina
// de imutabilidade do SignChain.
func SignPayments(payments []Payment) []Payment {
	out := make([]Payment, len(payments))
	copy(out, payments)
	return out
}
