package saft

import (
	"errors"

	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
)

// validateIntegrity recalcula a cadeia de hashes e reverifica as assinaturas.
// O hash de cada factura incorpora o da anterior: adulterar ou reordenar um
// documento invalida também todos os seguintes, e cada um é reportado.
// verifier pode ser nil (validação standalone sem chave pública); nesse caso
// as assinaturas não são verificadas.
func validateIntegrity(invoices []Invoice, verifier agt.Verifier) partial {
	var p partial

	previousHash := ""
	for i, inv := range invoices {
		field := fieldIndex("sourceDocuments.invoices", i)

		expected := DocumentHash(inv.InvoiceNo, inv.InvoiceDate.Format(dateISO), inv.DocumentTotals.GrossTotal, previousHash)
		if inv.Hash != expected {
			p.errorf("INTEGRITY_HASH_MISMATCH", field,
				"factura %q: hash armazenado não corresponde ao recalculado da cadeia", inv.InvoiceNo)
		}

		if verifier != nil && inv.Hash != "" {
			if err := verifier.Verify(inv.Hash, inv.HashControl); err != nil {
				if errors.Is(err, agt.ErrKeyNotLoaded) {
					p.errorf("INTEGRITY_KEY_REQUIRED", field, "chave pública não carregada para verificar a factura %q", inv.InvoiceNo)
				} else {
					p.errorf("INTEGRITY_SIGNATURE_INVALID", field, "factura %q com assinatura inválida: %v", inv.InvoiceNo, err)
				}
			}
		}

		// A cadeia segue sempre o hash ARMAZENADO: se foi adulterado, as
		// facturas seguintes acusam igualmente divergência (propagação).
		previousHash = inv.Hash
	}
	return p
}
