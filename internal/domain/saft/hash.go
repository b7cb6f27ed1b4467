// Cálculo do hash de documento da cadeia SAFT-AO.
// Fórmula fixa (compatibilidade de esquema): a alteração de qualquer campo,
// da ordem de concatenação ou do formato dos montantes invalida os ficheiros
// já entregues à AGT.

package saft

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"
)

// DocumentHash calcula o hash de um documento da cadeia:
//
//	SHA256(invoiceNo ‖ invoiceDate ‖ grossTotal ‖ previousHash)
//
// invoiceDate em ISO (AAAA-MM-DD), grossTotal com exactamente 2 casas decimais
// (sem separador de milhares), previousHash vazio para o primeiro documento.
// Devolve hex maiúsculo.
func DocumentHash(invoiceNo, invoiceDateISO string, grossTotal decimal.Decimal, previousHash string) string {
	payload := invoiceNo + invoiceDateISO + formatAmount(grossTotal) + previousHash
	sum := sha256.Sum256([]byte(payload))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// formatAmount formata montantes para a cadeia: ponto decimal, 2 casas (ex: 50000.00).
func formatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
