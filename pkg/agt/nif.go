package agt

import (
	"fmt"
	"unicode"
)

// pesos para o cálculo do dígito de controlo do NIF numérico (módulo 11).
// Aplicam-se aos 8 primeiros dígitos, da esquerda para a direita.
var nifWeights = [8]int{9, 8, 7, 6, 5, 4, 3, 2}

// ValidateNIF valida que o NIF (com ou sem pontos/espaços) tem 9 dígitos e
// dígito de controlo correcto segundo o algoritmo módulo 11.
// nif pode ser "500008884", "500.008.884" ou "500 008 884".
func ValidateNIF(nif string) error {
	digits := extractDigits(nif)
	if len(digits) != 9 {
		return fmt.Errorf("agt: NIF deve ter 9 dígitos, foram encontrados %d", len(digits))
	}
	expected := checkDigit(digits[:8])
	if digits[8] != expected {
		return fmt.Errorf("agt: dígito de controlo do NIF inválido: esperado %c, recebido %c", expected, digits[8])
	}
	return nil
}

// ComputeNIFCheckDigit calcula o dígito de controlo para os 8 primeiros dígitos do NIF.
func ComputeNIFCheckDigit(nif string) (byte, error) {
	digits := extractDigits(nif)
	if len(digits) < 8 {
		return 0, fmt.Errorf("agt: são necessários pelo menos 8 dígitos para calcular o dígito de controlo, foram encontrados %d", len(digits))
	}
	return checkDigit(digits[:8]), nil
}

// checkDigit: soma ponderada dos 8 primeiros dígitos, módulo 11.
// Resto r -> dígito = 11 - r; 10 e 11 colapsam para 0.
func checkDigit(base []byte) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * nifWeights[i]
	}
	c := 11 - sum%11
	if c >= 10 {
		c = 0
	}
	return byte('0' + c)
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
