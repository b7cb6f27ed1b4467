package agt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
)

// NIFs reais com dígito de controlo válido segundo o algoritmo módulo 11.
var validNIFs = []string{
	"500008884",
	"123456789",
	"540212989",
	"004405846",
	"945309503",
}

func TestValidateNIF_Validos(t *testing.T) {
	for _, nif := range validNIFs {
		assert.NoError(t, agt.ValidateNIF(nif), "NIF %s deveria ser válido", nif)
	}
}

func TestValidateNIF_AceitaFormatacao(t *testing.T) {
	assert.NoError(t, agt.ValidateNIF("500.008.884"))
	assert.NoError(t, agt.ValidateNIF("500 008 884"))
}

func TestValidateNIF_DigitoDeControloErrado(t *testing.T) {
	// Um único dígito alterado em qualquer posição invalida o NIF.
	casos := []string{
		"500008885", // dígito de controlo trocado
		"500008874", // penúltimo dígito trocado
		"600008884", // primeiro dígito trocado
	}
	for _, nif := range casos {
		assert.Error(t, agt.ValidateNIF(nif), "NIF %s deveria ser rejeitado", nif)
	}
}

func TestValidateNIF_Comprimento(t *testing.T) {
	assert.Error(t, agt.ValidateNIF(""))
	assert.Error(t, agt.ValidateNIF("12345678"))
	assert.Error(t, agt.ValidateNIF("1234567890"))
	assert.Error(t, agt.ValidateNIF("abcdefghi"))
}

func TestComputeNIFCheckDigit(t *testing.T) {
	for _, nif := range validNIFs {
		got, err := agt.ComputeNIFCheckDigit(nif[:8])
		require.NoError(t, err)
		assert.Equal(t, nif[8], got, "dígito de controlo de %s", nif)
	}

	_, err := agt.ComputeNIFCheckDigit("1234567")
	assert.Error(t, err)
}
