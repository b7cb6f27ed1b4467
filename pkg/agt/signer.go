// Package agt: portas para assinatura da cadeia de hashes do SAFT-AO.

package agt

import "errors"

// ErrKeyNotLoaded indica que a chave (privada ou pública) não foi carregada
// antes de assinar/verificar. É fatal para a exportação: sem chave privada
// não há cadeia de hashes válida.
var ErrKeyNotLoaded = errors.New("agt: chave não carregada")

// Signer assina o hash de um documento com a chave privada configurada.
type Signer interface {
	// Sign recebe o hash (hex maiúsculo) e devolve a assinatura em base64.
	// Devolve ErrKeyNotLoaded se a chave privada não estiver disponível.
	Sign(hash string) (string, error)
}

// Verifier valida a assinatura de um hash com a chave pública correspondente.
type Verifier interface {
	// Verify devolve erro se a assinatura não corresponder ao hash,
	// ou ErrKeyNotLoaded se a chave pública não estiver disponível.
	Verify(hash, signature string) error
}
