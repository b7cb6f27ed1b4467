// Assinatura da cadeia de hashes SAFT-AO com RSA-2048 real (PKCS#1 v1.5 / SHA-256).
// O contrato externo mantém-se: gerar par de chaves, assinar o hash, verificar.

package agt

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	pkgagt "github.com/emanuel-malungo/systemSchool-sub001/pkg/agt"
)

// rsaKeyBits dimensão do par de chaves da cadeia de hashes.
const rsaKeyBits = 2048

// GenerateKeyPair gera um novo par de chaves RSA-2048 para a cadeia de hashes.
// Gerado uma única vez por instalação; a persistência é do KeyStore.
func GenerateKeyPair() (*rsa.PrivateKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("agt: gerar par de chaves: %w", err)
	}
	return key, nil
}

// ChainSigner assina e verifica hashes da cadeia com um par de chaves RSA.
// A chave privada pode estar ausente (instâncias que só verificam); nesse
// caso Sign devolve ErrKeyNotLoaded. O par de chaves é só de leitura durante
// a exportação: nunca é regenerado a meio de uma cadeia.
type ChainSigner struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
}

// NewChainSigner cria o signer. private pode ser nil (só verificação);
// public pode ser nil se private estiver presente (deriva-se da privada).
func NewChainSigner(private *rsa.PrivateKey, public *rsa.PublicKey) *ChainSigner {
	if public == nil && private != nil {
		public = &private.PublicKey
	}
	return &ChainSigner{private: private, public: public}
}

// Sign assina o hash (hex maiúsculo) com RSA PKCS#1 v1.5 sobre SHA-256.
// Devolve a assinatura em base64.
func (s *ChainSigner) Sign(hash string) (string, error) {
	if s.private == nil {
		return "", pkgagt.ErrKeyNotLoaded
	}
	digest := sha256.Sum256([]byte(hash))
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.private, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("agt: assinar hash: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify valida a assinatura base64 contra o hash com a chave pública.
func (s *ChainSigner) Verify(hash, signature string) error {
	if s.public == nil {
		return pkgagt.ErrKeyNotLoaded
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("agt: assinatura não é base64 válido: %w", err)
	}
	digest := sha256.Sum256([]byte(hash))
	if err := rsa.VerifyPKCS1v15(s.public, crypto.SHA256, digest[:], sig); err != nil {
		return fmt.Errorf("agt: assinatura não corresponde ao hash: %w", err)
	}
	return nil
}

var (
	_ pkgagt.Signer   = (*ChainSigner)(nil)
	_ pkgagt.Verifier = (*ChainSigner)(nil)
)
