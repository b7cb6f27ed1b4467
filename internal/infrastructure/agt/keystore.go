package agt

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

// KeyStore persistência do par de chaves da cadeia de hashes.
// Injectado explicitamente no arranque: o núcleo de exportação não tem
// estado global de chaves.
type KeyStore interface {
	LoadPrivate() (*rsa.PrivateKey, error)
	LoadPublic() (*rsa.PublicKey, error)
	SavePrivate(key *rsa.PrivateKey) error
	SavePublic(key *rsa.PublicKey) error
}

// FileKeyStore guarda as chaves em ficheiros PEM (PKCS#8 / PKIX).
type FileKeyStore struct {
	privatePath string
	publicPath  string
}

// NewFileKeyStore cria o key store com os caminhos da configuração.
func NewFileKeyStore(privatePath, publicPath string) *FileKeyStore {
	return &FileKeyStore{privatePath: privatePath, publicPath: publicPath}
}

// LoadPrivate lê e descodifica a chave privada PEM.
func (ks *FileKeyStore) LoadPrivate() (*rsa.PrivateKey, error) {
	block, err := readPEM(ks.privatePath, "PRIVATE KEY")
	if err != nil {
		return nil, err
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("agt: descodificar chave privada %s: %w", ks.privatePath, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("agt: %s não contém uma chave RSA", ks.privatePath)
	}
	return key, nil
}

// LoadPublic lê e descodifica a chave pública PEM.
func (ks *FileKeyStore) LoadPublic() (*rsa.PublicKey, error) {
	block, err := readPEM(ks.publicPath, "PUBLIC KEY")
	if err != nil {
		return nil, err
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("agt: descodificar chave pública %s: %w", ks.publicPath, err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("agt: %s não contém uma chave pública RSA", ks.publicPath)
	}
	return key, nil
}

// SavePrivate grava a chave privada em PEM (PKCS#8, modo 0600).
func (ks *FileKeyStore) SavePrivate(key *rsa.PrivateKey) error {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("agt: codificar chave privada: %w", err)
	}
	return writePEM(ks.privatePath, "PRIVATE KEY", der, 0o600)
}

// SavePublic grava a chave pública em PEM (PKIX, modo 0644).
func (ks *FileKeyStore) SavePublic(key *rsa.PublicKey) error {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return fmt.Errorf("agt: codificar chave pública: %w", err)
	}
	return writePEM(ks.publicPath, "PUBLIC KEY", der, 0o644)
}

func readPEM(path, expectedType string) (*pem.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("agt: ler %s: %w", path, err)
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != expectedType {
		return nil, fmt.Errorf("agt: %s não contém um bloco PEM %q", path, expectedType)
	}
	return block, nil
}

func writePEM(path, blockType string, der []byte, mode os.FileMode) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("agt: criar directório %s: %w", dir, err)
		}
	}
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("agt: gravar %s: %w", path, err)
	}
	return nil
}

var _ KeyStore = (*FileKeyStore)(nil)
