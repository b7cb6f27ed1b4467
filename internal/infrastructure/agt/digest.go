package agt

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/ucarion/c14n"
)

// DocumentDigest calcula o digest SHA-256 do documento exportado sobre a sua
// forma canónica (C14N), para que reformatações sem alteração semântica não
// mudem o digest registado no protocolo de entrega.
func DocumentDigest(xmlBytes []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("agt: canonicalizar documento: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
