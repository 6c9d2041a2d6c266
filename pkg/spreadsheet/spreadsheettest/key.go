package spreadsheettest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"sync"
)

var (
	keyOnce sync.Once
	keyPEM  string
)

// PrivateKeyPEM returns a PKCS#8 RSA key generated once per test binary.
func PrivateKeyPEM() string {
	keyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			panic(err)
		}
		keyPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	})
	return keyPEM
}

// EscapedPrivateKey is PrivateKeyPEM as it appears in a .env file, with
// literal \n sequences instead of newlines.
func EscapedPrivateKey() string {
	return strings.ReplaceAll(PrivateKeyPEM(), "\n", `\n`)
}
