package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// KeySize is the required AES-256 key length in bytes.
const KeySize = 32

// BcryptCost is the work factor used for post access passwords and admin logins.
const BcryptCost = 10

// Codec encrypts and decrypts PII fields with AES-256-CBC. Tokens are
// hex(iv) + ":" + hex(ciphertext) so a row is decryptable from the token
// and the process key alone.
type Codec struct {
	key []byte
}

// NewCodec validates the key length once; a bad key is a startup error,
// never a per-request one.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}
	return &Codec{key: key}, nil
}

// Encrypt returns the token for text. Empty input passes through unchanged.
func (c *Codec) Encrypt(text string) (string, error) {
	if text == "" {
		return text, nil
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}

	padded := pkcs7Pad([]byte(text), aes.BlockSize)
	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(encrypted, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(encrypted), nil
}

// Decrypt reverses Encrypt. Anything that is not a well-formed token is
// returned unchanged: rows written before field encryption was introduced
// hold plaintext, and they must keep rendering.
func (c *Codec) Decrypt(text string) string {
	iv, encrypted, ok := splitToken(text)
	if !ok {
		return text
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return text
	}

	decrypted := make([]byte, len(encrypted))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(decrypted, encrypted)

	plain, err := pkcs7Unpad(decrypted, aes.BlockSize)
	if err != nil {
		return text
	}
	return string(plain)
}

func splitToken(text string) (iv, encrypted []byte, ok bool) {
	idx := strings.IndexByte(text, ':')
	if idx < 0 {
		return nil, nil, false
	}

	iv, err := hex.DecodeString(text[:idx])
	if err != nil || len(iv) != aes.BlockSize {
		return nil, nil, false
	}

	encrypted, err = hex.DecodeString(text[idx+1:])
	if err != nil || len(encrypted) == 0 || len(encrypted)%aes.BlockSize != 0 {
		return nil, nil, false
	}
	return iv, encrypted, true
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding byte %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-n], nil
}

// HashPassword creates a bcrypt hash of a password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if a password matches the hashed version.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// StripPhone removes everything but digits from a phone number.
func StripPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone re-inserts hyphens into a stripped Korean phone number.
// Unrecognized lengths are returned as-is.
func FormatPhone(phone string) string {
	cleaned := StripPhone(phone)
	switch len(cleaned) {
	case 11: // 010-1234-5678
		return cleaned[:3] + "-" + cleaned[3:7] + "-" + cleaned[7:]
	case 10:
		if strings.HasPrefix(cleaned, "02") { // 02-1234-5678
			return cleaned[:2] + "-" + cleaned[2:6] + "-" + cleaned[6:]
		}
		return cleaned[:3] + "-" + cleaned[3:6] + "-" + cleaned[6:] // 031-123-4567
	case 9: // 02-123-4567
		return cleaned[:2] + "-" + cleaned[2:5] + "-" + cleaned[5:]
	}
	return phone
}
