// Package fieldcrypt encrypts string fields transparently at the GORM
// serialization boundary. Values are sealed with NaCl secretbox under a key
// derived from a configured passphrase and stored as "v1:" + base64. Reads of
// values without the version prefix, or that fail to open, return the stored
// string unchanged so legacy plaintext rows keep loading. The computational
// core only ever sees decoded values.
package fieldcrypt

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/pbkdf2"
	"gorm.io/gorm/schema"
)

const (
	prefix    = "v1:"
	nonceSize = 24

	// Key derivation parameters. Changing these invalidates stored values,
	// which then surface as plaintext via the legacy fallback.
	kdfSalt       = "moneta.fieldcrypt"
	kdfIterations = 4096
)

// Codec seals and opens string values. A Codec with no key is a passthrough.
type Codec struct {
	key *[32]byte
}

// New derives a codec key from the passphrase. An empty passphrase returns a
// passthrough codec that stores plaintext.
func New(passphrase string) *Codec {
	if passphrase == "" {
		return &Codec{}
	}
	derived := pbkdf2.Key([]byte(passphrase), []byte(kdfSalt), kdfIterations, 32, sha256.New)
	var key [32]byte
	copy(key[:], derived)
	return &Codec{key: &key}
}

// Encrypt seals plain for storage. Empty strings are stored as-is so that
// absent notes stay cheap to query.
func (c *Codec) Encrypt(plain string) (string, error) {
	if c.key == nil || plain == "" {
		return plain, nil
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("fieldcrypt: nonce generation failed: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plain), &nonce, c.key)
	return prefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a stored value. Anything that is not a well-formed sealed
// value is returned unchanged.
func (c *Codec) Decrypt(stored string) string {
	if c.key == nil || !strings.HasPrefix(stored, prefix) {
		return stored
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, prefix))
	if err != nil || len(raw) < nonceSize {
		return stored
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, c.key)
	if !ok {
		return stored
	}
	return string(plain)
}

// Serializer adapts a Codec to GORM's serializer interface.
type Serializer struct {
	codec *Codec
}

// Register installs the "fieldcrypt" serializer globally. Call it before the
// first model is parsed; registering again replaces the previous codec.
func Register(passphrase string) {
	schema.RegisterSerializer("fieldcrypt", &Serializer{codec: New(passphrase)})
}

// Scan implements schema.SerializerInterface, decoding on read.
func (s *Serializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue interface{}) error {
	var stored string
	switch v := dbValue.(type) {
	case nil:
	case string:
		stored = v
	case []byte:
		stored = string(v)
	default:
		return fmt.Errorf("fieldcrypt: unsupported column value %T", dbValue)
	}
	field.ReflectValueOf(ctx, dst).SetString(s.codec.Decrypt(stored))
	return nil
}

// Value implements schema.SerializerValuerInterface, encoding on write.
func (s *Serializer) Value(ctx context.Context, field *schema.Field, dst reflect.Value, fieldValue interface{}) (interface{}, error) {
	plain, _ := fieldValue.(string)
	return s.codec.Encrypt(plain)
}
