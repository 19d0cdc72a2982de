package filestore

import (
	"crypto/rand"
	"crypto/sha256"
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/esther-pixel31/swiftsend-go/session"
)

var _ session.TokenStore = (*EncryptedStore)(nil)

// EncryptedStore is a Store whose on-disk payload is sealed with
// XChaCha20-Poly1305. The tokens are opaque bearer credentials, so keeping
// them unreadable at rest is all the protection a client can offer.
type EncryptedStore struct {
	path string
	key  []byte
	lock sync.Mutex
}

// NewEncrypted builds an EncryptedStore keyed by the given passphrase. The
// cipher key is derived from the passphrase with SHA-256.
func NewEncrypted(path, passphrase string) (*EncryptedStore, error) {
	if passphrase == "" {
		return nil, errors.New("[NewEncrypted] passphrase is required")
	}
	key := sha256.Sum256([]byte(passphrase))
	return &EncryptedStore{path: path, key: key[:]}, nil
}

func (s *EncryptedStore) Load() (string, string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	sealed, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", "", nil
	}
	if err != nil {
		return "", "", errors.Wrap(err, "[EncryptedStore.Load] read token file")
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", "", errors.Wrap(err, "[EncryptedStore.Load] build cipher")
	}
	if len(sealed) < aead.NonceSize() {
		return "", "", errors.New("[EncryptedStore.Load] token file too short")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	raw, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", "", errors.Wrap(err, "[EncryptedStore.Load] open")
	}
	return decodeTokens(raw)
}

func (s *EncryptedStore) Save(accessToken, refreshToken string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	raw, err := encodeTokens(accessToken, refreshToken)
	if err != nil {
		return err
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return errors.Wrap(err, "[EncryptedStore.Save] build cipher")
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return errors.Wrap(err, "[EncryptedStore.Save] nonce")
	}

	sealed := append(nonce, aead.Seal(nil, nonce, raw, nil)...)
	return writeFileAtomic(s.path, sealed)
}

func (s *EncryptedStore) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[EncryptedStore.Clear] remove token file")
	}
	return nil
}
