package configs

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

// CSRFKey is the 32-byte key gorilla/csrf expects, taken from the auth key.
func (k *SessionKeys) CSRFKey() []byte {
	if len(k.AuthKey) >= 32 {
		return k.AuthKey[:32]
	}
	return k.AuthKey
}

func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	authKeyBase64 := env.AppAuthKey
	encKeyBase64 := env.AppEncKey

	if authKeyBase64 == "" {
		return nil, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if encKeyBase64 == "" {
		return nil, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(authKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(encKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}

	if len(authKey) < 32 {
		return nil, fmt.Errorf("APP_AUTH_KEY has invalid length %d after decoding. Must be at least 32 bytes", len(authKey))
	}
	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}

	log.Println("✅ Session keys loaded and decoded successfully.")
	return &SessionKeys{
		AuthKey: authKey,
		EncKey:  encKey,
	}, nil
}

// GenerateSessionKeys returns a fresh 64-byte HMAC key and a 32-byte AES key.
func GenerateSessionKeys() (*SessionKeys, error) {
	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return nil, fmt.Errorf("could not generate authentication key")
	}
	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return nil, fmt.Errorf("could not generate encryption key")
	}
	return &SessionKeys{AuthKey: authKey, EncKey: encKey}, nil
}

// EnvLines renders the keys in the form LoadSessionKeys reads back.
func (k *SessionKeys) EnvLines() string {
	return fmt.Sprintf("APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\n",
		base64.URLEncoding.EncodeToString(k.AuthKey),
		base64.URLEncoding.EncodeToString(k.EncKey),
	)
}

func GenerateAndPrintSessionKeys(envFilePath string) error {
	keys, err := GenerateSessionKeys()
	if err != nil {
		return err
	}
	lines := keys.EnvLines()

	fmt.Println("================================================")
	fmt.Print(lines)
	fmt.Println("================================================")

	if err := os.WriteFile(envFilePath, []byte(lines), 0o600); err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", envFilePath, err)
	}

	fmt.Printf("Keys written to %s. Copy them into .env; regenerating them logs every user out.\n", envFilePath)
	return nil
}
