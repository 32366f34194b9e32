package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/go-think/openssl"
)

// AES-128 会话密钥长度，握手时下发给客户端，key 同时作 iv。
const SessionKeyLen = 16

func AesCBCEncrypt(src, key, iv []byte, padding string) ([]byte, error) {
	if err := checkKey(key, iv); err != nil {
		return nil, err
	}
	return openssl.AesCBCEncrypt(src, key, iv, padding)
}

func AesCBCDecrypt(src, key, iv []byte, padding string) ([]byte, error) {
	if err := checkKey(key, iv); err != nil {
		return nil, err
	}
	return openssl.AesCBCDecrypt(src, key, iv, padding)
}

// NewSessionKey 生成 16 位十六进制可打印密钥。
func NewSessionKey() (string, error) {
	buf := make([]byte, SessionKeyLen/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func checkKey(key, iv []byte) error {
	switch len(key) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("security: invalid aes key length %d", len(key))
	}
	if len(iv) != 16 {
		return fmt.Errorf("security: invalid aes iv length %d", len(iv))
	}
	return nil
}
