package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

var otpDigits = []rune("0123456789")

// GenerateNumericCode produces a random all-digit verification code.
func GenerateNumericCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}

	result := make([]rune, length)
	for i := 0; i < length; i++ {
		idx, err := randInt(len(otpDigits))
		if err != nil {
			return "", err
		}
		result[i] = otpDigits[idx]
	}
	return string(result), nil
}

// HashOTPCode digests a verification code with HMAC-SHA256 under the
// application secret. Stored codes are never recoverable.
func HashOTPCode(code, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyOTPCode compares a submitted code against a stored digest in
// constant time.
func VerifyOTPCode(code, secret, storedDigest string) bool {
	computed := HashOTPCode(code, secret)
	return hmac.Equal([]byte(computed), []byte(storedDigest))
}

func randInt(max int) (int, error) {
	if max <= 0 {
		return 0, fmt.Errorf("invalid max %d", max)
	}
	var buff = make([]byte, 1)
	if _, err := rand.Read(buff); err != nil {
		return 0, err
	}
	return int(buff[0]) % max, nil
}
