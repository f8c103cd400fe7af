package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/config"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "swinetech",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()

	payload := AccessTokenPayload{
		UserID: 42,
		Role:   enums.UserRoleCaretaker,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != 42 {
		t.Fatalf("expected user_id 42, got %d", claims.UserID)
	}
	if claims.Role != enums.UserRoleCaretaker {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.Subject != "42" {
		t.Fatalf("expected sub to mirror user id, got %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti to be assigned")
	}

	// RegisteredClaims is embedded, so access fields directly.
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "swinetech",
		ExpirationMinutes: 10,
	}
	now := time.Now()
	payload := AccessTokenPayload{
		UserID: 7,
		Role:   enums.UserRoleSales,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token+"x")
	if err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "swinetech",
		ExpirationMinutes: 15,
	}
	now := time.Now().Add(-time.Hour)
	payload := AccessTokenPayload{
		UserID: 7,
		Role:   enums.UserRoleAdmin,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMintAccessTokenInvalidRole(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "swinetech",
		ExpirationMinutes: 5,
	}
	now := time.Now()
	payload := AccessTokenPayload{
		UserID: 7,
		Role:   "",
	}

	if _, err := MintAccessToken(cfg, now, payload); err == nil {
		t.Fatal("expected invalid role error")
	}
}

func TestMintAndParseVerificationToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:                 "secret",
		Issuer:                 "swinetech",
		ExpirationMinutes:      120,
		VerificationTTLMinutes: 15,
	}
	now := time.Now().UTC()

	token, jti, err := MintVerificationToken(cfg, now, "client@example.com", enums.OTPPurposeRegister)
	if err != nil {
		t.Fatalf("mint verification token: %v", err)
	}
	if len(jti) != 32 {
		t.Fatalf("expected 32-char jti, got %q", jti)
	}

	claims, err := ParseVerificationToken(cfg, token)
	if err != nil {
		t.Fatalf("parse verification token: %v", err)
	}
	if claims.Email != "client@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Purpose != enums.OTPPurposeRegister {
		t.Fatalf("unexpected purpose %q", claims.Purpose)
	}
	if claims.ID != jti {
		t.Fatalf("expected claims jti %q to match returned %q", claims.ID, jti)
	}

	exp := now.Add(15 * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v", exp.UTC(), claims.ExpiresAt.UTC())
	}
}

func TestVerificationTokenRejectedAsAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:                 "secret",
		Issuer:                 "swinetech",
		ExpirationMinutes:      120,
		VerificationTTLMinutes: 15,
	}

	token, _, err := MintVerificationToken(cfg, time.Now(), "client@example.com", enums.OTPPurposeRegister)
	if err != nil {
		t.Fatalf("mint verification token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 0 {
		t.Fatalf("verification token must not carry a user id, got %d", claims.UserID)
	}
}
