package tokens

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dog-training-api/internal/ports/auth"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerify_ExtractsClaims(t *testing.T) {
	v := NewVerifier(testSecret, "")
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "uid-1",
		"email": "sam@example.com",
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "uid-1" || claims.Email != "sam@example.com" || claims.Role != auth.RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerify_UnknownRoleDefaultsToCustomer(t *testing.T) {
	v := NewVerifier(testSecret, "")
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "uid-1",
		"role": "superuser",
	})

	claims, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != auth.RoleCustomer {
		t.Fatalf("expected customer fallback, got %q", claims.Role)
	}
}

func TestVerify_RejectsBadSignature(t *testing.T) {
	v := NewVerifier(testSecret, "")
	token := signToken(t, "other-secret", jwt.MapClaims{"sub": "uid-1"})

	if _, err := v.Verify(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_RejectsWrongIssuer(t *testing.T) {
	v := NewVerifier(testSecret, "dog-training-api")

	good := signToken(t, testSecret, jwt.MapClaims{"sub": "uid-1", "iss": "dog-training-api"})
	if _, err := v.Verify(context.Background(), good); err != nil {
		t.Fatalf("expected valid issuer to pass, got %v", err)
	}

	bad := signToken(t, testSecret, jwt.MapClaims{"sub": "uid-1", "iss": "someone-else"})
	if _, err := v.Verify(context.Background(), bad); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong issuer, got %v", err)
	}
}

func TestVerify_RejectsExpired(t *testing.T) {
	v := NewVerifier(testSecret, "")
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "uid-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestVerify_RejectsMissingSubAndEmptyToken(t *testing.T) {
	v := NewVerifier(testSecret, "")

	if _, err := v.Verify(context.Background(), ""); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}

	token := signToken(t, testSecret, jwt.MapClaims{"email": "x@example.com"})
	if _, err := v.Verify(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for missing sub, got %v", err)
	}
}
