package service

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const (
	testSecret = "this-is-a-test-secret-with-32-bytes!"
	testExpiry = 168 * time.Hour
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()
	svc, err := NewJWTService(testSecret, testExpiry)
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return svc.(*jwtService)
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewJWTService(t *testing.T) {
	svc, err := NewJWTService(testSecret, testExpiry)
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	if svc == nil {
		t.Fatal("NewJWTService() returned nil service")
	}
	if got := svc.Expiry(); got != testExpiry {
		t.Errorf("Expiry() = %v, want %v", got, testExpiry)
	}
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	if _, err := NewJWTService("", testExpiry); err == nil {
		t.Error("NewJWTService() should fail for empty secret")
	}
}

func TestNewJWTService_ShortSecret(t *testing.T) {
	if _, err := NewJWTService("short", testExpiry); err == nil {
		t.Error("NewJWTService() should fail for secret shorter than 32 bytes")
	}
}

// =============================================================================
// GenerateToken Tests
// =============================================================================

func TestGenerateToken(t *testing.T) {
	svc := newTestJWTService(t)
	typeID := int64(2)

	tests := []struct {
		name       string
		userID     int64
		username   string
		userTypeID *int64
	}{
		{
			name:     "valid user",
			userID:   1,
			username: "alice",
		},
		{
			name:       "user with type",
			userID:     42,
			username:   "bob",
			userTypeID: &typeID,
		},
		{
			name:     "empty username",
			userID:   7,
			username: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.GenerateToken(tt.userID, tt.username, tt.userTypeID)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			if token == "" {
				t.Fatal("GenerateToken() returned empty token")
			}

			claims, err := svc.ValidateToken(token)
			if err != nil {
				t.Fatalf("ValidateToken() error = %v", err)
			}
			if claims.UserID != tt.userID {
				t.Errorf("Claims.UserID = %v, want %v", claims.UserID, tt.userID)
			}
			if claims.Username != tt.username {
				t.Errorf("Claims.Username = %q, want %q", claims.Username, tt.username)
			}
			if tt.userTypeID != nil {
				if claims.UserTypeID == nil || *claims.UserTypeID != *tt.userTypeID {
					t.Errorf("Claims.UserTypeID = %v, want %v", claims.UserTypeID, *tt.userTypeID)
				}
			}
			if claims.ExpiresAt == nil || claims.IssuedAt == nil {
				t.Fatal("Claims missing iat/exp")
			}
			if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != testExpiry {
				t.Errorf("token lifetime = %v, want %v", got, testExpiry)
			}
		})
	}
}

// =============================================================================
// ValidateToken Tests
// =============================================================================

func TestValidateToken_TamperedSignature(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.GenerateToken(1, "alice", nil)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// Flip one byte in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.ValidateToken(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("ValidateToken(tampered) error = %v, want ErrTokenInvalid", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestJWTService(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("ValidateToken(%q) error = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService(t)
	other, err := NewJWTService("another-secret-that-is-32-bytes!!!!!", testExpiry)
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	token, err := other.GenerateToken(1, "alice", nil)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("ValidateToken() error = %v, want ErrTokenInvalid", err)
	}
}

func TestValidateToken_Expiry(t *testing.T) {
	svc := newTestJWTService(t)

	issued := time.Now()
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken(1, "alice", nil)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// One second before expiry the token still validates.
	svc.now = func() time.Time { return issued.Add(testExpiry - time.Second) }
	if _, err := svc.ValidateToken(token); err != nil {
		t.Errorf("ValidateToken() just before expiry error = %v", err)
	}

	// One second after expiry it fails with the expired reason.
	svc.now = func() time.Time { return issued.Add(testExpiry + time.Second) }
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("ValidateToken() after expiry error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateToken_ExpiredDistinctFromInvalid(t *testing.T) {
	svc := newTestJWTService(t)

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	token, err := svc.GenerateToken(1, "alice", nil)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	svc.now = func() time.Time { return issued.Add(testExpiry + time.Hour) }
	_, expiredErr := svc.ValidateToken(token)
	_, invalidErr := svc.ValidateToken("garbage")

	if errors.Is(expiredErr, ErrTokenInvalid) {
		t.Error("expired token should not map to ErrTokenInvalid")
	}
	if errors.Is(invalidErr, ErrTokenExpired) {
		t.Error("malformed token should not map to ErrTokenExpired")
	}
}
