package auth_test

import (
	"testing"

	"github.com/valeriaulyamaeva/wisely-backend/internal/auth"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, 42, "user@example.com")
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	claims, err := auth.ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ошибка разбора токена: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("userId: получили %d, хотели 42", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email: получили %q", claims.Email)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, 1, "user@example.com")
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	if _, err := auth.ParseToken("other-secret", token); err == nil {
		t.Error("токен с чужим секретом должен отклоняться")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := auth.ParseToken(testSecret, "not.a.token"); err == nil {
		t.Error("мусорная строка должна отклоняться")
	}
}
