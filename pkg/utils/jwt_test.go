package utils

import (
	"context"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	SetSecret("test-secret")
	defer SetSecret("secret")

	token, err := GenerateToken("user-1", []string{"clinician"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "user-1" || !claims.HasRole("admin", "clinician") {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	SetSecret("one")
	token, err := GenerateToken("user-1", nil, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := GenerateToken("user-1", nil, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	SetSecret("two")
	defer SetSecret("secret")

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: token},
		{name: "garbage", token: "not.a.jwt"},
		{name: "expired", token: expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "expired" {
				SetSecret("one")
				defer SetSecret("two")
			}
			if _, err := ValidateToken(tt.token); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestClaimsFromContext(t *testing.T) {
	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Error("empty context has no claims")
	}
	ctx := context.WithValue(context.Background(), UserClaimsKey, &UserClaims{UserID: "u"})
	if claims, ok := ClaimsFromContext(ctx); !ok || claims.UserID != "u" {
		t.Errorf("claims = %+v, ok = %v", claims, ok)
	}
}
