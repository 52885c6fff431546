package app

import (
	"testing"
	"time"
)

func TestInviteTokenRoundTrip(t *testing.T) {
	svc := NewInviteService("secret", "bingo", time.Hour)

	token, err := svc.GenerateToken("TEST1", "host-1")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	code, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if code != "TEST1" {
		t.Fatalf("code = %q, want TEST1", code)
	}
}

func TestInviteTokenRejectsWrongKey(t *testing.T) {
	issuer := NewInviteService("secret-a", "bingo", time.Hour)
	verifier := NewInviteService("secret-b", "bingo", time.Hour)

	token, err := issuer.GenerateToken("TEST1", "host-1")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatalf("token verified with wrong key")
	}
}

func TestInviteTokenRejectsExpired(t *testing.T) {
	svc := NewInviteService("secret", "bingo", -time.Minute)

	token, err := svc.GenerateToken("TEST1", "host-1")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := svc.ParseToken(token); err == nil {
		t.Fatalf("expired token verified")
	}
}

func TestInviteTokenRejectsIssuerMismatch(t *testing.T) {
	issuer := NewInviteService("secret", "bingo", time.Hour)
	verifier := NewInviteService("secret", "other", time.Hour)

	token, err := issuer.GenerateToken("TEST1", "host-1")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatalf("token verified with mismatched issuer")
	}
}

func TestInviteRequiresConfig(t *testing.T) {
	svc := NewInviteService("", "bingo", time.Hour)
	if _, err := svc.GenerateToken("TEST1", "host-1"); err == nil {
		t.Fatalf("token issued without a signing secret")
	}
}
