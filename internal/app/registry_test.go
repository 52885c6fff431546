package app

import (
	"math/rand"
	"strings"
	"testing"
)

func TestReserveCustomCode(t *testing.T) {
	reg := NewRegistry(rand.New(rand.NewSource(1)))

	code, err := reg.Reserve("  test1 ")
	if err != nil {
		t.Fatalf("reserve error: %v", err)
	}
	if code != "TEST1" {
		t.Fatalf("code = %q, want TEST1", code)
	}

	if _, err := reg.Reserve("test1"); err != ErrCodeInUse {
		t.Fatalf("duplicate reserve error = %v, want ErrCodeInUse", err)
	}
}

func TestReserveValidatesLength(t *testing.T) {
	reg := NewRegistry(rand.New(rand.NewSource(1)))

	tests := []struct {
		name string
		code string
		ok   bool
	}{
		{name: "TooShort", code: "AB", ok: false},
		{name: "MinLength", code: "ABC", ok: true},
		{name: "MaxLength", code: "ABCDEFGH", ok: true},
		{name: "TooLong", code: "ABCDEFGHI", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Reserve(tt.code)
			if tt.ok && err != nil {
				t.Fatalf("reserve %q error: %v", tt.code, err)
			}
			if !tt.ok && err != ErrInvalidCode {
				t.Fatalf("reserve %q error = %v, want ErrInvalidCode", tt.code, err)
			}
		})
	}
}

func TestReserveGeneratesCode(t *testing.T) {
	reg := NewRegistry(rand.New(rand.NewSource(1)))

	code, err := reg.Reserve("")
	if err != nil {
		t.Fatalf("reserve error: %v", err)
	}
	if len(code) != GeneratedCodeLength {
		t.Fatalf("generated code %q length = %d, want %d", code, len(code), GeneratedCodeLength)
	}
	for _, c := range code {
		if !strings.ContainsRune(codeAlphabet, c) {
			t.Fatalf("generated code %q has invalid character %q", code, c)
		}
	}

	other, err := reg.Reserve("")
	if err != nil {
		t.Fatalf("second reserve error: %v", err)
	}
	if other == code {
		t.Fatalf("generated codes collided: %q", code)
	}
}

func TestResolveRequiresBind(t *testing.T) {
	reg := NewRegistry(rand.New(rand.NewSource(1)))

	code, err := reg.Reserve("ROOM1")
	if err != nil {
		t.Fatalf("reserve error: %v", err)
	}
	if _, found := reg.Resolve(code); found {
		t.Fatalf("reserved but unbound code resolved")
	}

	reg.Bind(code, "match-9")
	roomID, found := reg.Resolve("room1")
	if !found || roomID != "match-9" {
		t.Fatalf("resolve = (%q, %t), want (match-9, true)", roomID, found)
	}
}

func TestReleaseFreesCode(t *testing.T) {
	reg := NewRegistry(rand.New(rand.NewSource(1)))

	code, err := reg.Reserve("ROOM1")
	if err != nil {
		t.Fatalf("reserve error: %v", err)
	}
	reg.Bind(code, "match-1")
	reg.Release(code)

	if _, found := reg.Resolve(code); found {
		t.Fatalf("released code still resolves")
	}
	if _, err := reg.Reserve("ROOM1"); err != nil {
		t.Fatalf("re-reserve after release error: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("registry size = %d, want 1", reg.Len())
	}
}
