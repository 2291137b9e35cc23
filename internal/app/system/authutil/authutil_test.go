package authutil_test

import (
	"testing"

	"github.com/varzeapro/varzeapro/internal/app/system/authutil"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := authutil.HashPassword("senha123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "senha123" {
		t.Fatal("hash equals plaintext")
	}
	if !authutil.CheckPassword("senha123", hash) {
		t.Error("correct password rejected")
	}
	if authutil.CheckPassword("senha124", hash) {
		t.Error("wrong password accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"senha123", false},
		{"abc12345", false},
		// too short, letters only, digits only
		{"curta1", true},
		{"somenteletras", true},
		{"12345678", true},
		{"", true},
	}
	for _, tt := range tests {
		err := authutil.ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q): err=%v, wantErr=%v", tt.password, err, tt.wantErr)
		}
	}
}

func TestPasswordStrength(t *testing.T) {
	if got := authutil.PasswordStrength("curta"); got != 0 {
		t.Errorf("short password: got %d, want 0", got)
	}
	weak := authutil.PasswordStrength("aaaaaaaa")
	strong := authutil.PasswordStrength("Senha!Forte123x")
	if strong <= weak {
		t.Errorf("strength ordering: weak=%d strong=%d", weak, strong)
	}
	if strong != 4 {
		t.Errorf("strong password: got %d, want 4", strong)
	}
}

func TestStrengthLabel(t *testing.T) {
	if authutil.StrengthLabel(0) != "Muito fraca" {
		t.Error("label 0")
	}
	if authutil.StrengthLabel(4) != "Forte" {
		t.Error("label 4")
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "joao.silva@example.com.br"}
	invalid := []string{"", "semarroba", "@dominio.com", "user@", "user@semdominio"}

	for _, s := range valid {
		if !authutil.ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if authutil.ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = true, want false", s)
		}
	}
}
