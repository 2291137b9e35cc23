// internal/app/system/authutil/authutil.go
package authutil

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// HashPassword returns a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordRules returns the rules text shown beside password fields.
func PasswordRules() string {
	return "Mínimo de 8 caracteres, com letras e números."
}

// ValidatePassword enforces the signup password policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return errors.New("a senha deve ter pelo menos 8 caracteres")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("a senha deve conter letras e números")
	}
	return nil
}

// PasswordStrength scores a password 0–4 for the signup strength meter:
// length ≥8, length ≥12, mixed case, digits, symbols each add a point
// (capped at 4). Zero means too short to consider.
func PasswordStrength(password string) int {
	if len(password) < minPasswordLen {
		return 0
	}
	score := 1
	if len(password) >= 12 {
		score++
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if upper && lower {
		score++
	}
	if digit {
		score++
	}
	if symbol {
		score++
	}
	if score > 4 {
		score = 4
	}
	return score
}

// StrengthLabel maps a PasswordStrength score to the label the signup page
// displays.
func StrengthLabel(score int) string {
	switch {
	case score <= 0:
		return "Muito fraca"
	case score == 1:
		return "Fraca"
	case score == 2:
		return "Razoável"
	case score == 3:
		return "Boa"
	default:
		return "Forte"
	}
}

// isValidEmail is a light sanity check used by signup; real validation
// happens when the mail provider bounces.
func isValidEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool { return isValidEmail(s) }
