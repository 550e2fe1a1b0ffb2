package generator

import (
	"math"
	"strings"
	"unicode"

	"svault/internal/domain"
)

// MinMasterPasswordLength is the shortest accepted master password.
const MinMasterPasswordLength = 8

var strengthLabels = [...]string{"Very Weak", "Weak", "Medium", "Strong", "Very Strong"}

var commonPasswords = map[string]bool{
	"password": true,
	"123456":   true,
	"qwerty":   true,
	"letmein":  true,
	"welcome":  true,
}

// Strength scores password from 0 to 4. One point for length of at least
// eight, up to three for character-class variety, up to one more for an
// estimated entropy bonus. Common passwords score 0 and runs of three
// consecutive lower-case letters cost a point.
func Strength(password string) domain.Strength {
	runes := []rune(password)
	var fb []string
	half := 0 // score in half points

	if len(runes) >= MinMasterPasswordLength {
		half += 2
	} else {
		fb = append(fb, "Password should be at least 8 characters")
	}

	var lower, upper, digit, special bool
	for _, r := range runes {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			special = true
		}
	}
	classes := 0
	charset := 0
	for _, c := range []struct {
		has  bool
		size int
		hint string
	}{
		{lower, 26, "Add lowercase letters"},
		{upper, 26, "Add uppercase letters"},
		{digit, 10, "Add numbers"},
		{special, 32, "Add special characters"},
	} {
		if c.has {
			classes++
			charset += c.size
		} else {
			fb = append(fb, c.hint)
		}
	}
	if classes >= 2 {
		half += 2 * (classes - 1)
	}

	entropy := float64(len(runes)) * math.Sqrt(float64(charset)) / 10
	switch {
	case entropy > 15:
		half = min(half+2, 8)
	case entropy > 10:
		half = min(half+1, 8)
	}

	if commonPasswords[strings.ToLower(password)] {
		half = 0
		fb = append(fb, "Avoid common passwords")
	}
	if hasAlphabetRun(runes) {
		half = max(half-2, 0)
		fb = append(fb, "Avoid sequential characters")
	}

	score := half / 2
	return domain.Strength{Score: score, Label: strengthLabels[score], Feedback: fb}
}

func hasAlphabetRun(r []rune) bool {
	for i := 0; i+2 < len(r); i++ {
		if r[i] >= 'a' && r[i+2] <= 'z' && r[i+1] == r[i]+1 && r[i+2] == r[i]+2 {
			return true
		}
	}
	return false
}

// ValidateMasterPassword enforces the minimum master password length.
func ValidateMasterPassword(password []byte) error {
	if n := len([]rune(string(password))); n < MinMasterPasswordLength {
		return domain.Errorf(domain.KindValidation, "master password",
			"must be at least %d characters, got %d", MinMasterPasswordLength, n)
	}
	return nil
}
