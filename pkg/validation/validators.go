package validation

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Letters, digits, dot, underscore and dash; must start with a letter or digit
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{2,29}$`)

	// Allow letters, numbers, spaces, and common professional punctuation: . ' - / & ( ) , +
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),+#-]+$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("username", ValidUsername)
	_ = v.RegisterValidation("strong_password", StrongPassword)
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("skill", ValidSkill)
}

// ValidUsername accepts 3-30 characters of [A-Za-z0-9._-].
func ValidUsername(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

// passwordSpecials are the accepted special characters.
const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// StrongPassword requires 8-72 bytes with an upper case letter, a lower case
// letter, a digit and one of passwordSpecials. bcrypt ignores input past 72
// bytes.
func StrongPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 8 || len(pw) > 72 {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		if r > 0x1F000 {
			return false // Supplementary characters (mostly emoji/symbols)
		}
		if unicode.In(r, unicode.So, unicode.Sk) { // Symbol, other / Symbol, modifier
			return false
		}
	}
	return true
}

// ValidSkill checks one skill, or every entry of a []string of skills: 1-50
// characters of name-like text.
func ValidSkill(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return validSkill(field.String())
	case reflect.Slice:
		for i := 0; i < field.Len(); i++ {
			if !validSkill(field.Index(i).String()) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func validSkill(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && len(s) <= 50 && nameRegex.MatchString(s)
}
