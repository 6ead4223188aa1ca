package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// subscriberEmailPattern is the newsletter address format. It is stricter than
// the RFC rule used by the "email" tag: two or three letter TLDs only.
var subscriberEmailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

var difficulties = map[string]struct{}{
	"Beginner":     {},
	"Intermediate": {},
	"Advanced":     {},
	"All Levels":   {},
	"":             {},
}

func RegisterCustomValidators(v *validator.Validate) {
	_ = v.RegisterValidation("password", ValidatePasswordRule)
	_ = v.RegisterValidation("subscriber_email", validateSubscriberEmailRule)
	_ = v.RegisterValidation("difficulty", validateDifficultyRule)
}

var Validate *validator.Validate

// InitValidator registers the custom rules on both the package validator and
// gin's binding engine. Safe to call more than once.
func InitValidator() {
	Validate = validator.New()
	RegisterCustomValidators(Validate)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(v)
	}
}

func ValidatePasswordRule(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return ValidatePassword(password)
}

func ValidatePassword(password string) bool {
	// Password must:
	// - Be at least 6 characters long
	// - Contain at least one number
	// - Contain at least one special character

	hasNumber := false
	hasSpecial := false

	if len(password) < 6 {
		return false
	}

	for _, char := range password {
		switch {
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasNumber && hasSpecial
}

func validateSubscriberEmailRule(fl validator.FieldLevel) bool {
	return ValidSubscriberEmail(fl.Field().String())
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidSubscriberEmail(email string) bool {
	return subscriberEmailPattern.MatchString(email)
}

func validateDifficultyRule(fl validator.FieldLevel) bool {
	return ValidDifficulty(fl.Field().String())
}

func ValidDifficulty(d string) bool {
	_, ok := difficulties[d]
	return ok
}
