package validators

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

func HasUpper(fl validator.FieldLevel) bool {
	return strings.ContainsFunc(fl.Field().String(), unicode.IsUpper)
}

func HasLower(fl validator.FieldLevel) bool {
	return strings.ContainsFunc(fl.Field().String(), unicode.IsLower)
}

func HasDigit(fl validator.FieldLevel) bool {
	return strings.ContainsFunc(fl.Field().String(), unicode.IsDigit)
}

func HasSpecial(fl validator.FieldLevel) bool {
	return strings.ContainsFunc(fl.Field().String(), func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
