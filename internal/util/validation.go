package util

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var gameIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidGameID accepts lowercase slugs such as "game-calculos".
func ValidGameID(id string) bool {
	return len(id) <= 64 && gameIDPattern.MatchString(id)
}

// RegisterValidators adds the custom binding tags used by request structs:
//
//	gameid   lowercase slug game id
//	username letters, digits, dot, dash or underscore
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("gameid", func(fl validator.FieldLevel) bool {
		return ValidGameID(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		return strings.IndexFunc(s, func(r rune) bool {
			return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '.' || r == '-' || r == '_')
		}) < 0
	})
}
