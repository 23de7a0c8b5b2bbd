package service

import (
	"regexp"
	"strings"

	"github.com/amitmore-007/Recipe-Generator/pkg/cryptox"
)

// MinPasswordLength is counted in bytes, as is cryptox.MaxPasswordBytes.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// RegisterInput is the registration payload after JSON decoding.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (in RegisterInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return invalidInput("Name is required")
	case !emailPattern.MatchString(strings.TrimSpace(in.Email)):
		return invalidInput("A valid email is required")
	case len(in.Password) < MinPasswordLength:
		return invalidInput("Password must be at least 6 characters")
	case len(in.Password) > cryptox.MaxPasswordBytes:
		return invalidInput("Password must be at most 72 bytes")
	}
	return nil
}
