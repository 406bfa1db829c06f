package responsable

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailPattern accepts local@domain.tld with no whitespace
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const emailTag = "email_formato"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation(emailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", emailTag, err))
	}
	return v
}

// validEmail reports whether email has the local@domain.tld shape
func validEmail(email string) bool {
	return validate.Var(email, emailTag) == nil
}

func tareasAsignadasMsg(n int) string {
	return fmt.Sprintf("No se puede eliminar el responsable porque tiene %d tareas asignadas", n)
}
