package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidAccount is wrapped when an account fails validation.
var ErrInvalidAccount = errors.New("invalid account")

// Account is the owner of generated curricula.
type Account struct {
	ID        string
	Name      string `validate:"notblank,max=200"`
	Email     string `validate:"required,email"`
	CreatedAt time.Time
}

func (a *Account) Validate() error {
	err := profileValidator.Struct(a)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s failed %q", ErrInvalidAccount, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidAccount, err)
}
