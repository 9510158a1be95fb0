package service

import (
	"errors"
	"fmt"

	"product-tracker/pkg/validator"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrProductNotFound   = fmt.Errorf("product %w", ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("order %w", ErrNotFound)
	ErrEventNotFound     = fmt.Errorf("event %w", ErrNotFound)
	ErrInsufficientStock = errors.New("not enough stock")
	ErrValidation        = errors.New("Validation failed")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

// validate runs struct validation and reports the first failing field
func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, errs[0].String())
	}
	return nil
}
