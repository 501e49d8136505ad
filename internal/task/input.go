package task

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Input carries the user-editable fields sent on create and update.
type Input struct {
	Title       string `json:"title" validate:"notblank,max=255"`
	Description string `json:"description"`
	Status      Status `json:"status" validate:"status"`
	DueDate     *Date  `json:"dueDate"`
}

// ValidationError is a local validation failure. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	// ErrTitleRequired is returned for an empty or whitespace-only title.
	ErrTitleRequired = &ValidationError{Field: "title", Message: "title required"}

	// ErrTitleTooLong is returned when the title exceeds 255 characters.
	ErrTitleTooLong = &ValidationError{Field: "title", Message: "title too long (max 255)"}

	// ErrInvalidStatus is returned for a status outside the enumeration.
	ErrInvalidStatus = &ValidationError{Field: "status", Message: "invalid status"}
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails for empty tags or nil funcs.
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
			return Status(fl.Field().Int()).Valid()
		})
		validate = v
	})
	return validate
}

// Normalize returns a copy of in with the title trimmed.
func (in Input) Normalize() Input {
	in.Title = strings.TrimSpace(in.Title)
	return in
}

// Validate checks in and returns the first failing field as a
// *ValidationError.
func (in Input) Validate() error {
	err := inputValidator().Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Title":
		if fe.Tag() == "max" {
			return ErrTitleTooLong
		}
		return ErrTitleRequired
	case "Status":
		return ErrInvalidStatus
	}
	return &ValidationError{Field: strings.ToLower(fe.Field()), Message: fe.Error()}
}
