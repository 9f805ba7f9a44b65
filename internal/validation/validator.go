// Package validation runs declarative struct-tag rules and converts the
// failures into model.ValidationError field lists.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mcoot/matrixgame/internal/model"
)

// mailboxPattern matches the same addresses as Ruby's URI::MailTo::EMAIL_REGEXP
var mailboxPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so errors line up with form/API keys
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return IsMailbox(fl.Field().String())
	})

	return v
}

// IsMailbox reports whether s is shaped like an email address
func IsMailbox(s string) bool {
	return mailboxPattern.MatchString(s)
}

// Struct validates v against its `validate` tags. The returned error is
// never nil; callers add further checks and then use ErrOrNil.
func Struct(v any) *model.ValidationError {
	ve := &model.ValidationError{}

	err := validate.Struct(v)
	if err == nil {
		return ve
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only happens for programmer errors such as passing a non-struct
		panic(fmt.Sprintf("validation: %v", err))
	}

	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), message(fe))
	}
	return ve
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return model.MsgBlank
	case "min":
		return fmt.Sprintf(model.MsgTooShortFormat, fe.Param())
	case "max":
		return fmt.Sprintf(model.MsgTooLongFormat, fe.Param())
	case "gt":
		return fmt.Sprintf(model.MsgGreaterFormat, fe.Param())
	case "eqfield":
		return model.MsgConfirmation
	default:
		return model.MsgInvalid
	}
}
