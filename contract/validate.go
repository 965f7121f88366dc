package contract

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/hackathon-platform-backend/errs"
)

// Validator reports field errors under their JSON names.
var Validator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the struct fields against their validate tags. The first
// violation is returned as a bad request naming the offending field.
func Validate(val interface{}) error {
	err := Validator.Struct(val)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewBadRequestError(err.Error())
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return errs.NewMissingRequiredFieldError(field)
	case "email":
		return errs.NewInvalidFieldError(field, "must be a valid email address")
	case "oneof":
		return errs.NewInvalidFieldError(field, "must be one of: "+strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return errs.NewInvalidFieldError(field, "must be at least "+fe.Param())
	case "max":
		return errs.NewInvalidFieldError(field, "must be at most "+fe.Param())
	}
	return errs.NewInvalidFieldError(field, fmt.Sprintf("failed %s validation", fe.Tag()))
}
