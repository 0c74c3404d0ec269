package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks the input against the generic numeric rules and against
// the mandatory fields of its record type.
func (in RecordInput) Validate() error {
	verr := &ValidationError{}
	collect(verr, validate.Struct(in))

	variant, err := in.Variant()
	if err != nil {
		var typeErr *ValidationError
		if !errors.As(err, &typeErr) {
			return err
		}
		for _, f := range typeErr.Fields {
			verr.add(f.Field, f.Message)
		}
	} else {
		collect(verr, validate.Struct(variant))
	}

	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

func collect(verr *ValidationError, err error) {
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("record", err.Error())
		return
	}

	for _, fe := range fieldErrs {
		verr.add(fe.Field(), describe(fe))
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return "is required"
	case "gte":
		return "must not be negative"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}
