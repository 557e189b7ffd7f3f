package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// PhonePattern is the accepted customer phone format.
var PhonePattern = regexp.MustCompile(`^\+7\d{10}$`)

const PhoneFormatMessage = "Format: +79991234567"

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags and JSON field naming on gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			ErrorLogger.Error("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("ruphone", func(fl validator.FieldLevel) bool {
			return PhonePattern.MatchString(fl.Field().String())
		}); err != nil {
			ErrorLogger.Errorf("register ruphone validator: %v", err)
		}
	})
}

// BindingErrors converts validator failures into field messages. It returns nil for
// any other kind of error (malformed JSON and the like).
func BindingErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "ruphone":
		return PhoneFormatMessage
	case "email":
		return "Enter a valid email address."
	case "min", "gte":
		return fmt.Sprintf("Must be at least %s.", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("Must be at most %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", fe.Param())
	}
	return "Invalid value."
}
