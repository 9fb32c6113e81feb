package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	slugPattern   = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	registerOnce  sync.Once
	errRegistered error
)

// RegisterValidators installs the custom binding tags and makes validation
// errors report JSON field names. It is safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			errRegistered = errors.New("unexpected validator engine")
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		}); err != nil {
			errRegistered = err
			return
		}
		errRegistered = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return service.CheckUsernameFormat(fl.Field().String()) == nil
		})
	})
	return errRegistered
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	ve := &service.ValidationError{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			ve.Add(fe.Field(), fieldMessage(fe))
		}
	} else {
		ve.Add("non_field_errors", "Malformed JSON body.")
	}
	respondError(c, ve)
	return false
}

func fieldMessage(fe validator.FieldError) string {
	numeric := false
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		numeric = true
	}

	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		if numeric {
			return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
		}
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		if numeric {
			return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
		}
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	case "username":
		if err := service.CheckUsernameFormat(fmt.Sprint(fe.Value())); err != nil {
			var ve *service.ValidationError
			if errors.As(err, &ve) && len(ve.Fields["username"]) > 0 {
				return ve.Fields["username"][0]
			}
		}
		return "Enter a valid username."
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ") + "."
	}
	return "Invalid value."
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		respondError(c, fmt.Errorf("%s %w", strings.TrimSuffix(param, "_id"), service.ErrNotFound))
		return 0, false
	}
	return id, true
}
