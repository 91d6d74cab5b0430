package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var validate *validator.Validate

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		panic("handler: gin validator engine is not go-playground/validator")
	}
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	validate = v
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// bindJSON decodes the request body into dst and reports every failure as a field error.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return bindError(err)
	}
	return nil
}

func bindError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := &domain.ValidationError{}
		for _, fe := range fieldErrs {
			out.Add(fe.Field(), fieldMessage(fe))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewFieldError(typeErr.Field, typeMessage(typeErr.Type.Kind()))
	}
	return domain.NewFieldError("non_field_errors", "Invalid request body.")
}

func typeMessage(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.String:
		return "Not a valid string."
	default:
		return "Invalid value."
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "slug":
		return `Enter a valid "slug" consisting of letters, numbers, underscores or hyphens.`
	case "oneof":
		return fmt.Sprintf(`"%v" is not a valid choice.`, fe.Value())
	case "len":
		return fmt.Sprintf("Ensure this field has exactly %s characters.", fe.Param())
	case "alpha":
		return "Only letters are allowed."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return "Invalid value."
	}
}

// checkEmail validates an address after trimming, so " A@B.kz " is accepted
// and normalised later by the auth usecase.
func checkEmail(raw string) error {
	addr := strings.TrimSpace(raw)
	if err := validate.Var(addr, "email"); err != nil {
		return domain.NewFieldError("email", "Enter a valid email address.")
	}
	return domain.CheckEmailLength(addr)
}

// decimalText accepts a JSON string or number and keeps its literal text,
// so prices and areas never pass through float64.
type decimalText string

func (d *decimalText) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = decimalText(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*d = decimalText(n)
	return nil
}

func (d *decimalText) ptr() *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}
