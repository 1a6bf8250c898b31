package validate

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

var Sizes = []string{"S", "M", "L", "XL", "XXL"}

var Colors = []string{
	"Red", "Blue", "Green", "Yellow", "Black", "White", "Gray", "Pink", "Purple", "Orange",
	"Brown", "Silver", "Gold", "Navy", "Teal", "Maroon", "Olive", "Coral", "Turquoise", "Beige",
}

var (
	once     sync.Once
	validate *validator.Validate
)

func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("size", ValidateSize)
		_ = validate.RegisterValidation("color", ValidateColor)
		_ = validate.RegisterValidation("digits", ValidateDigits)
		_ = validate.RegisterValidation("price", ValidatePrice)
	})
	return validate
}

func ValidateSize(fl validator.FieldLevel) bool {
	return slices.Contains(Sizes, fl.Field().String())
}

func ValidateColor(fl validator.FieldLevel) bool {
	return slices.Contains(Colors, fl.Field().String())
}

func ValidateDigits(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidatePrice accepts whole, non negative amounts in the smallest currency unit.
func ValidatePrice(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.Equal(d.Truncate(0))
}

// Struct validates s and converts any failure into a field level ValidationError.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fields[fe.Field()] = message(fe)
	}
	return &inErrors.ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "digits":
		return "must contain only digits"
	case "size":
		return fmt.Sprintf("must be one of %s", strings.Join(Sizes, ", "))
	case "color":
		return fmt.Sprintf("must be one of %s", strings.Join(Colors, ", "))
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid uuid"
	case "price":
		return "must be a non negative whole number"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
