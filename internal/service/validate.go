package service

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ukydev/tripsheet/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("tripstatus", func(fl validator.FieldLevel) bool {
		return models.IsValidTripStatus(models.TripStatus(fl.Field().String()))
	})
	_ = v.RegisterValidation("payterm", func(fl validator.FieldLevel) bool {
		return models.IsValidPayTerm(models.PayTerm(fl.Field().String()))
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.IsValidCategory(models.ExpenseCategory(fl.Field().String()))
	})
	return v
}

// checkInput runs the struct's validate tags and reports failures as a ValidationError.
func checkInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &ValidationError{Message: "Invalid input: " + strings.Join(msgs, "; ")}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte", "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "date":
		return fe.Field() + " must be a date (YYYY-MM-DD)"
	case "tripstatus":
		return fe.Field() + " must be ongoing or completed"
	case "payterm":
		return fe.Field() + " must be To Pay or Advance"
	case "category":
		return fe.Field() + " is not a known expense category"
	default:
		return fe.Field() + " is invalid"
	}
}

// parseDate parses an already validated date field.
func parseDate(field, value string) (time.Time, error) {
	t, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, invalid("Invalid input: %s must be a date (YYYY-MM-DD)", field)
	}
	return t, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	t, err := models.ParseOptionalDate(value)
	if err != nil {
		return nil, invalid("Invalid input: %s must be a date (YYYY-MM-DD)", field)
	}
	return t, nil
}

// NullableDate distinguishes an absent JSON field from an explicit null.
type NullableDate struct {
	Set   bool
	Value *string
}

// UnmarshalJSON records that the field was present.
func (n *NullableDate) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// MarshalJSON renders the date or null.
func (n NullableDate) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
