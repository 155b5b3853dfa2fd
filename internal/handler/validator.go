package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/geotreasure/internal/domain"
)

// Validator checks request structs against their validate tags. Field names
// in its errors are the json names clients send.
type Validator struct {
	validate *validator.Validate
}

var itemIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

var fieldMessages = map[string]string{
	"required":    "This field is required",
	"itemid":      "Use lower-case letters, digits, '-' and '_'",
	"rarity":      "Must be one of common, rare, legendary",
	"rank":        "Must be one of beginner, explorer, hunter, master",
	"excludesall": "Contains invalid characters",
}

var GetValidator = sync.OnceValue(func() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	for tag, fn := range map[string]validator.Func{
		"itemid": validateItemID,
		"rarity": validateRarity,
		"rank":   validateRank,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return &Validator{validate: v}
})

func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError maps each failing json field to a user-facing message
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	}
	if msg, ok := fieldMessages[fe.Tag()]; ok {
		return msg
	}
	return "Invalid value"
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}

func validateItemID(fl validator.FieldLevel) bool {
	return itemIDPattern.MatchString(fl.Field().String())
}

func validateRarity(fl validator.FieldLevel) bool {
	_, err := domain.ParseRarity(fl.Field().String())
	return err == nil
}

// empty passes; required decides whether the field may be omitted
func validateRank(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := domain.ParseRank(value)
	return err == nil
}
