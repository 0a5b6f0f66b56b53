// Package validator provides the struct validator used on model output.
package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"fincoach/internal/models"
)

// TagInsightType is the validation tag restricting a field to the insight
// type enum.
const TagInsightType = "insight_type"

// New returns a validator with the custom rules registered. Field names in
// validation errors use the json tag so they match the model's wire fields.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation(TagInsightType, validateInsightType)
	return v
}

func validateInsightType(fl validator.FieldLevel) bool {
	return models.InsightType(fl.Field().String()).IsValid()
}
