package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/academy-console/pkg/errors"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validator wraps the schema validation applied to every draft before it is
// allowed anywhere near the network.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the custom rules the drafts rely on.
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Check validates a draft, returning a typed validation error naming the
// offending fields.
func (v *Validator) Check(label string, draft interface{}) error {
	err := v.validate.Struct(draft)
	if err == nil {
		return nil
	}
	message := fmt.Sprintf("invalid %s payload", label)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		message = fmt.Sprintf("invalid %s payload: %s", label, strings.Join(fields, ", "))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

// Unchanged reports whether an edit draft still equals its loaded baseline,
// in which case submission is blocked.
func Unchanged(baseline, draft interface{}) bool {
	return reflect.DeepEqual(baseline, draft)
}

// ParseLevel coerces raw form input into a standard level. Fractional input
// such as "5.5" is rejected here, before range validation ever runs.
func ParseLevel(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	level, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "level must be a whole number between 1 and 12")
	}
	return level, nil
}

// ParsePercentage coerces raw form input into a percentage value.
func ParsePercentage(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "percentage must be a number")
	}
	return value, nil
}
