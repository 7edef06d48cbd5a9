// Package forms applies the advisory validation rules declared on input
// components to the transient form data of a rendered page.
package forms

import (
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sdui/internal/schema"
)

// Issue describes one failing field.
type Issue struct {
	ComponentID string `json:"component_id"`
	Label       string `json:"label"`
	Message     string `json:"message"`
}

var errNotNumber = validation.NewError("validation_not_a_number", "must be a number")

// IsInput reports whether components of type t carry a form value.
func IsInput(t string) bool {
	switch t {
	case schema.TypeTextInput, schema.TypeTextarea, schema.TypeDatePicker:
		return true
	default:
		return false
	}
}

// Rules converts a component's validation block into ozzo rules.
func Rules(v *schema.Validation) []validation.Rule {
	if v.IsZero() {
		return nil
	}
	var rules []validation.Rule
	if v.Required != nil && *v.Required {
		rules = append(rules, validation.Required)
	}
	if v.MinLength != nil || v.MaxLength != nil {
		minLen, maxLen := 0, 0
		if v.MinLength != nil {
			minLen = *v.MinLength
		}
		if v.MaxLength != nil {
			maxLen = *v.MaxLength
		}
		rules = append(rules, validation.RuneLength(minLen, maxLen))
	}
	if v.Min != nil || v.Max != nil {
		rules = append(rules, numberRule(v.Min, v.Max))
	}
	return rules
}

func numberRule(minValue, maxValue *float64) validation.Rule {
	return validation.By(func(value any) error {
		text, _ := value.(string)
		text = strings.TrimSpace(text)
		if text == "" {
			return nil
		}
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return errNotNumber
		}
		var rules []validation.Rule
		if minValue != nil {
			rules = append(rules, validation.Min(*minValue))
		}
		if maxValue != nil {
			rules = append(rules, validation.Max(*maxValue))
		}
		return validation.Validate(n, rules...)
	})
}

// Validate checks the values of every input component on page. The returned
// error is a validation.Errors keyed by component id, or nil.
func Validate(page schema.Page, data map[string]string) error {
	errs := validation.Errors{}
	for _, comp := range page.Components {
		if !IsInput(comp.Type) {
			continue
		}
		rules := Rules(comp.Validation)
		if len(rules) == 0 {
			continue
		}
		if err := validation.Validate(data[comp.ID], rules...); err != nil {
			errs[comp.ID] = err
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Issues flattens an error returned by Validate into per-field issues ordered
// as the components appear on page.
func Issues(page schema.Page, err error) []Issue {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil
	}
	var issues []Issue
	for _, comp := range page.Components {
		fieldErr, ok := errs[comp.ID]
		if !ok {
			continue
		}
		label, _ := comp.Props["label"].(string)
		issues = append(issues, Issue{ComponentID: comp.ID, Label: label, Message: fieldErr.Error()})
	}
	return issues
}

// Summary renders issues as a single notification line.
func Summary(issues []Issue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		name := issue.Label
		if name == "" {
			name = issue.ComponentID
		}
		parts = append(parts, name+": "+issue.Message)
	}
	return strings.Join(parts, "; ")
}
