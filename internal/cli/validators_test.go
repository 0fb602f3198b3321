package cli

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/stretchr/testify/assert"
)

func TestFormValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator textinput.ValidateFunc
		value     string
		isValid   bool
	}{
		{name: "required empty string", validator: getStringValidator(formValidatorOpts{IsRequired: true}), value: "", isValid: false},
		{name: "optional empty string", validator: getStringValidator(formValidatorOpts{}), value: "", isValid: true},
		{name: "boolean true", validator: getBooleanValidator(formValidatorOpts{}), value: "true", isValid: true},
		{name: "boolean yes", validator: getBooleanValidator(formValidatorOpts{}), value: "yes", isValid: true},
		{name: "boolean uppercase", validator: getBooleanValidator(formValidatorOpts{}), value: "NO", isValid: true},
		{name: "boolean gibberish", validator: getBooleanValidator(formValidatorOpts{}), value: "yeah", isValid: false},
		{name: "integer", validator: getIntegerValidator(formValidatorOpts{}), value: "42", isValid: true},
		{name: "integer negative", validator: getIntegerValidator(formValidatorOpts{}), value: "-7", isValid: true},
		{name: "integer fractional", validator: getIntegerValidator(formValidatorOpts{}), value: "4.2", isValid: false},
		{name: "integer empty optional", validator: getIntegerValidator(formValidatorOpts{}), value: "", isValid: true},
		{name: "float", validator: getFloatValidator(formValidatorOpts{}), value: "0.5", isValid: true},
		{name: "float words", validator: getFloatValidator(formValidatorOpts{}), value: "half", isValid: false},
		{name: "json object", validator: getJsonValidator(formValidatorOpts{}), value: `{"a": 1}`, isValid: true},
		{name: "json array", validator: getJsonValidator(formValidatorOpts{}), value: "[]", isValid: true},
		{name: "json truncated", validator: getJsonValidator(formValidatorOpts{}), value: "[{", isValid: false},
		{name: "json required empty", validator: getJsonValidator(formValidatorOpts{IsRequired: true}), value: "", isValid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(tt.value)
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
