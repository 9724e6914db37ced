package staff

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/hospiflow/internal/model"
)

const updateValidationMessage = "All fields are required"

// messages maps field and failing tag to the message shown on create.
var messages = map[string]map[string]string{
	"FirstName":     {"required": "First name is required"},
	"LastName":      {"required": "Last name is required"},
	"Role":          {"required": "Role is required", "role": "Role is invalid"},
	"Department":    {"required": "Department is required"},
	"Email":         {"required": "A valid email is required", "contains": "A valid email is required"},
	"Phone":         {"required": "Phone is required"},
	"Qualification": {"required": "Qualification is required"},
	"Status":        {"oneof": "Status must be active or inactive"},
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return model.Role(fl.Field().String()).Valid()
	})
	return v
}

// firstMessage returns the message for the first failing field in struct
// order, or "" when req is valid.
func firstMessage(v *validator.Validate, req *model.StaffRequest) string {
	err := v.Struct(req)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid staff data"
	}

	fe := verrs[0]
	if msg, ok := messages[fe.StructField()][fe.Tag()]; ok {
		return msg
	}
	return "Invalid staff data"
}
