package auth

import (
	"testing"

	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() RegisterRequest {
	return RegisterRequest{
		Username:        "janedoe",
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Password:        "Secr3t!pw",
		ConfirmPassword: "Secr3t!pw",
		Role:            "employee",
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs.ToMap()
}

func TestRegisterRequest_Valid(t *testing.T) {
	req := validRegister()
	assert.NoError(t, req.Validate())
}

func TestRegisterRequest_FieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *RegisterRequest)
		field  string
	}{
		{"username not alphanumeric", func(r *RegisterRequest) { r.Username = "jane.doe" }, "username"},
		{"first name with digits", func(r *RegisterRequest) { r.FirstName = "J4ne" }, "first_name"},
		{"last name missing", func(r *RegisterRequest) { r.LastName = "" }, "last_name"},
		{"bad email", func(r *RegisterRequest) { r.Email = "jane@" }, "email"},
		{"weak password", func(r *RegisterRequest) { r.Password, r.ConfirmPassword = "password", "password" }, "password"},
		{"confirmation mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "Secr3t!px" }, "confirm_password"},
		{"unknown role", func(r *RegisterRequest) { r.Role = "owner" }, "role"},
		{"admin without code", func(r *RegisterRequest) { r.Role = "admin" }, "admin_code"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validRegister()
			c.mutate(&req)
			assert.Contains(t, fieldErrors(t, req.Validate()), c.field)
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	req := LoginRequest{}
	m := fieldErrors(t, req.Validate())
	assert.Contains(t, m, "username")
	assert.Contains(t, m, "password")

	req = LoginRequest{Username: "janedoe", Password: "anything"}
	assert.NoError(t, req.Validate())
}
