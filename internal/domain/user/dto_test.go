package user

import (
	"testing"

	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCredentialsRequest_Defaults(t *testing.T) {
	req := GenerateCredentialsRequest{Email: "  new.hire@example.com "}
	req.ApplyDefaults()

	assert.Equal(t, "Employee", req.FirstName)
	assert.Equal(t, "User", req.LastName)
	assert.Equal(t, "new.hire@example.com", req.Email)
	assert.NoError(t, req.Validate())
}

func TestGenerateCredentialsRequest_Validate(t *testing.T) {
	req := GenerateCredentialsRequest{FirstName: "J4ne", LastName: "Doe", Email: "nope"}
	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "email")
	assert.Contains(t, m, "first_name")
	assert.NotContains(t, m, "last_name")
}

func TestCreateUserRequest_Validate(t *testing.T) {
	ok := CreateUserRequest{Username: "root", Email: "root@example.com", Password: "Adm1n!pass", Role: "admin"}
	assert.NoError(t, ok.Validate())

	bad := CreateUserRequest{Username: "root user", Email: "root@example.com", Password: "weak", Role: "owner"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, bad.Validate(), &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "username")
	assert.Contains(t, m, "password")
	assert.Contains(t, m, "role")
}
