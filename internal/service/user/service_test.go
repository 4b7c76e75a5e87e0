package user

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	users []user.User
}

func (r *memUserRepo) find(match func(user.User) bool) (user.User, error) {
	for _, u := range r.users {
		if match(u) {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	return r.find(func(u user.User) bool { return u.ID == id })
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	return r.find(func(u user.User) bool { return u.Username == username })
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	return r.find(func(u user.User) bool { return u.Email == email })
}

func (r *memUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = "generated-" + u.Username
	r.users = append(r.users, u)
	return u, nil
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, userID, hash string) error {
	for i := range r.users {
		if r.users[i].ID == userID {
			r.users[i].PasswordHash = &hash
			return nil
		}
	}
	return user.ErrUserNotFound
}

var (
	admin    = user.Principal{ID: "a1", Username: "root", Email: "root@example.com", Role: user.RoleAdmin}
	manager  = user.Principal{ID: "m1", Username: "mark", Email: "mark@example.com", Role: user.RoleManager}
	employee = user.Principal{ID: "e1", Username: "jane", Email: "jane@example.com", Role: user.RoleEmployee}
)

func TestGenerateCredentials_Defaults(t *testing.T) {
	repo := &memUserRepo{}
	svc := NewUserService(repo)

	creds, err := svc.GenerateCredentials(context.Background(), admin, user.GenerateCredentialsRequest{Email: " New@Example.com "})

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^employee\.user[1-9][0-9]{2}$`), creds.Username)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{10}$`), creds.Password)

	require.Len(t, repo.users, 1)
	created := repo.users[0]
	assert.Equal(t, user.RoleEmployee, created.Role)
	assert.Equal(t, "new@example.com", created.Email)
	assert.Equal(t, "Employee", created.FirstName)
	require.NotNil(t, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte(creds.Password)))
}

func TestGenerateCredentials_UsesNames(t *testing.T) {
	svc := NewUserService(&memUserRepo{})

	creds, err := svc.GenerateCredentials(context.Background(), admin, user.GenerateCredentialsRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})

	require.NoError(t, err)
	assert.Regexp(t, `^ada\.lovelace\d{3}$`, creds.Username)
}

func TestGenerateCredentials_EmailTaken(t *testing.T) {
	repo := &memUserRepo{users: []user.User{{ID: "x", Username: "x", Email: "taken@example.com"}}}
	svc := NewUserService(repo)

	_, err := svc.GenerateCredentials(context.Background(), admin, user.GenerateCredentialsRequest{Email: "taken@example.com"})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "Email is already taken. Please try another one.", verrs.ToMap()["email"])
	assert.Len(t, repo.users, 1)
}

func TestGenerateCredentials_NonAdminDenied(t *testing.T) {
	for _, actor := range []user.Principal{manager, employee, {}} {
		svc := NewUserService(&memUserRepo{})
		_, err := svc.GenerateCredentials(context.Background(), actor, user.GenerateCredentialsRequest{Email: "a@example.com"})
		assert.ErrorIs(t, err, user.ErrAccessDenied)
	}
}

func TestGenerateCredentials_RetriesTakenUsername(t *testing.T) {
	repo := &memUserRepo{users: []user.User{{ID: "x", Username: "employee.user100", Email: "x@example.com"}}}
	svc := NewUserService(repo).(*UserServiceImpl)
	draws := []int{0, 0, 5}
	svc.randInt = func(n int) (int, error) {
		if len(draws) > 0 {
			v := draws[0]
			draws = draws[1:]
			return v, nil
		}
		return 1, nil
	}

	creds, err := svc.GenerateCredentials(context.Background(), admin, user.GenerateCredentialsRequest{Email: "new@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "employee.user105", creds.Username)
}

func TestMe(t *testing.T) {
	repo := &memUserRepo{users: []user.User{{ID: "e1", Username: "jane", Email: "jane@example.com", Role: user.RoleEmployee}}}
	svc := NewUserService(repo)

	me, err := svc.Me(context.Background(), employee)
	require.NoError(t, err)
	assert.Equal(t, "jane", me.Username)
	assert.Equal(t, "employee", me.Role)

	_, err = svc.Me(context.Background(), manager)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = svc.Me(context.Background(), user.Principal{})
	assert.ErrorIs(t, err, user.ErrUnauthenticated)
}

func TestCreateUserAndResetPassword(t *testing.T) {
	repo := &memUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, user.CreateUserRequest{
		Username: "boss",
		Email:    "Boss@Example.com",
		Password: "Str0ng!pass",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, created.Role)
	assert.Equal(t, "boss@example.com", created.Email)

	_, err = svc.CreateUser(ctx, user.CreateUserRequest{Username: "boss", Email: "b2@example.com", Password: "Str0ng!pass", Role: "admin"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	require.NoError(t, svc.ResetPassword(ctx, "boss@example.com", "N3w!password"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*repo.users[0].PasswordHash), []byte("N3w!password")))

	assert.Error(t, svc.ResetPassword(ctx, "boss", "weak"))
	assert.ErrorIs(t, svc.ResetPassword(ctx, "ghost", "N3w!password"), user.ErrUserNotFound)
}
