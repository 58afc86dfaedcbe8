package user

import (
	"context"
	"testing"

	"localmart/internal/structs"
	"localmart/pkg/logger"
	"localmart/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUsersRepo struct {
	byEmail map[string]structs.User
}

func newMockUsersRepo() *mockUsersRepo {
	return &mockUsersRepo{byEmail: map[string]structs.User{}}
}

func (m *mockUsersRepo) Create(ctx context.Context, user structs.User) (structs.User, error) {
	if _, ok := m.byEmail[user.Email]; ok {
		return structs.User{}, structs.ErrUniqueViolation
	}
	user.ID = "u-" + user.Email
	m.byEmail[user.Email] = user
	return user, nil
}

func (m *mockUsersRepo) GetByEmail(ctx context.Context, email string) (structs.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return structs.User{}, structs.ErrNotFound
	}
	return user, nil
}

func (m *mockUsersRepo) GetByID(ctx context.Context, id string) (structs.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return structs.User{}, structs.ErrNotFound
}

type mockProfileRepo struct {
	byUserID map[string]structs.Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{byUserID: map[string]structs.Profile{}}
}

func (m *mockProfileRepo) Create(ctx context.Context, profile structs.Profile) (structs.Profile, error) {
	m.byUserID[profile.UserID] = profile
	return profile, nil
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (structs.Profile, error) {
	profile, ok := m.byUserID[userID]
	if !ok {
		return structs.Profile{}, structs.ErrNotFound
	}
	return profile, nil
}

func (m *mockProfileRepo) Patch(ctx context.Context, req structs.PatchProfile) error {
	return nil
}

func newTestService(t *testing.T) Service {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")

	return New(Params{
		Logger:      logger.New("error"),
		UsersRepo:   newMockUsersRepo(),
		ProfileRepo: newMockProfileRepo(),
	})
}

func TestSignUpDefaultsToCustomer(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.SignUp(context.Background(), structs.SignUpRequest{
		Email:    "  Ann@Example.com ",
		Password: "secret1",
		FullName: "Ann",
	})
	require.NoError(t, err)

	assert.Equal(t, "ann@example.com", resp.User.Email)
	assert.Equal(t, structs.UserTypeCustomer, resp.Profile.UserType)
	assert.NotEmpty(t, resp.Token)

	claims, err := utils.ParseJWT(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims["id"])
	assert.Equal(t, structs.UserTypeCustomer, claims["user_type"])
}

func TestSignUpRejectsUnknownUserType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SignUp(context.Background(), structs.SignUpRequest{
		Email:    "bob@example.com",
		Password: "secret1",
		FullName: "Bob",
		UserType: "admin",
	})
	assert.ErrorIs(t, err, structs.ErrBadRequest)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	req := structs.SignUpRequest{Email: "dup@example.com", Password: "secret1", FullName: "Dup"}
	_, err := svc.SignUp(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), req)
	assert.ErrorIs(t, err, structs.ErrUniqueViolation)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.SignUp(context.Background(), structs.SignUpRequest{
		Email:    "vendor@example.com",
		Password: "secret1",
		FullName: "Vendor",
		UserType: "vendor",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), structs.LoginRequest{
		Email:    "Vendor@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, structs.UserTypeVendor, resp.Profile.UserType)
	assert.NotEmpty(t, resp.Token)

	// wrong password and unknown email both come back as the same error
	_, err = svc.Login(context.Background(), structs.LoginRequest{Email: "vendor@example.com", Password: "nope"})
	assert.ErrorIs(t, err, structs.ErrInvalidPassword)

	_, err = svc.Login(context.Background(), structs.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, structs.ErrInvalidPassword)
}

func TestGetMe(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.SignUp(context.Background(), structs.SignUpRequest{
		Email:    "me@example.com",
		Password: "secret1",
		FullName: "Me",
	})
	require.NoError(t, err)

	resp, err := svc.GetMe(context.Background(), created.User.ID)
	require.NoError(t, err)
	assert.Equal(t, created.User.Email, resp.User.Email)
	assert.Equal(t, "Me", resp.Profile.FullName)

	_, err = svc.GetMe(context.Background(), "missing")
	assert.ErrorIs(t, err, structs.ErrNotFound)
}
