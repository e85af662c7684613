package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/agsavn/foodwatch/internal/apiclient"
	"github.com/agsavn/foodwatch/internal/common"
	"github.com/agsavn/foodwatch/internal/user"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements Backend for RemoteService tests.
type fakeBackend struct {
	RegisterErr error
	LoginUser   *user.User
	LoginToken  string
	LoginErr    error
	VerifyErr   error
	MeUser      *user.User
	MeErr       error

	LastRegisterEmail string
	LastLoginEmail    string
	LoginCalls        int
}

func (f *fakeBackend) Register(_ context.Context, name, email, pass string, role user.Role) (*user.User, string, error) {
	f.LastRegisterEmail = email
	return f.LoginUser, "", f.RegisterErr
}

func (f *fakeBackend) Login(_ context.Context, email, pass string) (*user.User, string, error) {
	f.LastLoginEmail = email
	f.LoginCalls++
	return f.LoginUser, f.LoginToken, f.LoginErr
}

func (f *fakeBackend) Verify(_ context.Context, tok string) error {
	return f.VerifyErr
}

func (f *fakeBackend) Me(_ context.Context, tok string) (*user.User, error) {
	return f.MeUser, f.MeErr
}

func remoteUser() *user.User {
	return &user.User{ID: "7", Name: "Alice", Email: "alice@x.com", Role: user.RoleUser, Status: user.StatusActive}
}

func TestRemoteLogin_Success(t *testing.T) {
	backend := &fakeBackend{LoginUser: remoteUser(), LoginToken: "server-token"}
	svc := NewRemoteService(backend, testLogger())

	res, err := svc.Login(context.Background(), LoginData{Email: "alice@x.com", Password: "Passw0rd"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "server-token", res.Token)
	require.Equal(t, "alice@x.com", backend.LastLoginEmail)
}

func TestRemoteLogin_APIErrorBecomesMessage(t *testing.T) {
	backend := &fakeBackend{LoginErr: &apiclient.APIError{StatusCode: 401, Message: "incorrect email or password"}}
	svc := NewRemoteService(backend, testLogger())

	res, err := svc.Login(context.Background(), LoginData{Email: "alice@x.com", Password: "bad"})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "incorrect email or password", res.Message)
}

func TestRemoteLogin_Unavailable(t *testing.T) {
	backend := &fakeBackend{LoginErr: fmt.Errorf("%w: connection refused", common.ErrUnavailable)}
	svc := NewRemoteService(backend, testLogger())

	res, err := svc.Login(context.Background(), LoginData{Email: "alice@x.com", Password: "Passw0rd"})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, common.ErrUnavailable.Error(), res.Message)
}

func TestRemoteLogin_UnexpectedErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	backend := &fakeBackend{LoginErr: boom}
	svc := NewRemoteService(backend, testLogger())

	_, err := svc.Login(context.Background(), LoginData{Email: "alice@x.com", Password: "Passw0rd"})
	require.ErrorIs(t, err, boom)
}

func TestRemoteSignup_RegistersThenLogsIn(t *testing.T) {
	backend := &fakeBackend{LoginUser: remoteUser(), LoginToken: "server-token"}
	svc := NewRemoteService(backend, testLogger())

	res, err := svc.Signup(context.Background(), SignupData{
		Name: "Alice", Email: "alice@x.com", Password: "Passw0rd", Role: user.RoleUser,
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "server-token", res.Token)
	require.Equal(t, "alice@x.com", backend.LastRegisterEmail)
	require.Equal(t, 1, backend.LoginCalls)
}

func TestRemoteSignup_RegisterFieldError(t *testing.T) {
	backend := &fakeBackend{RegisterErr: &apiclient.APIError{StatusCode: 400, Message: "user with this email already exists."}}
	svc := NewRemoteService(backend, testLogger())

	res, err := svc.Signup(context.Background(), SignupData{Name: "Alice", Email: "alice@x.com", Password: "Passw0rd"})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "user with this email already exists.", res.Message)
	require.Equal(t, 0, backend.LoginCalls)
}

func TestRemoteVerifyToken(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		backend := &fakeBackend{MeUser: remoteUser()}
		svc := NewRemoteService(backend, testLogger())

		check, err := svc.VerifyToken(context.Background(), "tok")
		require.NoError(t, err)
		require.True(t, check.Valid)
		require.Equal(t, "alice@x.com", check.User.Email)
	})

	t.Run("rejected", func(t *testing.T) {
		backend := &fakeBackend{VerifyErr: &apiclient.APIError{StatusCode: 401, Message: "invalid token"}}
		svc := NewRemoteService(backend, testLogger())

		check, err := svc.VerifyToken(context.Background(), "tok")
		require.NoError(t, err)
		require.False(t, check.Valid)
	})

	t.Run("profile fetch fails", func(t *testing.T) {
		backend := &fakeBackend{MeErr: fmt.Errorf("%w: timeout", common.ErrUnavailable)}
		svc := NewRemoteService(backend, testLogger())

		check, err := svc.VerifyToken(context.Background(), "tok")
		require.NoError(t, err)
		require.False(t, check.Valid)
	})
}
