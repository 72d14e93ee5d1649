package devapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-accounts-ui/internal/domain/account"
	apperrors "github.com/target/mmk-accounts-ui/internal/errors"
	"github.com/target/mmk-accounts-ui/internal/testutil"
)

func newAPI(t *testing.T, clock func() time.Time) *API {
	t.Helper()
	api, err := New(Config{AdminEmail: "admin@example.com", AdminPassword: "Admin@123", Now: clock})
	require.NoError(t, err)
	return api
}

func TestNew_RequiresAdminPassword(t *testing.T) {
	t.Parallel()
	_, err := New(Config{AdminEmail: "admin@example.com"})
	require.Error(t, err)
}

func TestAPI_SignupLoginMe(t *testing.T) {
	t.Parallel()
	api := newAPI(t, nil)
	ctx := context.Background()

	res, err := api.Signup(ctx, testutil.ValidSignup())
	require.NoError(t, err)
	require.NotEmpty(t, res.JWT)
	assert.Equal(t, int64(2), res.ID)

	me, err := api.Me(ctx, res.JWT)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", me.Email)

	login, err := api.Login(ctx, account.Credentials{Email: "ASHA@example.com", Password: "Passw0rd!"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	_, err = api.Login(ctx, account.Credentials{Email: "asha@example.com", Password: "nope"})
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Incorrect email or password", apperrors.GetDetail(err))
}

func TestAPI_DuplicateSignup(t *testing.T) {
	t.Parallel()
	api := newAPI(t, nil)

	req := testutil.ValidSignup()
	req.Email = "admin@example.com"
	_, err := api.Signup(context.Background(), req)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Email already registered", apperrors.GetDetail(err))
}

func TestAPI_RejectsBadTokens(t *testing.T) {
	t.Parallel()
	clock := testutil.NewTestTimeProvider(testutil.TestTime())
	api := newAPI(t, clock.Now)
	ctx := context.Background()

	_, err := api.Me(ctx, "garbage")
	assert.True(t, apperrors.IsUnauthorized(err))

	foreign := testutil.SignedToken(t, "1", testutil.TestTime().Add(time.Hour))
	_, err = api.Me(ctx, foreign)
	assert.True(t, apperrors.IsUnauthorized(err), "token signed with another key")

	login, err := api.Login(ctx, account.Credentials{Email: "admin@example.com", Password: "Admin@123"})
	require.NoError(t, err)

	clock.AddTime(9 * time.Hour)
	_, err = api.Me(ctx, login.AccessToken)
	assert.True(t, apperrors.IsUnauthorized(err), "expired token")
}

func TestAPI_UpdateProfile(t *testing.T) {
	t.Parallel()
	api := newAPI(t, nil)
	ctx := context.Background()

	res, err := api.Signup(ctx, testutil.ValidSignup())
	require.NoError(t, err)

	upd := account.UpdateFromProfile(res.Profile)
	upd.Name = "Asha Menon"
	upd.Email = "asha.menon@example.com"
	p, err := api.UpdateProfile(ctx, res.JWT, upd)
	require.NoError(t, err)
	assert.Equal(t, "Asha Menon", p.Name)

	_, err = api.Login(ctx, account.Credentials{Email: "asha.menon@example.com", Password: "Passw0rd!"})
	require.NoError(t, err)

	upd.Email = "admin@example.com"
	_, err = api.UpdateProfile(ctx, res.JWT, upd)
	assert.True(t, apperrors.IsConflict(err))
}

func TestAPI_ListUsersAdminOnly(t *testing.T) {
	t.Parallel()
	api := newAPI(t, nil)
	ctx := context.Background()

	res, err := api.Signup(ctx, testutil.ValidSignup())
	require.NoError(t, err)

	_, err = api.ListUsers(ctx, res.JWT)
	assert.True(t, apperrors.IsForbidden(err))

	admin, err := api.Login(ctx, account.Credentials{Email: "admin@example.com", Password: "Admin@123"})
	require.NoError(t, err)
	users, err := api.ListUsers(ctx, admin.AccessToken)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].IsAdmin)
	assert.Equal(t, "Asha Rao", users[1].Name)
}
