package usecase

import (
	"context"
	"testing"

	"flight-booking/internal/data/memstore"
	"flight-booking/internal/dto/request"
	"flight-booking/pkg/apperror"
	"flight-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService() AuthService {
	store := memstore.New(zap.NewNop())
	return NewAuthService(store.Repository().User, testConfig(), zap.NewNop())
}

func registerRequest() *request.RegisterRequest {
	return &request.RegisterRequest{
		Username:  "ada",
		Email:     "Ada@Example.com",
		Password:  "correct-horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

func TestRegister_IssuesToken(t *testing.T) {
	svc := newAuthService()

	resp, err := svc.Register(context.Background(), registerRequest())

	require.NoError(t, err)
	assert.Equal(t, "ada", resp.User.Username)
	assert.Equal(t, "ada@example.com", resp.User.Email)

	userID, err := utils.ParseAccessToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
}

func TestRegister_Duplicates(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()
	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	sameUsername := registerRequest()
	sameUsername.Email = "other@example.com"
	_, err = svc.Register(ctx, sameUsername)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, "Username already exists.", apperror.PublicMessage(err))

	sameEmail := registerRequest()
	sameEmail.Username = "ada2"
	_, err = svc.Register(ctx, sameEmail)
	assert.Equal(t, "Email already exists.", apperror.PublicMessage(err))
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newAuthService()
	req := registerRequest()
	req.LastName = ""

	_, err := svc.Register(context.Background(), req)

	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestLogin(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()
	registered, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &request.LoginRequest{Username: "ada", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)

	_, err = svc.Login(ctx, &request.LoginRequest{Username: "ada", Password: "wrong-password"})
	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
	assert.Equal(t, "Invalid credentials.", apperror.PublicMessage(err))

	_, err = svc.Login(ctx, &request.LoginRequest{Username: "nobody", Password: "correct-horse"})
	assert.Equal(t, "Invalid credentials.", apperror.PublicMessage(err))
}

func TestMe(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()
	registered, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	me, err := svc.Me(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", me.LastName)

	_, err = svc.Me(ctx, 999)
	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))
}
