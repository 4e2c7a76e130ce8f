package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/metrics"
	"impactecho-backend/internal/security"
	"impactecho-backend/internal/service"
	"impactecho-backend/internal/session"
)

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	hashA, err := security.HashSecret("alpha")
	require.NoError(t, err)
	hashB, err := security.HashSecret("bravo")
	require.NoError(t, err)

	t.Run("shared username picks the matching secret", func(t *testing.T) {
		creds := new(MockCredentialRepo)
		logs := new(MockLoginLogRepo)
		svc := service.NewAuthService(creds, logs, service.AdminAccount{}, nil)

		creds.On("GetByUsername", ctx, "ops").Return([]domain.Credential{
			{UniqueID: "NGOAAAAAAAA", Username: "ops", SecretHash: hashA, OrgName: "A"},
			{UniqueID: "NGOBBBBBBBB", Username: "ops", SecretHash: hashB, OrgName: "B"},
		}, nil).Once()
		logs.On("Append", ctx, mock.MatchedBy(func(e *domain.LoginLog) bool {
			return e.UserType == domain.LoginUserTypeNGO && e.Identifier == "NGOBBBBBBBB"
		})).Return(nil).Once()

		sc, err := svc.Authenticate(ctx, "ops", "bravo")
		require.NoError(t, err)
		assert.Equal(t, "NGOBBBBBBBB", sc.UniqueID)
		assert.Equal(t, "B", sc.OrgName)
		logs.AssertExpectations(t)
	})

	t.Run("login log failure does not fail login", func(t *testing.T) {
		creds := new(MockCredentialRepo)
		logs := new(MockLoginLogRepo)
		svc := service.NewAuthService(creds, logs, service.AdminAccount{}, nil)

		creds.On("GetByUsername", ctx, "a").Return([]domain.Credential{
			{UniqueID: "NGOAAAAAAAA", Username: "a", SecretHash: hashA, OrgName: "A"},
		}, nil).Once()
		logs.On("Append", ctx, mock.Anything).Return(domain.ErrPersistence).Once()

		sc, err := svc.Authenticate(ctx, "a", "alpha")
		require.NoError(t, err)
		assert.True(t, sc.IsOrganization())
	})

	t.Run("store failure is not an authentication error", func(t *testing.T) {
		creds := new(MockCredentialRepo)
		svc := service.NewAuthService(creds, new(MockLoginLogRepo), service.AdminAccount{}, nil)

		creds.On("GetByUsername", ctx, "a").Return(nil, errors.Join(domain.ErrPersistence, errors.New("io"))).Once()

		_, err := svc.Authenticate(ctx, "a", "alpha")
		assert.Equal(t, domain.KindPersistence, domain.KindOf(err))
	})

	t.Run("blank input", func(t *testing.T) {
		rec := newRecorder()
		svc := service.NewAuthService(new(MockCredentialRepo), new(MockLoginLogRepo), service.AdminAccount{}, rec)

		_, err := svc.Authenticate(ctx, "", "alpha")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Equal(t, 1, rec.events[metrics.EventLoginFailed])
	})
}

func TestAuthService_AuthenticateAdmin(t *testing.T) {
	ctx := context.Background()
	hash, err := security.HashSecret("root-pass")
	require.NoError(t, err)

	logs := new(MockLoginLogRepo)
	svc := service.NewAuthService(new(MockCredentialRepo), logs, service.AdminAccount{Username: "root", PasswordHash: hash}, nil)

	logs.On("Append", ctx, mock.MatchedBy(func(e *domain.LoginLog) bool {
		return e.UserType == domain.LoginUserTypeAdmin && e.Identifier == "root"
	})).Return(nil).Once()

	sc, err := svc.AuthenticateAdmin(ctx, "root", "root-pass")
	require.NoError(t, err)
	assert.Equal(t, session.RoleAdmin, sc.Role)

	_, wrongSecret := svc.AuthenticateAdmin(ctx, "root", "nope")
	_, wrongUser := svc.AuthenticateAdmin(ctx, "toor", "root-pass")
	assert.ErrorIs(t, wrongSecret, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongSecret.Error(), wrongUser.Error())
	logs.AssertExpectations(t)
}
