package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/todo_api/internal/adapters/filestore"
	"github.com/SscSPs/todo_api/internal/apperrors"
	"github.com/SscSPs/todo_api/internal/core/domain"
	portsrepo "github.com/SscSPs/todo_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/todo_api/internal/core/ports/services"
	"github.com/SscSPs/todo_api/internal/core/services"
	"github.com/SscSPs/todo_api/internal/dto"
	"github.com/SscSPs/todo_api/internal/platform/config"
	"github.com/SscSPs/todo_api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                  "access-secret",
		RefreshTokenSecret:         "refresh-secret",
		JWTExpiryDuration:          15 * time.Minute,
		RefreshTokenExpiryDuration: 7 * 24 * time.Hour,
		JWTIssuer:                  "todo-api-test",
		BcryptCost:                 bcrypt.MinCost,
	}
}

type AuthServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repos   portsrepo.RepositoryProvider
	service portssvc.AuthSvcFacade
	tokens  portssvc.TokenSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	repos, err := filestore.NewRepositoryProvider(suite.T().TempDir())
	suite.Require().NoError(err)
	suite.repos = repos

	container := services.NewServiceContainer(testConfig(), repos)
	suite.service = container.Auth
	suite.tokens = container.Token
}

func (suite *AuthServiceTestSuite) register(email, password string) *dto.TokenPairResponse {
	pair, err := suite.service.Register(suite.ctx, dto.RegisterRequest{Email: email, Password: password})
	suite.Require().NoError(err)
	return pair
}

func (suite *AuthServiceTestSuite) userIDOf(pair *dto.TokenPairResponse) int64 {
	claims, err := suite.tokens.VerifyAccessToken(pair.AccessToken)
	suite.Require().NoError(err)
	return claims.UserID
}

// --- Register ---

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	age := 31
	pair, err := suite.service.Register(suite.ctx, dto.RegisterRequest{Email: "a@b.c", Password: "pw", Age: &age})
	suite.Require().NoError(err)
	suite.NotEmpty(pair.AccessToken)
	suite.NotEmpty(pair.RefreshToken)

	user, err := suite.repos.UserRepo.FindUserByEmail(suite.ctx, "a@b.c")
	suite.Require().NoError(err)
	suite.NotEqual("pw", user.Password)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pw")))
	suite.Require().NotNil(user.Age)
	suite.Equal(31, *user.Age)
	suite.Equal(user.ID, suite.userIDOf(pair))

	_, err = suite.repos.RefreshTokenRepo.FindRefreshToken(suite.ctx, pair.RefreshToken)
	suite.NoError(err)
}

func (suite *AuthServiceTestSuite) TestRegister_ZeroAgeStoredAsNull() {
	age := 0
	_, err := suite.service.Register(suite.ctx, dto.RegisterRequest{Email: "a@b.c", Password: "pw", Age: &age})
	suite.Require().NoError(err)

	user, err := suite.repos.UserRepo.FindUserByEmail(suite.ctx, "a@b.c")
	suite.Require().NoError(err)
	suite.Nil(user.Age)
}

func (suite *AuthServiceTestSuite) TestRegister_MissingFields() {
	for _, req := range []dto.RegisterRequest{{Email: "a@b.c"}, {Password: "pw"}, {}} {
		_, err := suite.service.Register(suite.ctx, req)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Equal("Email and password required", apperrors.Message(err, ""))
	}
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	suite.register("a@b.c", "pw")

	_, err := suite.service.Register(suite.ctx, dto.RegisterRequest{Email: "a@b.c", Password: "other"})
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal("User already exists", apperrors.Message(err, ""))

	// Email comparison is case-sensitive.
	suite.register("A@b.c", "pw")
}

// --- Login ---

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	registered := suite.register("a@b.c", "pw")

	pair, err := suite.service.Login(suite.ctx, dto.LoginRequest{Email: "a@b.c", Password: "pw"})
	suite.Require().NoError(err)
	suite.Equal(suite.userIDOf(registered), suite.userIDOf(pair))
	suite.NotEqual(registered.RefreshToken, pair.RefreshToken)
}

func (suite *AuthServiceTestSuite) TestLogin_InvalidCredentials() {
	suite.register("a@b.c", "pw")

	for _, req := range []dto.LoginRequest{
		{Email: "a@b.c", Password: "wrong"},
		{Email: "nobody@b.c", Password: "pw"},
		{Email: "a@b.c"},
	} {
		_, err := suite.service.Login(suite.ctx, req)
		suite.ErrorIs(err, apperrors.ErrUnauthorized)
		suite.Equal("Invalid credentials", apperrors.Message(err, ""))
	}
}

// --- Refresh ---

func (suite *AuthServiceTestSuite) TestRefresh_RotatesToken() {
	first := suite.register("a@b.c", "pw")

	second, err := suite.service.Refresh(suite.ctx, first.RefreshToken)
	suite.Require().NoError(err)
	suite.NotEqual(first.RefreshToken, second.RefreshToken)

	_, err = suite.service.Refresh(suite.ctx, first.RefreshToken)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
	suite.Equal("Invalid refresh token", apperrors.Message(err, ""))

	_, err = suite.service.Refresh(suite.ctx, second.RefreshToken)
	suite.NoError(err)
}

func (suite *AuthServiceTestSuite) TestRefresh_MissingToken() {
	_, err := suite.service.Refresh(suite.ctx, "")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Equal("Refresh token required", apperrors.Message(err, ""))
}

func (suite *AuthServiceTestSuite) TestRefresh_UnknownToken() {
	_, err := suite.service.Refresh(suite.ctx, "not-a-token")
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *AuthServiceTestSuite) TestRefresh_StoredButBadlySigned() {
	suite.Require().NoError(suite.repos.RefreshTokenRepo.SaveRefreshToken(suite.ctx, domain.RefreshToken{Token: "forged", UserID: 1}))

	_, err := suite.service.Refresh(suite.ctx, "forged")
	suite.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (suite *AuthServiceTestSuite) TestRefresh_UserGone() {
	ghost := &domain.User{ID: 42}
	token, err := suite.tokens.IssueRefreshToken(ghost)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repos.RefreshTokenRepo.SaveRefreshToken(suite.ctx, domain.RefreshToken{Token: token, UserID: ghost.ID}))

	_, err = suite.service.Refresh(suite.ctx, token)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal("User not found", apperrors.Message(err, ""))
}

// --- Logout ---

func (suite *AuthServiceTestSuite) TestLogout() {
	pair := suite.register("a@b.c", "pw")

	suite.Require().NoError(suite.service.Logout(suite.ctx, pair.RefreshToken))
	_, err := suite.service.Refresh(suite.ctx, pair.RefreshToken)
	suite.ErrorIs(err, apperrors.ErrInvalidToken)

	// Idempotent.
	suite.NoError(suite.service.Logout(suite.ctx, pair.RefreshToken))
	suite.ErrorIs(suite.service.Logout(suite.ctx, ""), apperrors.ErrUnauthorized)
}

// --- Me ---

func (suite *AuthServiceTestSuite) TestMe() {
	pair := suite.register("a@b.c", "pw")

	user, err := suite.service.Me(suite.ctx, suite.userIDOf(pair))
	suite.Require().NoError(err)
	suite.Equal("a@b.c", user.Email)

	_, err = suite.service.Me(suite.ctx, 1)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ChangePassword ---

func (suite *AuthServiceTestSuite) TestChangePassword_RevokesAllSessions() {
	first := suite.register("a@b.c", "old")
	second, err := suite.service.Login(suite.ctx, dto.LoginRequest{Email: "a@b.c", Password: "old"})
	suite.Require().NoError(err)
	userID := suite.userIDOf(first)

	err = suite.service.ChangePassword(suite.ctx, userID, dto.ChangePasswordRequest{OldPassword: "old", NewPassword: "new"})
	suite.Require().NoError(err)

	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		_, err := suite.service.Refresh(suite.ctx, token)
		suite.ErrorIs(err, apperrors.ErrInvalidToken)
	}

	_, err = suite.service.Login(suite.ctx, dto.LoginRequest{Email: "a@b.c", Password: "old"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = suite.service.Login(suite.ctx, dto.LoginRequest{Email: "a@b.c", Password: "new"})
	suite.NoError(err)
}

func (suite *AuthServiceTestSuite) TestChangePassword_Failures() {
	pair := suite.register("a@b.c", "old")
	userID := suite.userIDOf(pair)

	err := suite.service.ChangePassword(suite.ctx, userID, dto.ChangePasswordRequest{OldPassword: "old"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("Both passwords are required", apperrors.Message(err, ""))

	err = suite.service.ChangePassword(suite.ctx, userID, dto.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "new"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Equal("Invalid old password", apperrors.Message(err, ""))

	err = suite.service.ChangePassword(suite.ctx, 1, dto.ChangePasswordRequest{OldPassword: "old", NewPassword: "new"})
	suite.ErrorIs(err, apperrors.ErrNotFound)

	// The failed attempts left the session alone.
	_, err = suite.service.Refresh(suite.ctx, pair.RefreshToken)
	suite.NoError(err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

// --- Mock-backed cases ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestRegister_LosesDuplicateRace(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	repos, err := filestore.NewRepositoryProvider(t.TempDir())
	require.NoError(t, err)
	svc := services.NewAuthService(userRepo, repos.RefreshTokenRepo, services.NewTokenService(testConfig()), utils.NewBcryptHasher(bcrypt.MinCost), utils.NewIDGenerator())

	userRepo.On("FindUserByEmail", ctx, "a@b.c").Return(nil, apperrors.ErrNotFound).Once()
	userRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "a@b.c" && u.Password != "pw" && u.ID > 0
	})).Return(apperrors.ErrDuplicate).Once()

	_, err = svc.Register(ctx, dto.RegisterRequest{Email: "a@b.c", Password: "pw"})

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Equal(t, "User already exists", apperrors.Message(err, ""))
	userRepo.AssertExpectations(t)
}
