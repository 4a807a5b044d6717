package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	userapp "github.com/pantrywise/v1/internal/application/user"
	"github.com/pantrywise/v1/internal/domain/user"
	"github.com/pantrywise/v1/internal/ports/inbound"
	"github.com/pantrywise/v1/pkg/errors"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[uuid.UUID]*user.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.byEmail[u.Email()] = u
	f.byID[u.ID()] = u
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

type stubTokenService struct{}

func (stubTokenService) Issue(userID uuid.UUID, email string) (string, time.Time, error) {
	return "token-" + userID.String(), time.Now().Add(time.Hour), nil
}

func (stubTokenService) Validate(token string) (uuid.UUID, error) {
	return uuid.Nil, errors.NewUnauthorizedError("invalid token")
}

type AuthServiceTestSuite struct {
	suite.Suite
	svc  inbound.AuthService
	repo *fakeUserRepo
	ctx  context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.repo = newFakeUserRepo()
	suite.svc = userapp.NewAuthService(suite.repo, stubTokenService{}, zap.NewNop())
	suite.ctx = context.Background()
}

func (suite *AuthServiceTestSuite) register(email string) *inbound.UserDTO {
	dto, err := suite.svc.Register(suite.ctx, inbound.RegisterCommand{
		Email:    email,
		Name:     "Test User",
		Password: "correct-horse-battery",
	})
	suite.Require().NoError(err)
	return dto
}

func (suite *AuthServiceTestSuite) TestRegister() {
	dto := suite.register("alice@example.com")

	suite.Equal("alice@example.com", dto.Email)
	suite.Equal("Test User", dto.Name)
	suite.NotEqual(uuid.Nil, dto.ID)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	suite.register("alice@example.com")

	_, err := suite.svc.Register(suite.ctx, inbound.RegisterCommand{
		Email:    "alice@example.com",
		Name:     "Other",
		Password: "another-password",
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeEmailAlreadyExists))
}

func (suite *AuthServiceTestSuite) TestRegisterWeakPassword() {
	_, err := suite.svc.Register(suite.ctx, inbound.RegisterCommand{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "short",
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeValidationFailed))
}

func (suite *AuthServiceTestSuite) TestLogin() {
	suite.register("alice@example.com")

	token, err := suite.svc.Login(suite.ctx, inbound.LoginCommand{
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(token.AccessToken)
	suite.Equal("Bearer", token.TokenType)
	suite.Equal("alice@example.com", token.User.Email)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	suite.register("alice@example.com")

	_, err := suite.svc.Login(suite.ctx, inbound.LoginCommand{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeInvalidCredentials))
}

func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	_, err := suite.svc.Login(suite.ctx, inbound.LoginCommand{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeInvalidCredentials))
}

func (suite *AuthServiceTestSuite) TestGetUser() {
	dto := suite.register("alice@example.com")

	found, err := suite.svc.GetUser(suite.ctx, dto.ID)

	suite.Require().NoError(err)
	suite.Equal(dto.Email, found.Email)
}

func (suite *AuthServiceTestSuite) TestGetUserNotFound() {
	_, err := suite.svc.GetUser(suite.ctx, uuid.New())

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeUserNotFound))
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
