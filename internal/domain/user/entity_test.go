package user_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pantrywise/v1/internal/domain/user"
)

type UserEntityTestSuite struct {
	suite.Suite
}

func (suite *UserEntityTestSuite) TestNewUser() {
	suite.Run("valid user", func() {
		u, err := user.NewUser("Alice@Example.com", "Alice", "supersecret")

		suite.Require().NoError(err)
		suite.Equal("alice@example.com", u.Email())
		suite.Equal("Alice", u.Name())
		suite.NotEqual("supersecret", u.PasswordHash())
	})

	suite.Run("invalid email", func() {
		_, err := user.NewUser("not-an-email", "Alice", "supersecret")
		suite.ErrorIs(err, user.ErrInvalidEmail)
	})

	suite.Run("empty name", func() {
		_, err := user.NewUser("alice@example.com", "  ", "supersecret")
		suite.ErrorIs(err, user.ErrEmptyName)
	})

	suite.Run("short password", func() {
		_, err := user.NewUser("alice@example.com", "Alice", "short")
		suite.ErrorIs(err, user.ErrPasswordTooShort)
	})
}

func (suite *UserEntityTestSuite) TestCheckPassword() {
	u, err := user.NewUser("alice@example.com", "Alice", "supersecret")
	suite.Require().NoError(err)

	suite.True(u.CheckPassword("supersecret"))
	suite.False(u.CheckPassword("wrong"))
}

func TestUserEntityTestSuite(t *testing.T) {
	suite.Run(t, new(UserEntityTestSuite))
}
