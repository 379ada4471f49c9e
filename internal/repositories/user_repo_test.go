package repositories

import (
	"context"
	"errors"
	"testing"

	"superinv/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    UserRepository
	context context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewUserRepo(mock)
	suite.context = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func (suite *UserRepoTestSuite) TestCreate_Success() {
	user := &models.User{
		ID:           uuid.New(),
		Username:     "cashier1",
		FirstName:    "Ada",
		LastName:     "Okafor",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
	}

	suite.mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Username, user.FirstName, user.LastName, user.Email, user.PasswordHash).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, user)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestCreate_DuplicateEmail() {
	user := &models.User{
		ID:       uuid.New(),
		Username: "cashier1",
		Email:    "ada@example.com",
	}

	suite.mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Username, user.FirstName, user.LastName, user.Email, user.PasswordHash).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := suite.repo.Create(suite.context, user)
	assert.True(suite.T(), errors.Is(err, ErrDuplicate))
}

func (suite *UserRepoTestSuite) TestGetByEmail_NotFound() {
	suite.mock.ExpectQuery(`FROM users`).
		WithArgs("missing@example.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := suite.repo.GetByEmail(suite.context, "missing@example.com")
	assert.Nil(suite.T(), user)
	assert.True(suite.T(), errors.Is(err, ErrNotFound))
}
