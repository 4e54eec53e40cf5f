package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo UserRepository
	ctx  context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewUserRepo(mock)
	suite.ctx = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func (suite *UserRepoTestSuite) TestCreate() {
	user := &models.User{
		ID:         uuid.New(),
		ProviderID: "user_abc",
		Email:      "ana@example.com",
		FirstName:  "Ana",
		LastName:   "Lopez",
	}

	suite.mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.ProviderID, user.Email, user.FirstName, user.LastName).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, user)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *UserRepoTestSuite) TestGetByProviderID() {
	id := uuid.New()
	now := time.Now()

	suite.mock.ExpectQuery(`SELECT id, provider_id, email, first_name, last_name, created_at, updated_at`).
		WithArgs("user_abc").
		WillReturnRows(pgxmock.NewRows([]string{"id", "provider_id", "email", "first_name", "last_name", "created_at", "updated_at"}).
			AddRow(id, "user_abc", "ana@example.com", "Ana", "Lopez", now, now))

	user, err := suite.repo.GetByProviderID(suite.ctx, "user_abc")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), id, user.ID)
	assert.Equal(suite.T(), "ana@example.com", user.Email)
}

func (suite *UserRepoTestSuite) TestGetByProviderID_NotFound() {
	suite.mock.ExpectQuery(`SELECT id, provider_id, email, first_name, last_name, created_at, updated_at`).
		WithArgs("user_missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.GetByProviderID(suite.ctx, "user_missing")
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *UserRepoTestSuite) TestUpdateByProviderID() {
	user := &models.User{
		ProviderID: "user_abc",
		Email:      "new@example.com",
		FirstName:  "Ana",
		LastName:   "Diaz",
	}

	suite.mock.ExpectExec(`UPDATE users`).
		WithArgs(user.Email, user.FirstName, user.LastName, user.ProviderID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdateByProviderID(suite.ctx, user)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestDeleteByProviderID() {
	suite.mock.ExpectExec(`DELETE FROM users WHERE provider_id = \$1`).
		WithArgs("user_abc").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.DeleteByProviderID(suite.ctx, "user_abc")
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestList() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "provider_id", "email", "first_name", "last_name", "created_at", "updated_at"}).
		AddRow(uuid.New(), "user_1", "a@example.com", "A", "One", now, now).
		AddRow(uuid.New(), "user_2", "b@example.com", "B", "Two", now, now)

	suite.mock.ExpectQuery(`SELECT id, provider_id, email, first_name, last_name, created_at, updated_at`).
		WithArgs(100, 0).
		WillReturnRows(rows)

	users, err := suite.repo.List(suite.ctx, 100, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 2)
	assert.Equal(suite.T(), "user_1", users[0].ProviderID)
}
