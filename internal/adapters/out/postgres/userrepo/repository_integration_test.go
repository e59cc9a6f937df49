package userrepo_test

import (
	"context"
	"testing"
	"time"

	"roboshop/internal/adapters/out/postgres/pgtest"
	"roboshop/internal/adapters/out/postgres/userrepo"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *userrepo.GormUserRepository
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Reset())
	suite.repository = userrepo.NewGormUserRepository(suite.pg.DB)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Stop(context.Background()))
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_DuplicateEmail_ReturnsAlreadyExists() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newUser("ada@roboshop.test")))

	err := suite.repository.Add(ctx, suite.newUser("ADA@roboshop.test"))

	suite.Require().ErrorIs(err, errs.ErrAlreadyExists)
}

func (suite *UserRepositoryIntegrationTestSuite) TestUpdate_ReplacesAddressesInOrder() {
	ctx := context.Background()
	u := suite.newUser("ada@roboshop.test")
	suite.Require().NoError(suite.repository.Add(ctx, u))

	home := suite.newAddress("Home", "House 4")
	office := suite.newAddress("Office", "Level 9")
	suite.Require().NoError(u.AddAddress(home))
	suite.Require().NoError(u.AddAddress(office))
	suite.Require().NoError(u.ChangeProfile("Ada L.", "+8801711111111"))
	suite.Require().NoError(suite.repository.Update(ctx, u))

	got, err := suite.repository.GetByEmail(ctx, " Ada@RoboShop.test ")
	suite.Require().NoError(err)
	suite.Equal("Ada L.", got.Name())
	addresses := got.Addresses()
	suite.Require().Len(addresses, 2)
	suite.Equal("Home", addresses[0].Fields().Label)
	suite.True(addresses[0].IsDefault())
	suite.Equal("Office", addresses[1].Fields().Label)
	suite.False(addresses[1].IsDefault())

	suite.Require().NoError(got.RemoveAddress(home.ID()))
	got.SetActive(false)
	suite.Require().NoError(suite.repository.Update(ctx, got))

	again, err := suite.repository.Get(ctx, u.ID())
	suite.Require().NoError(err)
	suite.False(again.IsActive())
	suite.Require().Len(again.Addresses(), 1)
	suite.True(again.Addresses()[0].ID().IsEqual(office.ID()))
}

func (suite *UserRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetByEmail(context.Background(), "nobody@roboshop.test")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) newUser(email string) *user.User {
	u, err := user.NewUser(kernel.NewUUID(), email, "Ada", "", "$2a$10$hash", user.Customer, time.Now())
	suite.Require().NoError(err)
	return u
}

func (suite *UserRepositoryIntegrationTestSuite) newAddress(label, line1 string) user.Address {
	a, err := user.NewAddress(kernel.NewUUID(), user.AddressFields{
		Label: label, Recipient: "Ada", Phone: "017", Line1: line1, City: "Dhaka", Country: "BD",
	})
	suite.Require().NoError(err)
	return a
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
