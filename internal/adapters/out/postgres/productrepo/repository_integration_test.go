package productrepo_test

import (
	"context"
	"testing"
	"time"

	"roboshop/internal/adapters/out/postgres/pgtest"
	"roboshop/internal/adapters/out/postgres/productrepo"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *productrepo.GormProductRepository
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Reset())
	suite.repository = productrepo.NewGormProductRepository(suite.pg.DB)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Stop(context.Background()))
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAdd_ThenGet_KeepsArraysAndPrices() {
	ctx := context.Background()
	p := suite.newProduct("SRV-MG996R", "MG996R Servo", 45000, 10)

	suite.Require().NoError(suite.repository.Add(ctx, p))

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(p.Fields(), got.Fields())
	suite.True(got.SellerID().IsEqual(p.SellerID()))

	bySKU, err := suite.repository.GetBySKU(ctx, "SRV-MG996R")
	suite.Require().NoError(err)
	suite.True(bySKU.ID().IsEqual(p.ID()))
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAdd_DuplicateKeys_ReturnAlreadyExists() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newProduct("SRV-1", "Servo One", 100, 1)))

	err := suite.repository.Add(ctx, suite.newProduct("SRV-1", "Servo Two", 100, 1))
	suite.Require().ErrorIs(err, errs.ErrAlreadyExists)
	suite.Contains(err.Error(), "sku")

	err = suite.repository.Add(ctx, suite.newProduct("SRV-2", "Servo One", 100, 1))
	suite.Require().ErrorIs(err, errs.ErrAlreadyExists)
	suite.Contains(err.Error(), "slug")
}

func (suite *ProductRepositoryIntegrationTestSuite) TestUpdate_PersistsStockAndFields() {
	ctx := context.Background()
	p := suite.newProduct("MTR-N20", "N20 Gear Motor", 30000, 5)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	f := p.Fields()
	f.Brand = "Pololu"
	f.Tags = []string{"motor", "gear"}
	suite.Require().NoError(p.Update(f, time.Now()))
	suite.Require().NoError(p.DecreaseStock(2))
	suite.Require().NoError(suite.repository.Update(ctx, p))

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal("Pololu", got.Fields().Brand)
	suite.Equal([]string{"motor", "gear"}, got.Fields().Tags)
	suite.Equal(3, got.Stock())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	p := suite.newProduct("BAT-18650", "18650 Cell", 25000, 40)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	suite.Require().NoError(suite.repository.Delete(ctx, p.ID()))

	_, err := suite.repository.Get(ctx, p.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, p.ID()), errs.ErrObjectNotFound)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGetManyForUpdate_SkipsMissingIDs() {
	ctx := context.Background()
	a := suite.newProduct("A-1", "Part A", 100, 1)
	b := suite.newProduct("B-1", "Part B", 200, 2)
	suite.Require().NoError(suite.repository.Add(ctx, a))
	suite.Require().NoError(suite.repository.Add(ctx, b))

	tx := suite.pg.DB.Begin()
	defer tx.Rollback()
	repo := productrepo.NewGormProductRepository(tx)

	got, err := repo.GetManyForUpdate(ctx, []kernel.UUID{a.ID(), b.ID(), kernel.NewUUID()})

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.Equal("B-1", got[b.ID()].SKU())
}

func (suite *ProductRepositoryIntegrationTestSuite) newProduct(sku, name string, price int64, stock int) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), kernel.NewUUID(), product.Fields{
		SKU:            sku,
		Name:           name,
		Category:       "motors",
		Price:          kernel.MustMoney(price),
		CompareAtPrice: kernel.MustMoney(price + 500),
		Stock:          stock,
		Tags:           []string{"servo"},
		ImageURLs:      []string{"https://cdn.roboshop.test/" + sku + ".jpg"},
		Active:         true,
	}, time.Now())
	suite.Require().NoError(err)
	return p
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
