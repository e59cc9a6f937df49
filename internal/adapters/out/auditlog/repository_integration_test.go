package auditlog_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"roboshop/internal/adapters/out/auditlog"
	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/user"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuditLogIntegrationTestSuite struct {
	suite.Suite
	container *mongodb.MongoDBContainer
	client    *mongo.Client
	log       *auditlog.MongoAuditLog
}

func (suite *AuditLogIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	suite.Require().NoError(err)
	suite.container = container

	uri, err := container.ConnectionString(ctx)
	suite.Require().NoError(err)

	client, err := auditlog.Connect(ctx, uri)
	suite.Require().NoError(err)
	suite.client = client
	suite.log = auditlog.NewMongoAuditLog(client.Database("roboshop_test"))
	suite.Require().NoError(suite.log.EnsureIndexes(ctx))
}

func (suite *AuditLogIntegrationTestSuite) SetupTest() {
	_, err := suite.client.Database("roboshop_test").Collection(auditlog.CollectionName).
		DeleteMany(context.Background(), bson.M{})
	suite.Require().NoError(err)
}

func (suite *AuditLogIntegrationTestSuite) TearDownSuite() {
	ctx := context.Background()
	if suite.client != nil {
		suite.Require().NoError(suite.client.Disconnect(ctx))
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(ctx))
	}
}

func (suite *AuditLogIntegrationTestSuite) TestWrite_ThenList_RoundTripsEntry() {
	ctx := context.Background()
	admin := user.Actor{ID: kernel.NewUUID(), Role: user.Admin}
	at := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	entry := audit.NewEntry(admin, "order.status_changed", audit.EntityOrder, "RS-0A1B2C3D",
		map[string]string{"from": "packed", "to": "assigned"}, at)

	suite.Require().NoError(suite.log.Write(ctx, entry))

	got, total, err := suite.log.List(ctx, audit.Filter{Page: 1, PageSize: 20})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(got, 1)
	suite.Equal(entry, got[0])
}

func (suite *AuditLogIntegrationTestSuite) TestWrite_SystemActorHasNoActorID() {
	ctx := context.Background()
	entry := audit.NewEntry(user.System, "order.auto_assign", audit.EntityOrder, "RS-1", nil, time.Now())

	suite.Require().NoError(suite.log.Write(ctx, entry))

	got, _, err := suite.log.List(ctx, audit.Filter{})
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Nil(got[0].ActorID)
	suite.Equal(user.Admin, got[0].ActorRole)
}

func (suite *AuditLogIntegrationTestSuite) TestList_FiltersAndPagesNewestFirst() {
	ctx := context.Background()
	seller := user.Actor{ID: kernel.NewUUID(), Role: user.Seller}
	admin := user.Actor{ID: kernel.NewUUID(), Role: user.Admin}
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		e := audit.NewEntry(seller, "product.update", audit.EntityProduct, fmt.Sprintf("SKU-%d", i%2), nil,
			base.Add(time.Duration(i)*time.Minute))
		suite.Require().NoError(suite.log.Write(ctx, e))
	}
	suite.Require().NoError(suite.log.Write(ctx,
		audit.NewEntry(admin, "coupon.create", audit.EntityCoupon, "SUMMER25", nil, base.Add(time.Hour))))

	got, total, err := suite.log.List(ctx, audit.Filter{Entity: audit.EntityProduct, Page: 1, PageSize: 2})
	suite.Require().NoError(err)
	suite.Equal(int64(5), total)
	suite.Require().Len(got, 2)
	suite.Equal(base.Add(4*time.Minute), got[0].At)
	suite.Equal(base.Add(3*time.Minute), got[1].At)

	got, _, err = suite.log.List(ctx, audit.Filter{Entity: audit.EntityProduct, Page: 3, PageSize: 2})
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(base, got[0].At)

	got, total, err = suite.log.List(ctx, audit.Filter{Entity: audit.EntityProduct, EntityID: "SKU-1"})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(got, 2)

	got, total, err = suite.log.List(ctx, audit.Filter{ActorID: &admin.ID})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("coupon.create", got[0].Action)
}

func TestAuditLogIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(AuditLogIntegrationTestSuite))
}
