package http

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"roboshop/internal/adapters/out/postgres"
	"roboshop/internal/adapters/out/postgres/pgtest"
	"roboshop/internal/adapters/out/security"
	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/application/usecases/queries"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/core/domain/model/settings"
	"roboshop/internal/core/domain/model/user"
	"roboshop/internal/core/domain/services"
	"roboshop/internal/core/ports"
	"roboshop/internal/pkg/spreadsheet"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// memoryCart keeps carts in process.
type memoryCart struct {
	mu    sync.Mutex
	lines map[kernel.UUID]map[kernel.UUID]int
}

func (c *memoryCart) Get(_ context.Context, userID kernel.UUID) (map[kernel.UUID]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[kernel.UUID]int)
	for id, qty := range c.lines[userID] {
		out[id] = qty
	}
	return out, nil
}

func (c *memoryCart) SetItem(_ context.Context, userID, productID kernel.UUID, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lines[userID] == nil {
		c.lines[userID] = make(map[kernel.UUID]int)
	}
	if qty == 0 {
		delete(c.lines[userID], productID)
		return nil
	}
	c.lines[userID][productID] = qty
	return nil
}

func (c *memoryCart) Clear(_ context.Context, userID kernel.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lines, userID)
	return nil
}

type factoryFunc[T any] func() T

func (f factoryFunc[T]) Create() T { return f() }

// bumpingOrders commits a competing version bump right before each update.
type bumpingOrders struct {
	ports.OrderRepository
	db *gorm.DB
}

func (r bumpingOrders) Update(ctx context.Context, o *order.Order) error {
	if err := r.db.Exec("UPDATE orders SET version = version + 1 WHERE id = ?", o.ID().Bytes()).Error; err != nil {
		return err
	}
	return r.OrderRepository.Update(ctx, o)
}

type bumpingUoW struct {
	ports.UnitOfWork
	db *gorm.DB
}

func (u bumpingUoW) OrderRepository() ports.OrderRepository {
	return bumpingOrders{OrderRepository: u.UnitOfWork.OrderRepository(), db: u.db}
}

// RoutesIntegrationTestSuite drives the storefront routes end to end against PostgreSQL.
type RoutesIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
	tokens  *security.JWTIssuer
	e       *echo.Echo

	customer *user.User
	stranger *user.User
	seller   *user.User
	admin    *user.User
	rider    *user.User
}

func (suite *RoutesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.tokens, err = security.NewJWTIssuer("routes-test-secret", time.Hour)
	suite.Require().NoError(err)
}

func (suite *RoutesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Reset())
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.pg.DB)

	suite.customer = suite.addUser("ada@roboshop.test", user.Customer)
	suite.stranger = suite.addUser("eve@roboshop.test", user.Customer)
	suite.seller = suite.addUser("grace@roboshop.test", user.Seller)
	suite.admin = suite.addUser("root@roboshop.test", user.Admin)
	suite.rider = suite.addUser("rider@roboshop.test", user.Rider)

	orderUoW := factoryFunc[commands.OrderUoW](func() commands.OrderUoW { return suite.factory.Create() })
	suite.e = suite.newEcho(orderUoW)
}

func (suite *RoutesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Stop(context.Background()))
}

func (suite *RoutesIntegrationTestSuite) newEcho(orderUoW commands.OrderUoWFactory) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := suite.pg.DB
	cart := &memoryCart{lines: make(map[kernel.UUID]map[kernel.UUID]int)}
	audit := commands.AuditTrail{}

	userUoW := factoryFunc[commands.UserUoW](func() commands.UserUoW { return suite.factory.Create() })
	catalogUoW := factoryFunc[commands.CatalogUoW](func() commands.CatalogUoW { return suite.factory.Create() })
	checkoutUoW := factoryFunc[commands.CheckoutUoW](func() commands.CheckoutUoW { return suite.factory.Create() })
	issueUoW := factoryFunc[commands.IssueUoW](func() commands.IssueUoW { return suite.factory.Create() })

	server := NewServer(
		Commands{
			AddAddress:     commands.NewAddAddressCommandHandler(userUoW),
			ImportProducts: commands.NewImportProductsCommandHandler(catalogUoW, audit),
			SetCartItem:    commands.NewSetCartItemCommandHandler(catalogUoW, cart),
			ClearCart:      commands.NewClearCartCommandHandler(cart),
			Checkout:       commands.NewCheckoutCommandHandler(checkoutUoW, cart, services.NewPricer(), logger),
			ChangeOrderStatus: commands.NewChangeOrderStatusCommandHandler(orderUoW,
				commands.NewOrderChangeNotifier(nil, nil, audit, logger)),
			CreateIssue:       commands.NewCreateIssueCommandHandler(issueUoW),
			AddIssueMessage:   commands.NewAddIssueMessageCommandHandler(issueUoW, audit),
			ChangeIssueStatus: commands.NewChangeIssueStatusCommandHandler(issueUoW, audit),
		},
		Queries{
			ExportProducts: queries.NewExportProductsQueryHandler(db),
			GetCart:        queries.NewGetCartQueryHandler(db, cart),
			ListOrders:     queries.NewListOrdersQueryHandler(db),
			GetOrder:       queries.NewGetOrderQueryHandler(suite.factory),
			ExportOrders:   queries.NewExportOrdersQueryHandler(db),
			ListIssues:     queries.NewListIssuesQueryHandler(db),
			GetIssue:       queries.NewGetIssueQueryHandler(suite.factory),
			GetSettings:    queries.NewGetSettingsQueryHandler(suite.factory, stubSettingsCache{current: settings.Default()}, logger),
		},
		suite.tokens,
		logger,
	)
	e, err := NewEcho(context.Background(), server, Options{})
	suite.Require().NoError(err)
	return e
}

func (suite *RoutesIntegrationTestSuite) TestCartCheckoutAndOrderVisibility() {
	servo := suite.addProduct("SRV-MG996R", 45000, 5)

	rec := suite.send(http.MethodPut, "/api/v1/cart/items/"+servo.ID().String(), `{"quantity":2}`, suite.customer)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var cart CartResponse
	suite.decode(rec, &cart)
	suite.Equal(2, cart.Items)
	suite.Equal(int64(90000), cart.Subtotal)

	placed := suite.checkout(suite.customer)
	suite.Equal("processing", placed.Status)
	suite.Equal(suite.customer.ID().String(), placed.CustomerID)
	suite.Require().Len(placed.Items, 1)
	suite.Equal(2, placed.Items[0].Quantity)

	rec = suite.send(http.MethodGet, "/api/v1/cart", "", suite.customer)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.decode(rec, &cart)
	suite.Zero(cart.Items)

	stocked, err := suite.factory.Create().ProductRepository().Get(context.Background(), servo.ID())
	suite.Require().NoError(err)
	suite.Equal(3, stocked.Stock())

	var page PageResponse[OrderSummaryResponse]
	rec = suite.send(http.MethodGet, "/api/v1/orders", "", suite.customer)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.decode(rec, &page)
	suite.Equal(int64(1), page.Total)

	rec = suite.send(http.MethodGet, "/api/v1/orders", "", suite.stranger)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.decode(rec, &page)
	suite.Zero(page.Total)

	rec = suite.send(http.MethodGet, "/api/v1/orders/"+placed.ID, "", suite.stranger)
	suite.Equal(http.StatusNotFound, rec.Code)

	rec = suite.send(http.MethodPut, "/api/v1/cart/items/"+servo.ID().String(), `{"quantity":1}`, suite.customer)
	suite.Require().Equal(http.StatusOK, rec.Code)
	rec = suite.send(http.MethodDelete, "/api/v1/cart", "", suite.customer)
	suite.Equal(http.StatusNoContent, rec.Code)
}

func (suite *RoutesIntegrationTestSuite) TestCheckout_RejectsMoreThanInStock() {
	servo := suite.addProduct("SRV-MG996R", 45000, 1)
	address := suite.addAddress(suite.customer)

	body := `{"addressId":"` + address + `","paymentMethod":"cod","items":[{"productId":"` +
		servo.ID().String() + `","quantity":2}]}`
	rec := suite.send(http.MethodPost, "/api/v1/checkout", body, suite.customer)

	suite.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
}

func (suite *RoutesIntegrationTestSuite) TestOrderStatusChanges() {
	servo := suite.addProduct("SRV-MG996R", 45000, 5)
	placed := suite.checkout(suite.customer, servo)
	path := "/api/v1/orders/" + placed.ID + "/status"

	var updated OrderResponse
	rec := suite.send(http.MethodPatch, path, `{"action":"pack"}`, suite.seller)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.decode(rec, &updated)
	suite.Equal("packed", updated.Status)

	rec = suite.send(http.MethodPatch, path, `{"action":"cancel"}`, suite.customer)
	suite.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = suite.send(http.MethodPatch, path, `{"action":"assign","riderId":"`+suite.customer.ID().String()+`"}`, suite.seller)
	suite.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = suite.send(http.MethodPatch, path, `{"action":"assign","riderId":"`+suite.rider.ID().String()+`"}`, suite.seller)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.decode(rec, &updated)
	suite.Equal("assigned", updated.Status)
	suite.Require().NotNil(updated.RiderID)
	suite.Equal(suite.rider.ID().String(), *updated.RiderID)

	rec = suite.send(http.MethodPatch, path, `{"action":"ship"}`, suite.rider)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.decode(rec, &updated)
	suite.Equal("shipped", updated.Status)
}

func (suite *RoutesIntegrationTestSuite) TestOrderStatusChange_ConcurrentWriteIsConflict() {
	servo := suite.addProduct("SRV-MG996R", 45000, 5)
	placed := suite.checkout(suite.customer, servo)

	db := suite.pg.DB
	suite.e = suite.newEcho(factoryFunc[commands.OrderUoW](func() commands.OrderUoW {
		return bumpingUoW{UnitOfWork: suite.factory.Create(), db: db}
	}))

	rec := suite.send(http.MethodPatch, "/api/v1/orders/"+placed.ID+"/status", `{"action":"pack"}`, suite.seller)
	suite.Equal(http.StatusConflict, rec.Code, rec.Body.String())

	id, err := kernel.UUIDFromString(placed.ID)
	suite.Require().NoError(err)
	stored, err := suite.factory.Create().OrderRepository().Get(context.Background(), id)
	suite.Require().NoError(err)
	suite.Equal(order.Processing, stored.Status())
}

func (suite *RoutesIntegrationTestSuite) TestOrdersExport() {
	servo := suite.addProduct("SRV-MG996R", 45000, 5)
	placed := suite.checkout(suite.customer, servo)

	rec := suite.send(http.MethodGet, "/api/v1/orders/export?format=csv", "", suite.admin)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.Contains(rec.Header().Get(echo.HeaderContentType), "text/csv")
	suite.Contains(rec.Header().Get(echo.HeaderContentDisposition), "attachment")

	rows, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal(placed.Number, rows[1][0])

	rec = suite.send(http.MethodGet, "/api/v1/orders/export?format=csv", "", suite.seller)
	suite.Equal(http.StatusForbidden, rec.Code)
}

func (suite *RoutesIntegrationTestSuite) TestProductImportThenExport() {
	sheet := strings.Join(product.SheetHeader, ",") + "\n" +
		"LDR-1,Photoresistor,,sensors,Generic,12.50,,40,light|analog,,true\n" +
		"SRV-2,Broken Servo,,servos,Generic,abc,,3,,,true\n"

	rec := suite.upload("/api/v1/products/import", "catalog.csv", sheet, suite.seller)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var imported ImportResponse
	suite.decode(rec, &imported)
	suite.Equal(1, imported.Created)
	suite.Require().Len(imported.Errors, 1)
	suite.Equal(3, imported.Errors[0].Row)

	rec = suite.send(http.MethodGet, "/api/v1/products/export?format=xlsx", "", suite.seller)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.Equal(spreadsheet.XLSX.ContentType(), rec.Header().Get(echo.HeaderContentType))

	rows, err := spreadsheet.Read(bytes.NewReader(rec.Body.Bytes()), spreadsheet.XLSX)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal(product.SheetHeader, rows[0])
	suite.Equal("LDR-1", rows[1][0])
	suite.Equal("12.50", rows[1][5])

	rec = suite.upload("/api/v1/products/import", "catalog.csv", sheet, suite.customer)
	suite.Equal(http.StatusForbidden, rec.Code)
	rec = suite.send(http.MethodGet, "/api/v1/products/export?format=csv", "", suite.customer)
	suite.Equal(http.StatusForbidden, rec.Code)
}

func (suite *RoutesIntegrationTestSuite) TestIssueThread() {
	servo := suite.addProduct("SRV-MG996R", 45000, 5)
	placed := suite.checkout(suite.customer, servo)

	opened := `{"orderId":"` + placed.ID + `","subject":"Servo arrived cracked","category":"damaged",` +
		`"message":"The horn is snapped off."}`
	rec := suite.send(http.MethodPost, "/api/v1/issues", opened, suite.stranger)
	suite.Equal(http.StatusNotFound, rec.Code, rec.Body.String())

	rec = suite.send(http.MethodPost, "/api/v1/issues", opened, suite.customer)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var thread IssueResponse
	suite.decode(rec, &thread)
	suite.Equal("open", thread.Status)
	suite.Equal("damaged", thread.Category)
	path := "/api/v1/issues/" + thread.ID

	rec = suite.send(http.MethodPost, path+"/messages", `{"body":"A replacement ships today."}`, suite.seller)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	suite.decode(rec, &thread)
	suite.Equal("in_progress", thread.Status)
	suite.Len(thread.Messages, 2)

	rec = suite.send(http.MethodGet, path, "", suite.stranger)
	suite.Equal(http.StatusNotFound, rec.Code)

	var page PageResponse[IssueResponse]
	rec = suite.send(http.MethodGet, "/api/v1/issues", "", suite.customer)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.decode(rec, &page)
	suite.Equal(int64(1), page.Total)

	rec = suite.send(http.MethodGet, "/api/v1/issues", "", suite.stranger)
	suite.Require().Equal(http.StatusOK, rec.Code)
	suite.decode(rec, &page)
	suite.Zero(page.Total)

	rec = suite.send(http.MethodPatch, path+"/status", `{"status":"resolved"}`, suite.customer)
	suite.Equal(http.StatusForbidden, rec.Code)

	rec = suite.send(http.MethodPatch, path+"/status", `{"status":"resolved"}`, suite.seller)
	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	suite.decode(rec, &thread)
	suite.Equal("resolved", thread.Status)
}

func (suite *RoutesIntegrationTestSuite) addUser(email string, role user.Role) *user.User {
	u, err := user.NewUser(kernel.NewUUID(), email, "Member", "", "hash", role, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().UserRepository().Add(context.Background(), u))
	return u
}

func (suite *RoutesIntegrationTestSuite) addProduct(sku string, price int64, stock int) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), suite.seller.ID(), product.Fields{
		SKU:      sku,
		Name:     "MG996R Servo",
		Category: "servos",
		Brand:    "TowerPro",
		Price:    kernel.MustMoney(price),
		Stock:    stock,
		Active:   true,
	}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().ProductRepository().Add(context.Background(), p))
	return p
}

func (suite *RoutesIntegrationTestSuite) addAddress(u *user.User) string {
	body := `{"label":"Home","recipient":"Ada","phone":"017","line1":"House 4","city":"Dhaka",` +
		`"postalCode":"1207","country":"BD"}`
	rec := suite.send(http.MethodPost, "/api/v1/me/addresses", body, u)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var address AddressResponse
	suite.decode(rec, &address)
	return address.ID
}

// checkout places an order for the given products, or for the cart when none are given.
func (suite *RoutesIntegrationTestSuite) checkout(u *user.User, products ...*product.Product) OrderResponse {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, `{"productId":"`+p.ID().String()+`","quantity":1}`)
	}
	address := suite.addAddress(u)
	rec := suite.send(http.MethodPost, "/api/v1/checkout",
		`{"addressId":"`+address+`","paymentMethod":"cod","items":[`+strings.Join(lines, ",")+`]}`, u)
	suite.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var placed OrderResponse
	suite.decode(rec, &placed)
	return placed
}

func (suite *RoutesIntegrationTestSuite) send(method, target, body string, u *user.User) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = jsonRequest(method, target, body)
	}
	return suite.serve(req, u)
}

func (suite *RoutesIntegrationTestSuite) upload(target, filename, content string, u *user.User) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set(echo.HeaderContentType, "text/csv")
	part, err := w.CreatePart(header)
	suite.Require().NoError(err)
	_, err = part.Write([]byte(content))
	suite.Require().NoError(err)
	suite.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return suite.serve(req, u)
}

func (suite *RoutesIntegrationTestSuite) serve(req *http.Request, u *user.User) *httptest.ResponseRecorder {
	token, _, err := suite.tokens.Issue(user.Actor{ID: u.ID(), Role: u.Role()})
	suite.Require().NoError(err)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func (suite *RoutesIntegrationTestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func TestRoutesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(RoutesIntegrationTestSuite))
}
