package http

import (
	"time"

	"roboshop/internal/core/application/usecases/commands"
	"roboshop/internal/core/application/usecases/queries"
	"roboshop/internal/core/domain/model/audit"
	"roboshop/internal/core/domain/model/coupon"
	"roboshop/internal/core/domain/model/issue"
	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/order"
	"roboshop/internal/core/domain/model/product"
	"roboshop/internal/core/domain/model/savedview"
	"roboshop/internal/core/domain/model/settings"
	"roboshop/internal/core/domain/model/user"
)

// Money amounts are integers in minor units throughout the API.

type PageResponse[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

func newPage[S, T any](items []S, total int64, page queries.Page, convert func(S) T) PageResponse[T] {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = convert(item)
	}
	return PageResponse[T]{Items: out, Total: total, Page: page.Number, PageSize: page.Size}
}

func mapSlice[S, T any](items []S, convert func(S) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = convert(item)
	}
	return out
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// Users

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Name     string `json:"name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone,omitempty"`
	Role      string            `json:"role"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"createdAt"`
	Addresses []AddressResponse `json:"addresses,omitempty"`
}

type SessionResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID().String(),
		Email:     u.Email(),
		Name:      u.Name(),
		Phone:     u.Phone(),
		Role:      u.Role().String(),
		Active:    u.IsActive(),
		CreatedAt: u.CreatedAt(),
		Addresses: mapSlice(u.Addresses(), toAddressResponse),
	}
}

func toUserSummaryResponse(u queries.UserSummary) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role.String(),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

type UpdateUserRequest struct {
	Role   *string `json:"role" validate:"omitempty,oneof=customer seller rider admin"`
	Active *bool   `json:"active"`
}

type AddressRequest struct {
	Label      string `json:"label" validate:"max=40"`
	Recipient  string `json:"recipient" validate:"required,max=120"`
	Phone      string `json:"phone" validate:"required,max=32"`
	Line1      string `json:"line1" validate:"required,max=200"`
	Line2      string `json:"line2" validate:"max=200"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"max=20"`
	Country    string `json:"country" validate:"required,max=100"`
}

func (r AddressRequest) fields() user.AddressFields {
	return user.AddressFields{
		Label:      r.Label,
		Recipient:  r.Recipient,
		Phone:      r.Phone,
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		PostalCode: r.PostalCode,
		Country:    r.Country,
	}
}

type AddressResponse struct {
	ID         string `json:"id"`
	Label      string `json:"label,omitempty"`
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"isDefault"`
}

func toAddressResponse(a user.Address) AddressResponse {
	f := a.Fields()
	return AddressResponse{
		ID:         a.ID().String(),
		Label:      f.Label,
		Recipient:  f.Recipient,
		Phone:      f.Phone,
		Line1:      f.Line1,
		Line2:      f.Line2,
		City:       f.City,
		PostalCode: f.PostalCode,
		Country:    f.Country,
		IsDefault:  a.IsDefault(),
	}
}

// Catalog

type ProductRequest struct {
	SKU            string   `json:"sku" validate:"required,max=64"`
	Name           string   `json:"name" validate:"required,max=200"`
	Slug           string   `json:"slug" validate:"max=200"`
	Description    string   `json:"description" validate:"max=10000"`
	Category       string   `json:"category" validate:"max=100"`
	Brand          string   `json:"brand" validate:"max=100"`
	Price          int64    `json:"price" validate:"gte=1"`
	CompareAtPrice int64    `json:"compareAtPrice" validate:"gte=0"`
	Stock          int      `json:"stock" validate:"gte=0"`
	Tags           []string `json:"tags" validate:"max=20,dive,max=40"`
	ImageURLs      []string `json:"imageUrls" validate:"max=10,dive,url"`
	Active         *bool    `json:"active"`
}

func (r ProductRequest) fields() (product.Fields, error) {
	price, err := kernel.NewMoney(r.Price)
	if err != nil {
		return product.Fields{}, err
	}
	compareAt, err := kernel.NewMoney(r.CompareAtPrice)
	if err != nil {
		return product.Fields{}, err
	}
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return product.Fields{
		SKU:            r.SKU,
		Name:           r.Name,
		Slug:           r.Slug,
		Description:    r.Description,
		Category:       r.Category,
		Brand:          r.Brand,
		Price:          price,
		CompareAtPrice: compareAt,
		Stock:          r.Stock,
		Tags:           r.Tags,
		ImageURLs:      r.ImageURLs,
		Active:         active,
	}, nil
}

type ProductResponse struct {
	ID             string    `json:"id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category,omitempty"`
	Brand          string    `json:"brand,omitempty"`
	Price          int64     `json:"price"`
	CompareAtPrice int64     `json:"compareAtPrice,omitempty"`
	Stock          int       `json:"stock"`
	Tags           []string  `json:"tags"`
	ImageURLs      []string  `json:"imageUrls"`
	SellerID       string    `json:"sellerId"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toProductResponse(p *product.Product) ProductResponse {
	f := p.Fields()
	tags, images := f.Tags, f.ImageURLs
	if tags == nil {
		tags = []string{}
	}
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:             p.ID().String(),
		SKU:            f.SKU,
		Name:           f.Name,
		Slug:           f.Slug,
		Description:    f.Description,
		Category:       f.Category,
		Brand:          f.Brand,
		Price:          f.Price.Amount(),
		CompareAtPrice: f.CompareAtPrice.Amount(),
		Stock:          f.Stock,
		Tags:           tags,
		ImageURLs:      images,
		SellerID:       p.SellerID().String(),
		Active:         f.Active,
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

type RowErrorResponse struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResponse struct {
	Created int                `json:"created"`
	Updated int                `json:"updated"`
	Errors  []RowErrorResponse `json:"errors"`
}

func toImportResponse(r commands.ImportResult) ImportResponse {
	return ImportResponse{
		Created: r.Created,
		Updated: r.Updated,
		Errors: mapSlice(r.Errors, func(e commands.RowError) RowErrorResponse {
			return RowErrorResponse{Row: e.Row, Message: e.Message}
		}),
	}
}

// Cart and checkout

type CartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=1000"`
}

type CartLineResponse struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"lineTotal"`
	Stock     int    `json:"stock"`
	Available bool   `json:"available"`
}

type CartResponse struct {
	Lines    []CartLineResponse `json:"lines"`
	Subtotal int64              `json:"subtotal"`
	Items    int                `json:"items"`
}

func toCartResponse(c queries.Cart) CartResponse {
	return CartResponse{
		Lines: mapSlice(c.Lines, func(l queries.CartLine) CartLineResponse {
			return CartLineResponse{
				ProductID: l.ProductID.String(),
				SKU:       l.SKU,
				Name:      l.Name,
				Slug:      l.Slug,
				UnitPrice: l.UnitPrice.Amount(),
				Quantity:  l.Quantity,
				LineTotal: l.LineTotal.Amount(),
				Stock:     l.Stock,
				Available: l.Available,
			}
		}),
		Subtotal: c.Subtotal.Amount(),
		Items:    c.Items,
	}
}

type CheckoutLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=1000"`
}

// CheckoutRequest without items buys the caller's cart.
type CheckoutRequest struct {
	AddressID     string                `json:"addressId" validate:"required,uuid"`
	PaymentMethod string                `json:"paymentMethod" validate:"required,oneof=cod card"`
	CouponCode    string                `json:"couponCode" validate:"max=32"`
	Items         []CheckoutLineRequest `json:"items" validate:"max=100,dive"`
}

type CouponCheckResponse struct {
	Code     string `json:"code"`
	Valid    bool   `json:"valid"`
	Discount int64  `json:"discount"`
	Reason   string `json:"reason,omitempty"`
}

// Orders

type OrderItemResponse struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"lineTotal"`
}

type AmountsResponse struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

type ShippingAddressResponse struct {
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country"`
}

type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	Action    string    `json:"action"`
	ActorID   *string   `json:"actorId"`
	ActorRole string    `json:"actorRole"`
	Note      string    `json:"note,omitempty"`
	At        time.Time `json:"at"`
}

type OrderResponse struct {
	ID            string                  `json:"id"`
	Number        string                  `json:"number"`
	CustomerID    string                  `json:"customerId"`
	CustomerEmail string                  `json:"customerEmail"`
	Status        string                  `json:"status"`
	PaymentMethod string                  `json:"paymentMethod"`
	PaymentStatus string                  `json:"paymentStatus"`
	CouponCode    string                  `json:"couponCode,omitempty"`
	RiderID       *string                 `json:"riderId"`
	Items         []OrderItemResponse     `json:"items"`
	Amounts       AmountsResponse         `json:"amounts"`
	Shipping      ShippingAddressResponse `json:"shippingAddress"`
	History       []HistoryEntryResponse  `json:"history"`
	Version       int                     `json:"version"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	a, s := o.Amounts(), o.Shipping()
	return OrderResponse{
		ID:            o.ID().String(),
		Number:        o.Number(),
		CustomerID:    o.CustomerID().String(),
		CustomerEmail: o.CustomerEmail(),
		Status:        o.Status().String(),
		PaymentMethod: string(o.PaymentMethod()),
		PaymentStatus: string(o.PaymentStatus()),
		CouponCode:    o.CouponCode(),
		RiderID:       optionalID(o.Rider()),
		Items: mapSlice(o.Items(), func(i order.Item) OrderItemResponse {
			return OrderItemResponse{
				ProductID: i.ProductID().String(),
				SKU:       i.SKU(),
				Name:      i.Name(),
				UnitPrice: i.UnitPrice().Amount(),
				Quantity:  i.Quantity(),
				LineTotal: i.LineTotal().Amount(),
			}
		}),
		Amounts: AmountsResponse{
			Subtotal: a.Subtotal.Amount(),
			Discount: a.Discount.Amount(),
			Shipping: a.Shipping.Amount(),
			Tax:      a.Tax.Amount(),
			Total:    a.Total.Amount(),
		},
		Shipping: ShippingAddressResponse{
			Recipient:  s.Recipient,
			Phone:      s.Phone,
			Line1:      s.Line1,
			Line2:      s.Line2,
			City:       s.City,
			PostalCode: s.PostalCode,
			Country:    s.Country,
		},
		History: mapSlice(o.History(), func(h order.HistoryEntry) HistoryEntryResponse {
			return HistoryEntryResponse{
				Status:    h.Status.String(),
				Action:    h.Action.String(),
				ActorID:   optionalID(h.ActorID),
				ActorRole: h.ActorRole.String(),
				Note:      h.Note,
				At:        h.At,
			}
		}),
		Version:   o.Version(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

type OrderSummaryResponse struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	CustomerID    string    `json:"customerId"`
	CustomerEmail string    `json:"customerEmail"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	Total         int64     `json:"total"`
	ItemCount     int       `json:"itemCount"`
	RiderID       *string   `json:"riderId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toOrderSummaryResponse(o queries.OrderSummary) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:            o.ID.String(),
		Number:        o.Number,
		CustomerID:    o.CustomerID.String(),
		CustomerEmail: o.CustomerEmail,
		Status:        o.Status.String(),
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Total:         o.Total.Amount(),
		ItemCount:     o.ItemCount,
		RiderID:       optionalID(o.RiderID),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

type ChangeOrderStatusRequest struct {
	Action  string  `json:"action" validate:"required,oneof=pack assign ship deliver revert cancel refund"`
	RiderID *string `json:"riderId" validate:"omitempty,uuid"`
	Note    string  `json:"note" validate:"max=500"`
}

// Issues

type CreateIssueRequest struct {
	OrderID  string `json:"orderId" validate:"required,uuid"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Category string `json:"category" validate:"required,oneof=damaged missing wrong_item delivery payment other"`
	Message  string `json:"message" validate:"required,max=5000"`
}

type IssueMessageRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}

type IssueStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved"`
}

type IssueMessageResponse struct {
	AuthorID   string    `json:"authorId"`
	AuthorRole string    `json:"authorRole"`
	Body       string    `json:"body"`
	At         time.Time `json:"at"`
}

type IssueResponse struct {
	ID           string                 `json:"id"`
	OrderID      string                 `json:"orderId"`
	OrderNumber  string                 `json:"orderNumber,omitempty"`
	CustomerID   string                 `json:"customerId"`
	Subject      string                 `json:"subject"`
	Category     string                 `json:"category"`
	Status       string                 `json:"status"`
	MessageCount int                    `json:"messageCount"`
	Messages     []IssueMessageResponse `json:"messages,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

func toIssueResponse(i *issue.Issue) IssueResponse {
	messages := i.Messages()
	return IssueResponse{
		ID:           i.ID().String(),
		OrderID:      i.OrderID().String(),
		CustomerID:   i.CustomerID().String(),
		Subject:      i.Subject(),
		Category:     string(i.Category()),
		Status:       i.Status().String(),
		MessageCount: len(messages),
		Messages: mapSlice(messages, func(m issue.Message) IssueMessageResponse {
			return IssueMessageResponse{
				AuthorID:   m.AuthorID.String(),
				AuthorRole: m.AuthorRole.String(),
				Body:       m.Body,
				At:         m.At,
			}
		}),
		CreatedAt: i.CreatedAt(),
		UpdatedAt: i.UpdatedAt(),
	}
}

func toIssueSummaryResponse(i queries.IssueSummary) IssueResponse {
	return IssueResponse{
		ID:           i.ID.String(),
		OrderID:      i.OrderID.String(),
		OrderNumber:  i.OrderNumber,
		CustomerID:   i.CustomerID.String(),
		Subject:      i.Subject,
		Category:     string(i.Category),
		Status:       i.Status.String(),
		MessageCount: i.MessageCount,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// Admin

type CouponRequest struct {
	Code        string     `json:"code" validate:"required,min=3,max=32"`
	Kind        string     `json:"kind" validate:"required,oneof=percent fixed"`
	Value       int64      `json:"value" validate:"gte=1"`
	MinSubtotal int64      `json:"minSubtotal" validate:"gte=0"`
	MaxUses     int        `json:"maxUses" validate:"gte=0"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Active      *bool      `json:"active"`
}

func (r CouponRequest) params() (coupon.Params, error) {
	minSubtotal, err := kernel.NewMoney(r.MinSubtotal)
	if err != nil {
		return coupon.Params{}, err
	}
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return coupon.Params{
		Code:        r.Code,
		Kind:        coupon.Kind(r.Kind),
		Value:       r.Value,
		MinSubtotal: minSubtotal,
		MaxUses:     r.MaxUses,
		ExpiresAt:   r.ExpiresAt,
		Active:      active,
	}, nil
}

type CouponResponse struct {
	Code        string     `json:"code"`
	Kind        string     `json:"kind"`
	Value       int64      `json:"value"`
	MinSubtotal int64      `json:"minSubtotal"`
	MaxUses     int        `json:"maxUses"`
	UsedCount   int        `json:"usedCount"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Active      bool       `json:"active"`
}

func toCouponResponse(c *coupon.Coupon) CouponResponse {
	return CouponResponse{
		Code:        c.Code(),
		Kind:        string(c.Kind()),
		Value:       c.Value(),
		MinSubtotal: c.MinSubtotal().Amount(),
		MaxUses:     c.MaxUses(),
		UsedCount:   c.UsedCount(),
		ExpiresAt:   c.ExpiresAt(),
		Active:      c.IsActive(),
	}
}

type AuditEntryResponse struct {
	ID        string            `json:"id"`
	ActorID   *string           `json:"actorId"`
	ActorRole string            `json:"actorRole"`
	Action    string            `json:"action"`
	Entity    string            `json:"entity"`
	EntityID  string            `json:"entityId"`
	Details   map[string]string `json:"details,omitempty"`
	At        time.Time         `json:"at"`
}

func toAuditEntryResponse(e audit.Entry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        e.ID.String(),
		ActorID:   optionalID(e.ActorID),
		ActorRole: e.ActorRole.String(),
		Action:    e.Action,
		Entity:    string(e.Entity),
		EntityID:  e.EntityID,
		Details:   e.Details,
		At:        e.At,
	}
}

type TopProductResponse struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Revenue   int64  `json:"revenue"`
}

type DailyRevenueResponse struct {
	Day     string `json:"day"`
	Orders  int64  `json:"orders"`
	Revenue int64  `json:"revenue"`
}

type DashboardResponse struct {
	From              time.Time              `json:"from"`
	To                time.Time              `json:"to"`
	OrderCount        int64                  `json:"orderCount"`
	Revenue           int64                  `json:"revenue"`
	AverageOrderValue int64                  `json:"averageOrderValue"`
	ByStatus          map[string]int64       `json:"byStatus"`
	TopProducts       []TopProductResponse   `json:"topProducts"`
	RevenueByDay      []DailyRevenueResponse `json:"revenueByDay"`
}

func toDashboardResponse(m queries.DashboardMetrics) DashboardResponse {
	byStatus := make(map[string]int64, len(m.ByStatus))
	for status, n := range m.ByStatus {
		byStatus[status.String()] = n
	}
	return DashboardResponse{
		From:              m.From,
		To:                m.To,
		OrderCount:        m.OrderCount,
		Revenue:           m.Revenue.Amount(),
		AverageOrderValue: m.AverageOrderValue.Amount(),
		ByStatus:          byStatus,
		TopProducts: mapSlice(m.TopProducts, func(p queries.TopProduct) TopProductResponse {
			return TopProductResponse{
				ProductID: p.ProductID.String(),
				SKU:       p.SKU,
				Name:      p.Name,
				Quantity:  p.Quantity,
				Revenue:   p.Revenue.Amount(),
			}
		}),
		RevenueByDay: mapSlice(m.RevenueByDay, func(d queries.DailyRevenue) DailyRevenueResponse {
			return DailyRevenueResponse{Day: d.Day.Format(time.DateOnly), Orders: d.Orders, Revenue: d.Revenue.Amount()}
		}),
	}
}

// Settings

type BrandingDTO struct {
	StoreName    string `json:"storeName" validate:"required,max=120"`
	LogoURL      string `json:"logoUrl" validate:"omitempty,url"`
	SupportEmail string `json:"supportEmail" validate:"omitempty,email"`
	Currency     string `json:"currency" validate:"omitempty,len=3"`
}

type NavLinkDTO struct {
	Label    string `json:"label" validate:"required,max=60"`
	URL      string `json:"url" validate:"required"`
	Position int    `json:"position"`
}

type SEODTO struct {
	MetaTitle       string `json:"metaTitle" validate:"max=120"`
	MetaDescription string `json:"metaDescription" validate:"max=320"`
	Indexable       bool   `json:"indexable"`
}

type CommerceDTO struct {
	FlatShippingFee       int64 `json:"flatShippingFee" validate:"gte=0"`
	FreeShippingThreshold int64 `json:"freeShippingThreshold" validate:"gte=0"`
	TaxRateBps            int   `json:"taxRateBps" validate:"gte=0,lte=10000"`
	AutoAssignRiders      bool  `json:"autoAssignRiders"`
}

type SettingsDTO struct {
	Branding  BrandingDTO  `json:"branding"`
	NavLinks  []NavLinkDTO `json:"navLinks" validate:"max=20,dive"`
	SEO       SEODTO       `json:"seo"`
	Commerce  CommerceDTO  `json:"commerce"`
	UpdatedAt *time.Time   `json:"updatedAt,omitempty"`
	UpdatedBy *string      `json:"updatedBy,omitempty"`
}

func (d SettingsDTO) toDomain() (settings.Settings, error) {
	fee, err := kernel.NewMoney(d.Commerce.FlatShippingFee)
	if err != nil {
		return settings.Settings{}, err
	}
	threshold, err := kernel.NewMoney(d.Commerce.FreeShippingThreshold)
	if err != nil {
		return settings.Settings{}, err
	}
	return settings.Settings{
		Branding: settings.Branding{
			StoreName:    d.Branding.StoreName,
			LogoURL:      d.Branding.LogoURL,
			SupportEmail: d.Branding.SupportEmail,
			Currency:     d.Branding.Currency,
		},
		NavLinks: mapSlice(d.NavLinks, func(l NavLinkDTO) settings.NavLink {
			return settings.NavLink{Label: l.Label, URL: l.URL, Position: l.Position}
		}),
		SEO: settings.SEO{
			MetaTitle:       d.SEO.MetaTitle,
			MetaDescription: d.SEO.MetaDescription,
			Indexable:       d.SEO.Indexable,
		},
		Commerce: settings.Commerce{
			FlatShippingFee:       fee,
			FreeShippingThreshold: threshold,
			TaxRateBps:            d.Commerce.TaxRateBps,
			AutoAssignRiders:      d.Commerce.AutoAssignRiders,
		},
	}, nil
}

func toSettingsDTO(s settings.Settings) SettingsDTO {
	dto := SettingsDTO{
		Branding: BrandingDTO{
			StoreName:    s.Branding.StoreName,
			LogoURL:      s.Branding.LogoURL,
			SupportEmail: s.Branding.SupportEmail,
			Currency:     s.Branding.Currency,
		},
		NavLinks: mapSlice(s.NavLinks, func(l settings.NavLink) NavLinkDTO {
			return NavLinkDTO{Label: l.Label, URL: l.URL, Position: l.Position}
		}),
		SEO: SEODTO{
			MetaTitle:       s.SEO.MetaTitle,
			MetaDescription: s.SEO.MetaDescription,
			Indexable:       s.SEO.Indexable,
		},
		Commerce: CommerceDTO{
			FlatShippingFee:       s.Commerce.FlatShippingFee.Amount(),
			FreeShippingThreshold: s.Commerce.FreeShippingThreshold.Amount(),
			TaxRateBps:            s.Commerce.TaxRateBps,
			AutoAssignRiders:      s.Commerce.AutoAssignRiders,
		},
		UpdatedBy: optionalID(s.UpdatedBy),
	}
	if !s.UpdatedAt.IsZero() {
		at := s.UpdatedAt
		dto.UpdatedAt = &at
	}
	return dto
}

// Saved views

type SavedViewRequest struct {
	Scope   string            `json:"scope" validate:"required,oneof=orders products issues"`
	Name    string            `json:"name" validate:"required,max=60"`
	Filters map[string]string `json:"filters" validate:"max=20"`
}

type SavedViewResponse struct {
	ID        string            `json:"id"`
	Scope     string            `json:"scope"`
	Name      string            `json:"name"`
	Filters   map[string]string `json:"filters"`
	CreatedAt time.Time         `json:"createdAt"`
}

func toSavedViewResponse(v *savedview.SavedView) SavedViewResponse {
	return SavedViewResponse{
		ID:        v.ID().String(),
		Scope:     string(v.Scope()),
		Name:      v.Name(),
		Filters:   v.Filters(),
		CreatedAt: v.CreatedAt(),
	}
}
