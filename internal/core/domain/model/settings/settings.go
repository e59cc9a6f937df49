// Package settings holds the platform-wide configuration singleton: branding,
// storefront navigation, SEO flags and the commerce parameters checkout prices with.
package settings

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/pkg/errs"
)

const (
	MaxNavLinks     = 20
	MaxTaxRateBps   = 10000
	DefaultCurrency = "BDT"
)

type Branding struct {
	StoreName    string
	LogoURL      string
	SupportEmail string
	Currency     string
}

type NavLink struct {
	Label    string
	URL      string
	Position int
}

type SEO struct {
	MetaTitle       string
	MetaDescription string
	Indexable       bool
}

type Commerce struct {
	FlatShippingFee       kernel.Money
	FreeShippingThreshold kernel.Money
	TaxRateBps            int
	AutoAssignRiders      bool
}

// ShippingFor returns the shipping fee for an order subtotal. A zero threshold
// disables free shipping.
func (c Commerce) ShippingFor(subtotal kernel.Money) kernel.Money {
	if !c.FreeShippingThreshold.IsZero() && !subtotal.Less(c.FreeShippingThreshold) {
		return kernel.Money{}
	}
	return c.FlatShippingFee
}

// TaxOn applies the tax rate to a taxable amount.
func (c Commerce) TaxOn(taxable kernel.Money) kernel.Money {
	return taxable.BasisPoints(c.TaxRateBps)
}

// Settings is the singleton document. Values are plain structs; Validate guards updates.
type Settings struct {
	Branding  Branding
	NavLinks  []NavLink
	SEO       SEO
	Commerce  Commerce
	UpdatedAt time.Time
	UpdatedBy *kernel.UUID
}

// Default is what a fresh installation serves before an admin saves anything.
func Default() Settings {
	return Settings{
		Branding: Branding{StoreName: "RoboShop", Currency: DefaultCurrency},
		NavLinks: []NavLink{
			{Label: "Shop", URL: "/products", Position: 1},
			{Label: "Support", URL: "/support", Position: 2},
		},
		SEO: SEO{MetaTitle: "RoboShop", Indexable: true},
		Commerce: Commerce{
			FlatShippingFee:       kernel.MustMoney(6000),
			FreeShippingThreshold: kernel.MustMoney(500000),
			TaxRateBps:            0,
		},
	}
}

// Normalize trims text fields and orders navigation by position.
func (s Settings) Normalize() Settings {
	s.Branding.StoreName = strings.TrimSpace(s.Branding.StoreName)
	s.Branding.LogoURL = strings.TrimSpace(s.Branding.LogoURL)
	s.Branding.SupportEmail = strings.ToLower(strings.TrimSpace(s.Branding.SupportEmail))
	s.Branding.Currency = strings.ToUpper(strings.TrimSpace(s.Branding.Currency))
	if s.Branding.Currency == "" {
		s.Branding.Currency = DefaultCurrency
	}
	s.SEO.MetaTitle = strings.TrimSpace(s.SEO.MetaTitle)
	s.SEO.MetaDescription = strings.TrimSpace(s.SEO.MetaDescription)

	links := make([]NavLink, len(s.NavLinks))
	for i, l := range s.NavLinks {
		links[i] = NavLink{Label: strings.TrimSpace(l.Label), URL: strings.TrimSpace(l.URL), Position: l.Position}
	}
	sort.SliceStable(links, func(i, j int) bool { return links[i].Position < links[j].Position })
	s.NavLinks = links
	return s
}

func (s Settings) Validate() error {
	var nameErr, taxErr, navErr, logoErr error
	if s.Branding.StoreName == "" {
		nameErr = errs.NewValueIsRequiredError("store name")
	}
	if s.Commerce.TaxRateBps < 0 || s.Commerce.TaxRateBps > MaxTaxRateBps {
		taxErr = errs.NewValueIsOutOfRangeError("tax rate bps", s.Commerce.TaxRateBps, 0, MaxTaxRateBps)
	}
	if s.Branding.LogoURL != "" && !IsLinkURL(s.Branding.LogoURL) {
		logoErr = errs.NewValueIsInvalidErrorWithCause("logo url", fmt.Errorf("%q is not a valid url", s.Branding.LogoURL))
	}
	if len(s.NavLinks) > MaxNavLinks {
		navErr = errs.NewValueIsOutOfRangeError("nav links", len(s.NavLinks), 0, MaxNavLinks)
	} else {
		linkErrs := make([]error, 0)
		for i, l := range s.NavLinks {
			if l.Label == "" {
				linkErrs = append(linkErrs, errs.NewValueIsRequiredError(fmt.Sprintf("nav link %d label", i+1)))
			}
			if !IsLinkURL(l.URL) {
				linkErrs = append(linkErrs, errs.NewValueIsInvalidErrorWithCause(
					fmt.Sprintf("nav link %d url", i+1),
					fmt.Errorf("%q must be an absolute path or an http(s) url", l.URL)))
			}
		}
		navErr = errors.Join(linkErrs...)
	}
	return errors.Join(nameErr, taxErr, logoErr, navErr)
}

// IsLinkURL accepts absolute paths ("/products") and http(s) URLs with a host.
func IsLinkURL(raw string) bool {
	if strings.HasPrefix(raw, "/") {
		return !strings.HasPrefix(raw, "//")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// RobotsTxt renders robots.txt for the storefront.
func (s Settings) RobotsTxt() string {
	if !s.SEO.Indexable {
		return "User-agent: *\nDisallow: /\n"
	}
	return "User-agent: *\nDisallow: /api/\nAllow: /\n"
}
