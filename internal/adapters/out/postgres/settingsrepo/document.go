// Package settingsrepo stores the settings singleton as one JSON document.
package settingsrepo

import (
	"encoding/json"
	"time"

	"roboshop/internal/core/domain/model/kernel"
	"roboshop/internal/core/domain/model/settings"
)

// Document is the JSON shape of the settings. The Redis settings cache stores
// the same encoding.
type Document struct {
	Branding struct {
		StoreName    string `json:"storeName"`
		LogoURL      string `json:"logoUrl"`
		SupportEmail string `json:"supportEmail"`
		Currency     string `json:"currency"`
	} `json:"branding"`
	NavLinks []NavLinkDocument `json:"navLinks"`
	SEO      struct {
		MetaTitle       string `json:"metaTitle"`
		MetaDescription string `json:"metaDescription"`
		Indexable       bool   `json:"indexable"`
	} `json:"seo"`
	Commerce struct {
		FlatShippingFee       int64 `json:"flatShippingFee"`
		FreeShippingThreshold int64 `json:"freeShippingThreshold"`
		TaxRateBps            int   `json:"taxRateBps"`
		AutoAssignRiders      bool  `json:"autoAssignRiders"`
	} `json:"commerce"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

type NavLinkDocument struct {
	Label    string `json:"label"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

func Marshal(s settings.Settings) ([]byte, error) {
	var d Document
	d.Branding.StoreName = s.Branding.StoreName
	d.Branding.LogoURL = s.Branding.LogoURL
	d.Branding.SupportEmail = s.Branding.SupportEmail
	d.Branding.Currency = s.Branding.Currency
	d.NavLinks = make([]NavLinkDocument, 0, len(s.NavLinks))
	for _, l := range s.NavLinks {
		d.NavLinks = append(d.NavLinks, NavLinkDocument{Label: l.Label, URL: l.URL, Position: l.Position})
	}
	d.SEO.MetaTitle = s.SEO.MetaTitle
	d.SEO.MetaDescription = s.SEO.MetaDescription
	d.SEO.Indexable = s.SEO.Indexable
	d.Commerce.FlatShippingFee = s.Commerce.FlatShippingFee.Amount()
	d.Commerce.FreeShippingThreshold = s.Commerce.FreeShippingThreshold.Amount()
	d.Commerce.TaxRateBps = s.Commerce.TaxRateBps
	d.Commerce.AutoAssignRiders = s.Commerce.AutoAssignRiders
	d.UpdatedAt = s.UpdatedAt
	if s.UpdatedBy != nil {
		d.UpdatedBy = s.UpdatedBy.String()
	}
	return json.Marshal(d)
}

func Unmarshal(raw []byte) (settings.Settings, error) {
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return settings.Settings{}, err
	}

	fee, err := kernel.NewMoney(d.Commerce.FlatShippingFee)
	if err != nil {
		return settings.Settings{}, err
	}
	threshold, err := kernel.NewMoney(d.Commerce.FreeShippingThreshold)
	if err != nil {
		return settings.Settings{}, err
	}

	s := settings.Settings{
		Branding: settings.Branding{
			StoreName:    d.Branding.StoreName,
			LogoURL:      d.Branding.LogoURL,
			SupportEmail: d.Branding.SupportEmail,
			Currency:     d.Branding.Currency,
		},
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
		UpdatedAt: d.UpdatedAt,
	}
	for _, l := range d.NavLinks {
		s.NavLinks = append(s.NavLinks, settings.NavLink{Label: l.Label, URL: l.URL, Position: l.Position})
	}
	if d.UpdatedBy != "" {
		id, idErr := kernel.UUIDFromString(d.UpdatedBy)
		if idErr != nil {
			return settings.Settings{}, idErr
		}
		s.UpdatedBy = &id
	}
	return s, nil
}
