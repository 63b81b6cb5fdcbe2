package site

import (
	"time"

	i18n "github.com/wecelebrate/go-i18n"
)

// Status is the lifecycle state of a site
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ValidationMethod names how visitors prove they may use a site
type ValidationMethod string

const (
	ValidationEmail      ValidationMethod = "email"
	ValidationEmployeeID ValidationMethod = "employeeId"
	ValidationSerialCard ValidationMethod = "serialCard"
	ValidationMagicLink  ValidationMethod = "magic_link"
	ValidationSSO        ValidationMethod = "sso"
)

// ShippingMode names where gifts are delivered
type ShippingMode string

const (
	ShippingCompany  ShippingMode = "company"
	ShippingEmployee ShippingMode = "employee"
	ShippingStore    ShippingMode = "store"
)

// Config is the tenant record served by the public sites endpoint
type Config struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	ClientID  string                  `json:"clientId"`
	Domain    string                  `json:"domain,omitempty"`
	Status    Status                  `json:"status"`
	Branding  Branding                `json:"branding"`
	Settings  Settings                `json:"settings"`
	I18n      *i18n.PartialI18nConfig `json:"i18n,omitempty"`
	SiteURL   string                  `json:"siteUrl,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

type Branding struct {
	Logo           string `json:"logo,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	TertiaryColor  string `json:"tertiaryColor,omitempty"`
	CustomCSS      string `json:"customCss,omitempty"`
}

// Settings holds the storefront behaviour of a site. Availability dates are kept
// as sent by the admin UI, either RFC 3339 timestamps or plain dates.
type Settings struct {
	ValidationMethod       ValidationMethod `json:"validationMethod"`
	AllowQuantitySelection bool             `json:"allowQuantitySelection"`
	ShowPricing            bool             `json:"showPricing"`
	GiftsPerUser           int              `json:"giftsPerUser"`
	ShippingMode           ShippingMode     `json:"shippingMode"`
	CompanyAddress         *Address         `json:"companyAddress,omitempty"`
	DefaultLanguage        string           `json:"defaultLanguage"`
	EnableLanguageSelector bool             `json:"enableLanguageSelector"`
	DefaultCurrency        string           `json:"defaultCurrency"`
	AllowedCountries       []string         `json:"allowedCountries"`
	DefaultCountry         string           `json:"defaultCountry"`
	AvailabilityStartDate  string           `json:"availabilityStartDate,omitempty"`
	AvailabilityEndDate    string           `json:"availabilityEndDate,omitempty"`
	AllowedDomains         []string         `json:"allowedDomains,omitempty"`
	MaxGiftValue           *float64         `json:"maxGiftValue,omitempty"`
	RequireShippingAddress bool             `json:"requireShippingAddress,omitempty"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// IsActive reports whether the site accepts visitors
func (c *Config) IsActive() bool {
	return c != nil && c.Status == StatusActive
}

// Clone returns a copy that shares no slices or pointers with c
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.I18n = c.I18n.Clone()
	clone.Settings.AllowedCountries = append([]string(nil), c.Settings.AllowedCountries...)
	clone.Settings.AllowedDomains = append([]string(nil), c.Settings.AllowedDomains...)
	if c.Settings.CompanyAddress != nil {
		address := *c.Settings.CompanyAddress
		clone.Settings.CompanyAddress = &address
	}
	if c.Settings.MaxGiftValue != nil {
		value := *c.Settings.MaxGiftValue
		clone.Settings.MaxGiftValue = &value
	}
	return &clone
}
