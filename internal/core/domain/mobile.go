package domain

import "errors"

var (
	ErrMobileNotFound = errors.New("mobile not found")
	ErrForbidden      = errors.New("access forbidden")
	ErrValidation     = errors.New("validation failed")
)

// Price bounds enforced on every listing.
const (
	MinMobilePrice = 1000
	MaxMobilePrice = 1000000
)

// Mobile is a single inventory listing owned by a seller.
type Mobile struct {
	ID                string  `json:"_id"`
	Brand             string  `json:"brand"`
	Model             string  `json:"model"`
	Description       string  `json:"description"`
	MobilePrice       float64 `json:"mobilePrice"`
	AvailableQuantity int     `json:"availableQuantity"`
	UserID            string  `json:"userId"`
}

// OwnedBy reports whether the listing belongs to userID.
func (m *Mobile) OwnedBy(userID string) bool {
	return userID != "" && m.UserID == userID
}

// MobileChanges carries a partial update; nil fields are left untouched.
type MobileChanges struct {
	Brand             *string
	Model             *string
	Description       *string
	MobilePrice       *float64
	AvailableQuantity *int
}

// Empty reports whether no field is set.
func (c MobileChanges) Empty() bool {
	return c.Brand == nil && c.Model == nil && c.Description == nil &&
		c.MobilePrice == nil && c.AvailableQuantity == nil
}

// SortOrder is the price ordering requested by list endpoints.
type SortOrder int

const (
	SortPriceAsc  SortOrder = 1
	SortPriceDesc SortOrder = -1
)

// ParseSortOrder maps the wire value to a SortOrder. Anything other than -1
// sorts ascending.
func ParseSortOrder(v int) SortOrder {
	if v == int(SortPriceDesc) {
		return SortPriceDesc
	}
	return SortPriceAsc
}
