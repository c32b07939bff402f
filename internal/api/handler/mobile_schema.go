package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// sortParam accepts the price order as a JSON number or a numeric string.
type sortParam int

func (s *sortParam) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = 0
		return nil
	}

	var v json.Number
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			*s = 0
			return nil
		}
		v = json.Number(str)
	} else {
		v = json.Number(b)
	}

	n, err := strconv.Atoi(v.String())
	if err != nil {
		return fmt.Errorf("sortValue must be 1 or -1: %w", err)
	}
	*s = sortParam(n)
	return nil
}

type catalogRequest struct {
	SearchValue string    `json:"searchValue"`
	SortValue   sortParam `json:"sortValue" swaggertype:"integer"`
}

type sellerListRequest struct {
	UserID      string    `json:"userId"`
	SearchValue string    `json:"searchValue"`
	SortValue   sortParam `json:"sortValue" swaggertype:"integer"`
}

type createMobileRequest struct {
	Brand             string  `json:"brand"             validate:"required"`
	Model             string  `json:"model"             validate:"required"`
	Description       string  `json:"description"       validate:"required"`
	MobilePrice       float64 `json:"mobilePrice"       validate:"gte=1000,lte=1000000"`
	AvailableQuantity int     `json:"availableQuantity" validate:"gte=0"`
	UserID            string  `json:"userId"`
}

// updateMobileRequest carries only the fields being changed. The owner is not
// updatable and a userId in the body is ignored.
type updateMobileRequest struct {
	Brand             *string  `json:"brand"             validate:"omitempty,min=1"`
	Model             *string  `json:"model"             validate:"omitempty,min=1"`
	Description       *string  `json:"description"       validate:"omitempty,min=1"`
	MobilePrice       *float64 `json:"mobilePrice"       validate:"omitempty,gte=1000,lte=1000000"`
	AvailableQuantity *int     `json:"availableQuantity" validate:"omitempty,gte=0"`
}
