package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mobilemart/marketplace/internal/api/metrics"
	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
)

// MobileNotFoundMessage is returned with 200 by Get for an unknown id.
const MobileNotFoundMessage = "Cannot find any mobile."

// MobileHandler handles HTTP requests for mobile listings.
type MobileHandler struct {
	service ports.MobileService
}

func NewMobileHandler(service ports.MobileService) *MobileHandler {
	return &MobileHandler{service: service}
}

// Catalog handles POST /mobile.
//
// @Summary      Browse the catalog
// @Tags         mobile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      catalogRequest  false  "Search and sort"
// @Success      200   {array}   domain.Mobile
// @Failure      400   {object}  messageResponse
// @Router       /mobile [post]
func (h *MobileHandler) Catalog(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req catalogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	items, err := h.service.ListCatalog(c.Request().Context(), claims, ports.CatalogInput{
		Search: req.SearchValue,
		Sort:   int(req.SortValue),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// SellerListing handles POST /mobile/seller. The listing is always the
// caller's own; a userId naming someone else is refused.
//
// @Summary      List the caller's own mobiles
// @Tags         mobile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sellerListRequest  false  "Search and sort"
// @Success      200   {array}   domain.Mobile
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /mobile/seller [post]
func (h *MobileHandler) SellerListing(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sellerListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	items, err := h.service.ListOwned(c.Request().Context(), claims, ports.ListOwnedInput{
		RequestedOwnerID: req.UserID,
		Search:           req.SearchValue,
		Sort:             int(req.SortValue),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /mobile/:id.
//
// @Summary      Get a mobile by id
// @Tags         mobile
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Mobile id"
// @Success      200  {object}  domain.Mobile
// @Failure      400  {object}  messageResponse
// @Router       /mobile/{id} [get]
func (h *MobileHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	m, err := h.service.Get(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMobileNotFound) {
			return c.JSON(http.StatusOK, messageResponse{Message: MobileNotFoundMessage})
		}
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /mobile/add.
//
// @Summary      Add a mobile listing
// @Tags         mobile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMobileRequest  true  "Listing"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /mobile/add [post]
func (h *MobileHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createMobileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.MobileMutationsTotal.WithLabelValues("create", "invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err = h.service.Create(c.Request().Context(), claims, ports.MobileInput{
		Brand:             req.Brand,
		Model:             req.Model,
		Description:       req.Description,
		MobilePrice:       req.MobilePrice,
		AvailableQuantity: req.AvailableQuantity,
		UserID:            req.UserID,
	})
	metrics.MobileMutationsTotal.WithLabelValues("create", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Mobile added successfully"})
}

// Update handles PUT /mobile/:id.
//
// @Summary      Update a mobile listing
// @Tags         mobile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Mobile id"
// @Param        body  body      updateMobileRequest  true  "Changed fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /mobile/{id} [put]
func (h *MobileHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateMobileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.MobileMutationsTotal.WithLabelValues("update", "invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.service.Update(c.Request().Context(), claims, c.Param("id"), domain.MobileChanges{
		Brand:             req.Brand,
		Model:             req.Model,
		Description:       req.Description,
		MobilePrice:       req.MobilePrice,
		AvailableQuantity: req.AvailableQuantity,
	})
	metrics.MobileMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Mobile updated successfully"})
}

// Delete handles DELETE /mobile/:id.
//
// @Summary      Delete a mobile listing
// @Tags         mobile
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Mobile id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /mobile/{id} [delete]
func (h *MobileHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	err = h.service.Delete(c.Request().Context(), claims, c.Param("id"))
	metrics.MobileMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Mobile deleted successfully"})
}

func mutationResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrMobileNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
