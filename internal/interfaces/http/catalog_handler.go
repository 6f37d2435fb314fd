package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/catalog"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/dto"
)

// CatalogHandler handles products, locations and the availability lookups.
type CatalogHandler struct {
	uc *catalog.UseCase
}

func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateProduct handles POST /api/products.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	p, err := h.uc.CreateProduct(c.Context(), catalog.CreateProductInput{
		SKU:     in.SKU,
		Barcode: in.Barcode,
		Name:    in.Name,
		Unit:    in.Unit,
		Price:   in.Price,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(p))
}

// GetProduct handles GET /api/products/:id.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProductResponse(p))
}

// ListProducts handles GET /api/products.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	list, err := h.uc.ListProducts(c.Context(), c.QueryInt("limit", 100))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToProductResponse(p))
	}
	return c.JSON(out)
}

// Search handles GET /api/products/search?q=...&location_id=...
// Resolves SKU, barcode or folded name and returns fresh availability per hit.
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	results, err := h.uc.Search(c.Context(), c.Query("q"), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProductAvailabilityResponses(results))
}

// Availability handles GET /api/availability. With ?identifier= it resolves a
// SKU/barcode scan to {found, product, available}; with ?product_id= it
// answers the plain pair lookup.
func (h *CatalogHandler) Availability(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	if identifier := c.Query("identifier"); identifier != "" {
		result, found, err := h.uc.Lookup(c.Context(), identifier, locationID)
		if err != nil {
			return respondError(c, err)
		}
		out := dto.AvailabilityLookupResponse{Found: found}
		if found {
			p := dto.ToProductResponse(result.Product)
			out.Product = &p
			out.Available = result.Available
		}
		return c.JSON(out)
	}

	productID := c.Query("product_id")
	avail, err := h.uc.Availability(c.Context(), productID, locationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{ProductID: productID, LocationID: locationID, Available: avail})
}

// CreateLocation handles POST /api/locations.
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	l, err := h.uc.CreateLocation(c.Context(), catalog.CreateLocationInput{
		Code:    in.Code,
		Name:    in.Name,
		Address: in.Address,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToLocationResponse(l))
}

// ListLocations handles GET /api/locations.
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	list, err := h.uc.ListLocations(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.ToLocationResponse(l))
	}
	return c.JSON(out)
}
