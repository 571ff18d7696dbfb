// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/viber-store/internal/domain/cart"
	"github.com/your-org/viber-store/internal/domain/product"
	"github.com/your-org/viber-store/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints. All routes behind it are gated by
// the login middleware, so an owner key is always present in context.
type CartHandler struct {
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// UpdateLineRequest carries the new quantity for a cart line. A pointer
// so that an explicit zero (remove via zero) survives binding.
type UpdateLineRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	ownerKey, _ := middleware.GetOwnerKeyFromContext(c)

	response, err := h.cartService.GetCart(c.Request.Context(), ownerKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    response,
	})
}

// AddToCart handles POST /cart/add/:productID
func (h *CartHandler) AddToCart(c *gin.Context) {
	ownerKey, _ := middleware.GetOwnerKeyFromContext(c)

	productID, ok := parseIDParam(c, "productID")
	if !ok {
		return
	}

	count, err := h.cartService.Add(c.Request.Context(), ownerKey, productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add product to cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Product added to cart",
		"cart_count": count,
	})
}

// UpdateLine handles POST /cart/update/:itemID
func (h *CartHandler) UpdateLine(c *gin.Context) {
	ownerKey, _ := middleware.GetOwnerKeyFromContext(c)

	lineID, ok := parseIDParam(c, "itemID")
	if !ok {
		return
	}

	var req UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	outcome, err := h.cartService.SetQuantity(c.Request.Context(), ownerKey, lineID, *req.Quantity)
	if err != nil {
		h.respondLineError(c, err)
		return
	}

	if outcome == cart.LineRemoved {
		c.JSON(http.StatusOK, gin.H{
			"message": "Item removed from cart",
			"status":  string(outcome),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"status":  string(outcome),
	})
}

// RemoveLine handles POST /cart/remove/:itemID
func (h *CartHandler) RemoveLine(c *gin.Context) {
	ownerKey, _ := middleware.GetOwnerKeyFromContext(c)

	lineID, ok := parseIDParam(c, "itemID")
	if !ok {
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), ownerKey, lineID); err != nil {
		h.respondLineError(c, err)
		return
	}

	count, err := h.cartService.Count(c.Request.Context(), ownerKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get cart count",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Item removed from cart",
		"cart_count": count,
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	ownerKey, _ := middleware.GetOwnerKeyFromContext(c)

	count, err := h.cartService.Count(c.Request.Context(), ownerKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get cart count",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}

// respondLineError maps cart line errors to HTTP statuses. Forbidden stays
// distinct from not-found, matching the observed contract.
func (h *CartHandler) respondLineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Cart item not found",
		})
	case errors.Is(err, cart.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not authorized",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
	}
}

// parseIDParam parses a numeric path parameter, responding 400 on garbage
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}
