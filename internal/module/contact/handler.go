package contact

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/databroker-go/databroker/internal/broker"
	"github.com/databroker-go/databroker/internal/domain"
	"github.com/databroker-go/databroker/internal/pkg"
)

// Handler exposes broker operations for the contact record over REST.
type Handler struct {
	broker *broker.Broker[domain.Contact]
	limits pkg.ListDefaults
}

// NewHandler creates a contact Handler backed by the given broker.
func NewHandler(b *broker.Broker[domain.Contact], limits pkg.ListDefaults) *Handler {
	return &Handler{broker: b, limits: limits}
}

// Create handles POST /api/v1/contacts.
func (h *Handler) Create(c *gin.Context) {
	var req CreateContactRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	record := domain.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Company: strings.TrimSpace(req.Company),
	}

	result, err := h.broker.Create(c.Request.Context(), &record)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if !result.Success {
		pkg.Failure(c, *result)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "success",
		Data:    record,
	})
}

// Get handles GET /api/v1/contacts/:uid.
func (h *Handler) Get(c *gin.Context) {
	result, err := h.broker.Get(c.Request.Context(), &domain.ItemRequest{UID: c.Param("uid")})
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if !result.Success {
		pkg.Failure(c, result.Result)
		return
	}

	pkg.Success(c, result.Item)
}

// List handles GET /api/v1/contacts.
func (h *Handler) List(c *gin.Context) {
	req := pkg.ParseListRequest(c, h.limits)

	result, err := h.broker.List(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if !result.Success {
		pkg.Failure(c, result.Result)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/contacts/:uid.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateContactRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	record := domain.Contact{
		BaseRecord: domain.BaseRecord{UID: c.Param("uid")},
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Company:    strings.TrimSpace(req.Company),
	}

	result, err := h.broker.Update(c.Request.Context(), &record)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if !result.Success {
		pkg.Failure(c, *result)
		return
	}

	pkg.Success(c, nil)
}

// Delete handles DELETE /api/v1/contacts/:uid.
func (h *Handler) Delete(c *gin.Context) {
	result, err := h.broker.Delete(c.Request.Context(), &domain.ItemRequest{UID: c.Param("uid")})
	if err != nil {
		pkg.Error(c, err)
		return
	}
	if !result.Success {
		pkg.Failure(c, *result)
		return
	}

	pkg.Success(c, nil)
}
