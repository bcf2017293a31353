package handler

import (
	"net/http"

	"podboard/internal/middleware"
	"podboard/internal/model"
	"podboard/internal/service"
	"podboard/pkg/pagination"
	"podboard/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService    service.OrderService
	overrideService service.OverrideService
}

func NewOrderHandler(orderService service.OrderService, overrideService service.OverrideService) *OrderHandler {
	return &OrderHandler{orderService: orderService, overrideService: overrideService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/api/orders")
	{
		orderGroup.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleStaff), h.GetOrders)
		orderGroup.POST("/sync", middleware.RequireRole(model.RoleAdmin), h.SyncOrders)
		orderGroup.POST("/:id/rto", middleware.RequireRole(model.RoleAdmin), h.MarkRTO)
		orderGroup.DELETE("/:id/rto", middleware.RequireRole(model.RoleAdmin), h.UnmarkRTO)
		orderGroup.POST("/:id/discard", middleware.RequireRole(model.RoleAdmin), h.DiscardOrder)
		orderGroup.DELETE("/:id/discard", middleware.RequireRole(model.RoleAdmin), h.RestoreOrder)
	}
}

// @Summary      List orders
// @Description  Paginated order list with operator override flags
// @Tags         Orders
// @Produce      json
// @Param        page  query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /api/orders [get]
func (h *OrderHandler) GetOrders(c *gin.Context) {
	params := pagination.Parse(c)

	orders, total, err := h.orderService.GetOrders(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, orders, total, params.Page, params.Limit))
}

// @Summary      Sync order feed
// @Description  Upsert a batch of orders fetched from the sales channel
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        request body service.SyncOrdersRequest true "Order batch"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /api/orders/sync [post]
func (h *OrderHandler) SyncOrders(c *gin.Context) {
	var req service.SyncOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	count, err := h.orderService.SyncOrders(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"synced": count}))
}

// @Summary      Mark order as RTO
// @Description  Force the order to classify as FAILED regardless of courier status
// @Tags         Orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/orders/{id}/rto [post]
func (h *OrderHandler) MarkRTO(c *gin.Context) {
	h.setRTO(c, true)
}

// @Summary      Unmark order RTO
// @Tags         Orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/orders/{id}/rto [delete]
func (h *OrderHandler) UnmarkRTO(c *gin.Context) {
	h.setRTO(c, false)
}

// @Summary      Discard order
// @Description  Hide the order from sales-facing aggregates
// @Tags         Orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/orders/{id}/discard [post]
func (h *OrderHandler) DiscardOrder(c *gin.Context) {
	h.setDiscarded(c, true)
}

// @Summary      Restore discarded order
// @Tags         Orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/orders/{id}/discard [delete]
func (h *OrderHandler) RestoreOrder(c *gin.Context) {
	h.setDiscarded(c, false)
}

func (h *OrderHandler) setRTO(c *gin.Context, rto bool) {
	result, err := h.overrideService.SetRTO(c.Request.Context(), middleware.UserID(c), c.Param("id"), rto)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

func (h *OrderHandler) setDiscarded(c *gin.Context, discarded bool) {
	result, err := h.overrideService.SetDiscarded(c.Request.Context(), middleware.UserID(c), c.Param("id"), discarded)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
