package handler

import (
	"net/http"

	"podboard/internal/middleware"
	"podboard/internal/model"
	"podboard/internal/service"
	"podboard/pkg/response"

	"github.com/gin-gonic/gin"
)

type CostFieldHandler struct {
	costFieldService service.CostFieldService
}

func NewCostFieldHandler(costFieldService service.CostFieldService) *CostFieldHandler {
	return &CostFieldHandler{costFieldService: costFieldService}
}

func (h *CostFieldHandler) RegisterRoutes(router *gin.RouterGroup) {
	costGroup := router.Group("/api/cost-fields")
	{
		costGroup.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleStaff), h.GetCostFields)
		costGroup.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateCostField)
		costGroup.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.UpdateCostField)
		costGroup.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteCostField)
	}
}

// @Summary      List cost fields
// @Description  All configured cost fields, oldest first
// @Tags         CostFields
// @Produce      json
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /api/cost-fields [get]
func (h *CostFieldHandler) GetCostFields(c *gin.Context) {
	fields, err := h.costFieldService.GetCostFields(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, fields))
}

// @Summary      Create cost field
// @Tags         CostFields
// @Accept       json
// @Produce      json
// @Param        request body service.CostFieldRequest true "Cost field"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/cost-fields [post]
func (h *CostFieldHandler) CreateCostField(c *gin.Context) {
	var req service.CostFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	field, err := h.costFieldService.CreateCostField(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, field))
}

// @Summary      Update cost field
// @Tags         CostFields
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Cost field ID"
// @Param        request body service.CostFieldRequest true "Cost field"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/cost-fields/{id} [put]
func (h *CostFieldHandler) UpdateCostField(c *gin.Context) {
	var req service.CostFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	field, err := h.costFieldService.UpdateCostField(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, field))
}

// @Summary      Delete cost field
// @Tags         CostFields
// @Produce      json
// @Param        id path string true "Cost field ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/cost-fields/{id} [delete]
func (h *CostFieldHandler) DeleteCostField(c *gin.Context) {
	if err := h.costFieldService.DeleteCostField(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
