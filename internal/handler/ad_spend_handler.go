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

type AdSpendHandler struct {
	adSpendService service.AdSpendService
}

func NewAdSpendHandler(adSpendService service.AdSpendService) *AdSpendHandler {
	return &AdSpendHandler{adSpendService: adSpendService}
}

func (h *AdSpendHandler) RegisterRoutes(router *gin.RouterGroup) {
	spendGroup := router.Group("/api/ad-spend")
	{
		spendGroup.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleStaff), h.GetAdSpend)
		spendGroup.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateAdSpend)
		spendGroup.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.UpdateAdSpend)
		spendGroup.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteAdSpend)
	}
}

// @Summary      List ad spend entries
// @Tags         AdSpend
// @Produce      json
// @Param        page  query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200 {object} response.Response
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /api/ad-spend [get]
func (h *AdSpendHandler) GetAdSpend(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.adSpendService.GetAdSpend(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, entries, total, params.Page, params.Limit))
}

// @Summary      Record ad spend
// @Description  Record advertising spend for a store-local calendar date
// @Tags         AdSpend
// @Accept       json
// @Produce      json
// @Param        request body service.AdSpendRequest true "Ad spend entry"
// @Success      201 {object} response.Response
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /api/ad-spend [post]
func (h *AdSpendHandler) CreateAdSpend(c *gin.Context) {
	var req service.AdSpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	entry, err := h.adSpendService.CreateAdSpend(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, entry))
}

// @Summary      Update ad spend entry
// @Tags         AdSpend
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "Entry ID"
// @Param        request body service.AdSpendRequest true "Ad spend entry"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/ad-spend/{id} [put]
func (h *AdSpendHandler) UpdateAdSpend(c *gin.Context) {
	var req service.AdSpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	entry, err := h.adSpendService.UpdateAdSpend(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// @Summary      Delete ad spend entry
// @Tags         AdSpend
// @Produce      json
// @Param        id path string true "Entry ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Security     BearerAuth
// @Router       /api/ad-spend/{id} [delete]
func (h *AdSpendHandler) DeleteAdSpend(c *gin.Context) {
	if err := h.adSpendService.DeleteAdSpend(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
