package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"roomrental/properties-api/domain"
	"roomrental/properties-api/dto"
	"roomrental/properties-api/repositories"
	"roomrental/properties-api/services"

	"github.com/gin-gonic/gin"
)

// PropertyController handles the property HTTP endpoints.
type PropertyController struct {
	service services.PropertyService
}

// NewPropertyController builds the controller.
func NewPropertyController(service services.PropertyService) *PropertyController {
	return &PropertyController{service: service}
}

// CreateProperty handles POST /api/properties.
func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	property, err := ctrl.service.CreateProperty(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "create_property_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, property)
}

// GetAllProperties handles GET /api/properties.
func (ctrl *PropertyController) GetAllProperties(c *gin.Context) {
	properties, err := ctrl.service.GetAllProperties()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "get_properties_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetPropertyByID handles GET /api/properties/:id.
func (ctrl *PropertyController) GetPropertyByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	property, err := ctrl.service.GetPropertyByID(id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, property)
}

// GetPropertiesByLandlord handles GET /api/properties/landlord/:id.
func (ctrl *PropertyController) GetPropertiesByLandlord(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	properties, err := ctrl.service.GetPropertiesByLandlord(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "get_properties_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetAvailableProperties handles GET /api/properties/available.
func (ctrl *PropertyController) GetAvailableProperties(c *gin.Context) {
	properties, err := ctrl.service.GetAvailableProperties()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "get_properties_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// SearchProperties handles GET /api/properties/search. Every filter is
// optional; absent filters match everything.
func (ctrl *PropertyController) SearchProperties(c *gin.Context) {
	filters := dto.SearchFilters{City: c.Query("city")}

	if raw := c.Query("minPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badQueryParam(c, "minPrice")
			return
		}
		filters.MinPrice = &value
	}
	if raw := c.Query("maxPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badQueryParam(c, "maxPrice")
			return
		}
		filters.MaxPrice = &value
	}
	if raw := c.Query("bedrooms"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			badQueryParam(c, "bedrooms")
			return
		}
		filters.Bedrooms = &value
	}
	if raw := c.Query("propertyType"); raw != "" {
		propertyType, ok := domain.ParsePropertyType(raw)
		if !ok {
			badQueryParam(c, "propertyType")
			return
		}
		filters.PropertyType = &propertyType
	}

	page := dto.PageRequest{
		SortBy:  c.DefaultQuery("sortBy", "createdAt"),
		SortDir: c.DefaultQuery("sortDir", "desc"),
	}
	var err error
	if page.Page, err = strconv.Atoi(c.DefaultQuery("page", "0")); err != nil {
		badQueryParam(c, "page")
		return
	}
	if page.Size, err = strconv.Atoi(c.DefaultQuery("size", "10")); err != nil {
		badQueryParam(c, "size")
		return
	}

	result, err := ctrl.service.SearchProperties(filters, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "search_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateProperty handles PUT /api/properties/:id.
func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	property, err := ctrl.service.UpdateProperty(id, req)
	if err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "update_property_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, property)
}

// UpdateAvailability handles PUT /api/properties/:id/availability?available=.
func (ctrl *PropertyController) UpdateAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	available, err := strconv.ParseBool(c.Query("available"))
	if err != nil {
		badQueryParam(c, "available")
		return
	}

	property, err := ctrl.service.UpdateAvailability(id, available)
	if err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "update_availability_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, property)
}

// DeleteProperty handles DELETE /api/properties/:id.
func (ctrl *PropertyController) DeleteProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteProperty(id); err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "delete_property_error",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (ctrl *PropertyController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "properties-api",
	})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_id",
			Message: "Invalid property ID",
		})
		return 0, false
	}
	return uint(id), true
}

func badQueryParam(c *gin.Context, name string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "invalid_parameter",
		Message: "Invalid value for parameter: " + name,
	})
}
