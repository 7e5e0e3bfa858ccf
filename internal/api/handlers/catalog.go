package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paothinnapat/sales-tracker/internal/domain"
	"github.com/paothinnapat/sales-tracker/internal/service"
)

// HandleGetCatalog handles GET /api/catalog: the product catalog and store
// plants the recorder was started with, so form clients render the same list
func HandleGetCatalog(catalog *domain.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, service.CatalogResponse{
			Products: catalog.Products,
			Stores:   domain.Stores,
		})
	}
}
