package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabpaderog/maxicoffee-admin/internal/datasource"
	"github.com/gabpaderog/maxicoffee-admin/internal/models"
	"github.com/gabpaderog/maxicoffee-admin/internal/remote"
	"github.com/gabpaderog/maxicoffee-admin/internal/workflow"
)

// Deps carries everything the HTTP surface needs. One data source per
// catalog entity, the fulfillment workflow for order actions, and the raw
// remote client for dashboard pass-through.
type Deps struct {
	Products    *datasource.DataSource[models.Product]
	Categories  *datasource.DataSource[models.Category]
	Addons      *datasource.DataSource[models.Addon]
	Discounts   *datasource.DataSource[models.Discount]
	Orders      *datasource.DataSource[models.Order]
	Fulfillment *workflow.Fulfillment
	Remote      *remote.Client
}

func SetupRouter(deps *Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), SecurityHeaders())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	registerEntityRoutes(api, "/products", deps.Products)
	registerEntityRoutes(api, "/categories", deps.Categories)
	registerEntityRoutes(api, "/addons", deps.Addons)
	registerEntityRoutes(api, "/discounts", deps.Discounts)
	registerEntityRoutes(api, "/orders", deps.Orders)

	orderActions := &OrderActionsHandler{Fulfillment: deps.Fulfillment}
	api.PATCH("/orders/:id/status", orderActions.UpdateStatus)
	api.PATCH("/orders/:id/apply-discount", orderActions.ApplyDiscount)

	dashboard := &DashboardHandler{Remote: deps.Remote}
	api.GET("/dashboard", dashboard.Summary)
	api.GET("/dashboard/:period", dashboard.Sales)

	return r
}
