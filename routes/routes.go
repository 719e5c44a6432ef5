package routes

import (
	"github.com/julienschmidt/httprouter"

	"github.com/tech-manthan/mernspace-catalog-service/category"
	"github.com/tech-manthan/mernspace-catalog-service/middleware"
	"github.com/tech-manthan/mernspace-catalog-service/models"
	"github.com/tech-manthan/mernspace-catalog-service/product"
	"github.com/tech-manthan/mernspace-catalog-service/ratelim"
	"github.com/tech-manthan/mernspace-catalog-service/topping"
)

// AddCategoryRoutes registers category endpoints. Reads are public;
// schema mutations are admin only.
func AddCategoryRoutes(router *httprouter.Router, h *category.Handler, auth *middleware.Auth, rl *ratelim.RateLimiter) {
	router.GET("/categories", h.GetAll)
	router.GET("/categories/:id", h.GetOne)
	router.POST("/categories", auth.Authenticate(middleware.CanAccess(rl.Limit(h.Create), models.RoleAdmin)))
	router.PATCH("/categories/:id", auth.Authenticate(middleware.CanAccess(rl.Limit(h.Update), models.RoleAdmin)))
	router.DELETE("/categories/:id", auth.Authenticate(middleware.CanAccess(rl.Limit(h.Delete), models.RoleAdmin)))
}

// AddProductRoutes registers product endpoints. Mutations are open to
// admins and managers; the tenant guard inside the handlers narrows
// managers to their own tenant.
func AddProductRoutes(router *httprouter.Router, h *product.Handler, auth *middleware.Auth, rl *ratelim.RateLimiter) {
	router.GET("/products", h.GetAll)
	router.GET("/products/:id", h.GetOne)
	router.POST("/products", auth.Authenticate(middleware.CanAccess(rl.Limit(h.Create), models.RoleAdmin, models.RoleManager)))
	router.PUT("/products/:id", auth.Authenticate(middleware.CanAccess(rl.Limit(h.Update), models.RoleAdmin, models.RoleManager)))
	router.DELETE("/products/:id", auth.Authenticate(middleware.CanAccess(rl.Limit(h.Delete), models.RoleAdmin, models.RoleManager)))
}

func AddToppingRoutes(router *httprouter.Router, h *topping.Handler, auth *middleware.Auth, rl *ratelim.RateLimiter) {
	router.GET("/toppings", h.GetAll)
	router.GET("/toppings/:id", h.GetOne)
	router.POST("/toppings", auth.Authenticate(middleware.CanAccess(rl.Limit(h.Create), models.RoleAdmin, models.RoleManager)))
	router.PUT("/toppings/:id", auth.Authenticate(middleware.CanAccess(rl.Limit(h.Update), models.RoleAdmin, models.RoleManager)))
	router.DELETE("/toppings/:id", auth.Authenticate(middleware.CanAccess(rl.Limit(h.Delete), models.RoleAdmin, models.RoleManager)))
}
