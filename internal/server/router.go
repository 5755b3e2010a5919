package server

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pizzahub/internal/logger"
)

const (
	pathShops          = "/api/pizzahub"
	pathShop           = "/api/pizzahub/{id}"
	pathPizzas         = "/api/pizzas"
	pathShopPizzas     = "/api/pizzahub/{shopId}/pizzas"
	pathPizzaBeverages = "/api/pizzas/{pizzaId}/beverages"
	pathPizza          = "/api/pizzas/{id}"
	pathOrders         = "/api/orders"
	pathOrderStatus    = "/api/orders/{id}/status"
	pathHealth         = "/health"
	pathOpenAPI        = "/openapi.json"
)

type route struct {
	method  string
	path    string
	handler fiber.Handler
}

func (h *Handler) routes() []route {
	return []route{
		{fiber.MethodGet, pathShops, h.listShops},
		{fiber.MethodGet, pathShop, h.getShop},
		{fiber.MethodGet, pathPizzas, h.listPizzas},
		{fiber.MethodGet, pathShopPizzas, h.listShopPizzas},
		{fiber.MethodGet, pathPizzaBeverages, h.listPizzaBeverages},
		{fiber.MethodPost, pathShopPizzas, h.createPizza},
		{fiber.MethodPost, pathPizzaBeverages, h.createBeverage},
		{fiber.MethodPatch, pathPizza, h.updatePizza},
		{fiber.MethodDelete, pathPizza, h.deletePizza},
		{fiber.MethodPost, pathOrders, h.createOrder},
		{fiber.MethodPatch, pathOrderStatus, h.updateOrderStatus},
		{fiber.MethodGet, pathHealth, h.health},
		{fiber.MethodGet, pathOpenAPI, h.openapi},
	}
}

// RegisterRoutes mounts every handler. A route missing from doc is an error,
// so the published document cannot drift from what is served.
func RegisterRoutes(app *fiber.App, doc *openapi3.T, h *Handler, log *logger.Logger) error {
	for _, r := range h.routes() {
		if operationFor(doc, r.path, r.method) == nil {
			return fmt.Errorf("route %s %s is not in the openapi document", r.method, r.path)
		}
		app.Add(r.method, fiberPath(r.path), r.handler)
	}

	endpoints := Endpoints(doc)
	log.Info(logger.ComponentHTTPServer, "Available endpoints", zap.Strings("endpoints", endpoints))
	return nil
}
