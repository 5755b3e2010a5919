package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"pizzahub/internal/logger"
	"pizzahub/internal/service"
	"pizzahub/internal/store"
)

var errInvalidJSON = errors.New("Invalid JSON body")

// Handler serves the pizzahub routes.
type Handler struct {
	svc *service.Service
	doc *openapi3.T
}

func NewHandler(svc *service.Service, doc *openapi3.T) *Handler {
	return &Handler{svc: svc, doc: doc}
}

func (h *Handler) listShops(c *fiber.Ctx) error {
	return c.JSON(h.svc.ListShops(c.UserContext()))
}

func (h *Handler) getShop(c *fiber.Ctx) error {
	shop, err := h.svc.GetShop(c.UserContext(), param(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(shop)
}

func (h *Handler) listPizzas(c *fiber.Ctx) error {
	return c.JSON(h.svc.ListPizzas(c.UserContext()))
}

func (h *Handler) listShopPizzas(c *fiber.Ctx) error {
	return c.JSON(h.svc.ShopPizzas(c.UserContext(), param(c, "shopId")))
}

func (h *Handler) listPizzaBeverages(c *fiber.Ctx) error {
	return c.JSON(h.svc.PizzaBeverages(c.UserContext(), param(c, "pizzaId")))
}

func (h *Handler) createPizza(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return respondError(c, err)
	}
	pizza, err := h.svc.CreatePizza(c.UserContext(), param(c, "shopId"), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pizza)
}

func (h *Handler) createBeverage(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return respondError(c, err)
	}
	beverage, err := h.svc.CreateBeverage(c.UserContext(), param(c, "pizzaId"), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(beverage)
}

func (h *Handler) updatePizza(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return respondError(c, err)
	}
	pizza, err := h.svc.UpdatePizza(c.UserContext(), param(c, "id"), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Pizza updated successfully",
		"pizza":   pizza,
	})
}

func (h *Handler) deletePizza(c *fiber.Ctx) error {
	id := param(c, "id")
	if err := h.svc.DeletePizza(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Pizza %s deleted", id)})
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.svc.CreateOrder(c.UserContext(), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *Handler) updateOrderStatus(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.svc.UpdateOrderStatus(c.UserContext(), param(c, "id"), body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated",
		"order":   order,
	})
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.SendString("OK")
}

func (h *Handler) openapi(c *fiber.Ctx) error {
	return c.JSON(h.doc)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// param returns a decoded copy of a path parameter. fiber reuses the
// underlying buffer once the handler returns.
func param(c *fiber.Ctx, name string) string {
	raw := utils.CopyString(c.Params(name))
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// parseBody decodes a JSON object body. A body that is empty or not sent as
// JSON reads as an empty object, so its fields count as missing.
func parseBody(c *fiber.Ctx) (map[string]any, error) {
	body := map[string]any{}
	raw := c.Body()
	if len(bytes.TrimSpace(raw)) == 0 {
		return body, nil
	}
	if !c.Is("json") {
		requestLogger(c).Info(logger.ComponentValidator, "Body ignored, Content-Type is not JSON",
			zap.String("content_type", c.Get(fiber.HeaderContentType)))
		return body, nil
	}
	if err := c.App().Config().JSONDecoder(raw, &body); err != nil {
		requestLogger(c).Warning(logger.ComponentValidator, "Body is not a JSON object", zap.Error(err))
		return nil, errInvalidJSON
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

// respondError maps an operation error onto a status and a {message} body.
func respondError(c *fiber.Ctx, err error) error {
	log := requestLogger(c)
	status, message := fiber.StatusInternalServerError, utils.StatusMessage(fiber.StatusInternalServerError)

	var svcErr *service.Error
	switch {
	case errors.Is(err, errInvalidJSON):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.As(err, &svcErr) && errors.Is(err, service.ErrValidation):
		status, message = fiber.StatusBadRequest, svcErr.Message
	case errors.As(err, &svcErr) && errors.Is(err, service.ErrNotFound):
		status, message = fiber.StatusNotFound, svcErr.Message
	case errors.Is(err, store.ErrSave):
		message = "Failed to save data"
	case errors.Is(err, store.ErrLoad):
		message = "Failed to load data"
	}

	switch status {
	case fiber.StatusBadRequest:
		log.Warning(logger.ComponentValidator, "Request did not pass the validation rules")
		log.Violation(message)
	case fiber.StatusNotFound:
		log.Info(logger.ComponentNegotiator, message)
	default:
		log.Error(logger.ComponentHTTPServer, "Request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}
