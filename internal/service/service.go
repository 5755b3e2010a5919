// Package service holds the pizzahub operations behind each route. Every
// operation loads the document, works on it and, when it changes anything,
// saves it back through the store.
package service

import (
	"context"

	"pizzahub/internal/store"
)

// OrderPlaced is the status every new order starts with.
const OrderPlaced = "placed"

// Service implements the pizzahub operations.
type Service struct {
	store *store.Store
	ids   store.IDGenerator
	req   Requirements
}

// New returns a Service. ids defaults to store.UUIDs.
func New(st *store.Store, ids store.IDGenerator, req Requirements) *Service {
	if ids == nil {
		ids = store.UUIDs{}
	}
	return &Service{store: st, ids: ids, req: req}
}

func (s *Service) ListShops(ctx context.Context) []store.Record {
	return s.store.Load(ctx).Shops
}

func (s *Service) GetShop(ctx context.Context, id string) (store.Record, error) {
	shop := store.Find(s.store.Load(ctx).Shops, id)
	if shop == nil {
		return nil, notFound("PizzaHub not found")
	}
	return shop, nil
}

func (s *Service) ListPizzas(ctx context.Context) []store.Record {
	return s.store.Load(ctx).Pizzas
}

// ShopPizzas lists the pizzas of one shop. The shop itself is not checked.
func (s *Service) ShopPizzas(ctx context.Context, shopID string) []store.Record {
	return store.FilterBy(s.store.Load(ctx).Pizzas, "shopId", shopID)
}

// PizzaBeverages lists the beverages paired with one pizza.
func (s *Service) PizzaBeverages(ctx context.Context, pizzaID string) []store.Record {
	return store.FilterBy(s.store.Load(ctx).Beverages, "pizzaId", pizzaID)
}

// CreatePizza adds a pizza to shopID. The shop is not required to exist.
func (s *Service) CreatePizza(ctx context.Context, shopID string, body map[string]any) (store.Record, error) {
	if len(missing(body, s.req.Pizza)) > 0 {
		return nil, invalid("type and name are required")
	}
	pizza := store.Record{
		"id":     s.ids.NewID(store.PizzaPrefix),
		"shopId": shopID,
		"type":   body["type"],
		"name":   body["name"],
	}
	err := s.store.Update(ctx, func(st *store.State) error {
		st.Pizzas = append(st.Pizzas, pizza)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pizza, nil
}

// CreateBeverage adds a beverage paired with pizzaID.
func (s *Service) CreateBeverage(ctx context.Context, pizzaID string, body map[string]any) (store.Record, error) {
	if len(missing(body, s.req.Beverage)) > 0 {
		return nil, invalid("Beverage name required")
	}
	beverage := store.Record{
		"id":      s.ids.NewID(store.BeveragePrefix),
		"pizzaId": pizzaID,
		"name":    body["name"],
	}
	err := s.store.Update(ctx, func(st *store.State) error {
		st.Beverages = append(st.Beverages, beverage)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return beverage, nil
}

// UpdatePizza merges updates onto the pizza. Fields not in updates keep
// their values; unknown fields are added.
func (s *Service) UpdatePizza(ctx context.Context, id string, updates map[string]any) (store.Record, error) {
	var pizza store.Record
	err := s.store.Update(ctx, func(st *store.State) error {
		pizza = store.Find(st.Pizzas, id)
		if pizza == nil {
			return notFound("Pizza not found")
		}
		store.Merge(pizza, updates)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pizza, nil
}

// DeletePizza removes the pizza. Beverages and orders that reference it are
// left in place.
func (s *Service) DeletePizza(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(st *store.State) error {
		rest, ok := store.Remove(st.Pizzas, id)
		if !ok {
			return notFound("Pizza not found")
		}
		st.Pizzas = rest
		return nil
	})
}

// CreateOrder places an order. quantity is stored exactly as sent.
func (s *Service) CreateOrder(ctx context.Context, body map[string]any) (store.Record, error) {
	if len(missing(body, s.req.Order)) > 0 || !numeric(body["quantity"]) {
		return nil, invalid("PizzaId and numeric quantity are required")
	}
	order := store.Record{
		"id":       s.ids.NewID(store.OrderPrefix),
		"pizzaId":  body["pizzaId"],
		"quantity": body["quantity"],
		"status":   OrderPlaced,
	}
	err := s.store.Update(ctx, func(st *store.State) error {
		st.Orders = append(st.Orders, order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus overwrites the order's status. Any non-empty value is
// accepted; there is no enforced progression.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, body map[string]any) (store.Record, error) {
	if len(missing(body, s.req.Status)) > 0 {
		return nil, invalid("Status is required")
	}
	var order store.Record
	err := s.store.Update(ctx, func(st *store.State) error {
		order = store.Find(st.Orders, id)
		if order == nil {
			return notFound("Order not found")
		}
		order["status"] = body["status"]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
