package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"pizzahub/internal/logger"
	"pizzahub/internal/store"
)

type countingBackend struct {
	*store.MemoryBackend
	saves   int
	saveErr error
}

func (b *countingBackend) Save(ctx context.Context, s store.State) error {
	b.saves++
	if b.saveErr != nil {
		return b.saveErr
	}
	return b.MemoryBackend.Save(ctx, s)
}

type seqIDs struct{ n int }

func (g *seqIDs) NewID(prefix string) string {
	g.n++
	return fmt.Sprintf("%s%d", prefix, g.n)
}

func newService(t *testing.T, seed store.State) (*Service, *countingBackend) {
	t.Helper()
	b := &countingBackend{MemoryBackend: store.NewMemoryBackend()}
	if err := b.MemoryBackend.Save(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	st := store.New(b, logger.Nop())
	return New(st, &seqIDs{n: 10}, DefaultRequirements()), b
}

func seeded() store.State {
	st := store.Empty()
	st.Shops = []store.Record{
		{"id": "h1", "name": "Napoli", "location": "Downtown"},
		{"id": "h2", "name": "Roma", "location": "Harbor"},
	}
	st.Pizzas = []store.Record{
		{"id": "p1", "shopId": "h1", "type": "veg", "name": "Margherita"},
		{"id": "p2", "shopId": "h2", "type": "meat", "name": "Pepperoni"},
	}
	st.Beverages = []store.Record{
		{"id": "b1", "pizzaId": "p1", "name": "Lemonade"},
	}
	return st
}

func TestGetShop(t *testing.T) {
	svc, _ := newService(t, seeded())
	ctx := context.Background()

	shop, err := svc.GetShop(ctx, "h2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if shop.Str("name") != "Roma" {
		t.Fatalf("shop = %v", shop)
	}

	_, err = svc.GetShop(ctx, "h9")
	if !errors.Is(err, ErrNotFound) || err.Error() != "PizzaHub not found" {
		t.Fatalf("err = %v", err)
	}
}

func TestListsFollowStorageOrder(t *testing.T) {
	svc, _ := newService(t, seeded())
	ctx := context.Background()

	if got := svc.ListShops(ctx); len(got) != 2 || got[0].ID() != "h1" {
		t.Fatalf("shops = %v", got)
	}
	if got := svc.ListPizzas(ctx); len(got) != 2 || got[1].ID() != "p2" {
		t.Fatalf("pizzas = %v", got)
	}
	if got := svc.ShopPizzas(ctx, "h9"); got == nil || len(got) != 0 {
		t.Fatalf("unknown shop pizzas = %v", got)
	}
	if got := svc.PizzaBeverages(ctx, "p1"); len(got) != 1 || got[0].ID() != "b1" {
		t.Fatalf("beverages = %v", got)
	}
}

func TestCreatePizza(t *testing.T) {
	svc, b := newService(t, seeded())
	ctx := context.Background()

	pizza, err := svc.CreatePizza(ctx, "h1", map[string]any{"type": "veg", "name": "Funghi", "price": 9.5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := store.Record{"id": "p11", "shopId": "h1", "type": "veg", "name": "Funghi"}
	if !reflect.DeepEqual(pizza, want) {
		t.Fatalf("pizza = %v, want %v", pizza, want)
	}
	if b.saves != 1 {
		t.Fatalf("saves = %d, want 1", b.saves)
	}

	found := store.FilterBy(svc.ListPizzas(ctx), "name", "Funghi")
	if len(found) != 1 || !reflect.DeepEqual(found[0], pizza) {
		t.Fatalf("read back = %v, want %v", found, pizza)
	}
}

func TestCreatePizzaValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"empty body", map[string]any{}},
		{"nil body", nil},
		{"missing name", map[string]any{"type": "veg"}},
		{"missing type", map[string]any{"name": "Funghi"}},
		{"blank name", map[string]any{"type": "veg", "name": ""}},
		{"null type", map[string]any{"type": nil, "name": "Funghi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, b := newService(t, seeded())
			ctx := context.Background()

			_, err := svc.CreatePizza(ctx, "h1", tt.body)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if err.Error() != "type and name are required" {
				t.Errorf("message = %q", err.Error())
			}
			if b.saves != 0 {
				t.Errorf("saves = %d, want 0", b.saves)
			}
			if n := len(svc.ListPizzas(ctx)); n != 2 {
				t.Errorf("pizzas = %d, want 2", n)
			}
		})
	}
}

func TestCreateBeverage(t *testing.T) {
	svc, _ := newService(t, seeded())
	ctx := context.Background()

	if _, err := svc.CreateBeverage(ctx, "p2", map[string]any{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	bev, err := svc.CreateBeverage(ctx, "p2", map[string]any{"name": "Cola"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if bev.Str("pizzaId") != "p2" || bev.ID() != "b11" {
		t.Fatalf("beverage = %v", bev)
	}
	if got := svc.PizzaBeverages(ctx, "p2"); len(got) != 1 || got[0].Str("name") != "Cola" {
		t.Fatalf("beverages = %v", got)
	}
}

func TestUpdatePizzaKeepsUntouchedFields(t *testing.T) {
	svc, _ := newService(t, seeded())
	ctx := context.Background()

	pizza, err := svc.UpdatePizza(ctx, "p1", map[string]any{"type": "vegan"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := store.Record{"id": "p1", "shopId": "h1", "type": "vegan", "name": "Margherita"}
	if !reflect.DeepEqual(pizza, want) {
		t.Fatalf("pizza = %v, want %v", pizza, want)
	}

	stored := store.Find(svc.ListPizzas(ctx), "p1")
	if !reflect.DeepEqual(stored, want) {
		t.Fatalf("stored = %v, want %v", stored, want)
	}
}

func TestUpdatePizzaNotFound(t *testing.T) {
	svc, b := newService(t, seeded())

	_, err := svc.UpdatePizza(context.Background(), "nope", map[string]any{"type": "vegan"})
	if !errors.Is(err, ErrNotFound) || err.Error() != "Pizza not found" {
		t.Fatalf("err = %v", err)
	}
	if b.saves != 0 {
		t.Fatalf("saves = %d, want 0", b.saves)
	}
}

func TestDeletePizza(t *testing.T) {
	svc, b := newService(t, seeded())
	ctx := context.Background()

	if err := svc.DeletePizza(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	pizzas := svc.ListPizzas(ctx)
	if len(pizzas) != 1 || store.Find(pizzas, "p1") != nil {
		t.Fatalf("pizzas = %v", pizzas)
	}
	// no cascade: the beverage paired with p1 survives
	if got := svc.PizzaBeverages(ctx, "p1"); len(got) != 1 {
		t.Fatalf("beverages = %v", got)
	}

	saves := b.saves
	err := svc.DeletePizza(ctx, "p1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	if b.saves != saves {
		t.Fatalf("not-found delete wrote the store")
	}
}

func TestOrderLifecycle(t *testing.T) {
	svc, _ := newService(t, seeded())
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, map[string]any{"pizzaId": "p1", "quantity": "3"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := store.Record{"id": "o11", "pizzaId": "p1", "quantity": "3", "status": "placed"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}

	updated, err := svc.UpdateOrderStatus(ctx, "o11", map[string]any{"status": "delivered"})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if updated.Str("status") != "delivered" || updated.Str("quantity") != "3" {
		t.Fatalf("updated = %v", updated)
	}
}

func TestCreateOrderQuantity(t *testing.T) {
	tests := []struct {
		quantity any
		ok       bool
	}{
		{"3", true},
		{float64(2), true},
		{float64(0), true},
		{" 2.5 ", true},
		{"-1", true},
		{"1e3", true},
		{".5", true},
		{"7.", true},
		{"abc", false},
		{"inf", false},
		{"+INF", false},
		{"-Infinity", false},
		{"0x1p4", false},
		{"0x1_0p0", false},
		{"1_000", false},
		{"1e", false},
		{".", false},
		{"", false},
		{"NaN", false},
		{nil, false},
		{true, false},
		{[]any{"1"}, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.quantity), func(t *testing.T) {
			svc, _ := newService(t, seeded())
			_, err := svc.CreateOrder(context.Background(), map[string]any{"pizzaId": "p1", "quantity": tt.quantity})
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateOrderRequiresPizzaID(t *testing.T) {
	svc, b := newService(t, seeded())
	_, err := svc.CreateOrder(context.Background(), map[string]any{"quantity": "1"})
	if !errors.Is(err, ErrValidation) || err.Error() != "PizzaId and numeric quantity are required" {
		t.Fatalf("err = %v", err)
	}
	if b.saves != 0 {
		t.Fatalf("saves = %d, want 0", b.saves)
	}
}

func TestUpdateOrderStatusErrors(t *testing.T) {
	svc, b := newService(t, seeded())
	ctx := context.Background()

	if _, err := svc.UpdateOrderStatus(ctx, "o1", map[string]any{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing status err = %v", err)
	}
	_, err := svc.UpdateOrderStatus(ctx, "o404", map[string]any{"status": "delivered"})
	if !errors.Is(err, ErrNotFound) || err.Error() != "Order not found" {
		t.Fatalf("unknown order err = %v", err)
	}
	if b.saves != 0 {
		t.Fatalf("saves = %d, want 0", b.saves)
	}
}

func TestSaveFailureSurfaces(t *testing.T) {
	svc, b := newService(t, seeded())
	b.saveErr = errors.New("disk full")

	_, err := svc.CreatePizza(context.Background(), "h1", map[string]any{"type": "veg", "name": "Funghi"})
	if !errors.Is(err, store.ErrSave) {
		t.Fatalf("err = %v, want store.ErrSave", err)
	}
}

func TestTimestampIDsCollideUnderRapidCreates(t *testing.T) {
	b := store.NewMemoryBackend()
	at := time.UnixMilli(1700000000000)
	svc := New(store.New(b, logger.Nop()), store.TimestampIDs{Now: func() time.Time { return at }}, DefaultRequirements())
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, map[string]any{"pizzaId": "p1", "quantity": 1.0})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.CreateOrder(ctx, map[string]any{"pizzaId": "p1", "quantity": 2.0})
	if err != nil {
		t.Fatal(err)
	}
	if first.ID() != second.ID() {
		t.Fatalf("ids %q and %q differ; timestamp ids should collide within a millisecond", first.ID(), second.ID())
	}

	svc = New(store.New(store.NewMemoryBackend(), logger.Nop()), store.UUIDs{}, DefaultRequirements())
	first, _ = svc.CreateOrder(ctx, map[string]any{"pizzaId": "p1", "quantity": 1.0})
	second, _ = svc.CreateOrder(ctx, map[string]any{"pizzaId": "p1", "quantity": 2.0})
	if first.ID() == second.ID() {
		t.Fatalf("uuid ids collided: %q", first.ID())
	}
}
