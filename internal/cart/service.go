package cart

import (
	"context"
	"fmt"

	"github.com/chocovilla/chocovilla-backend/internal/promo"
	pkgerrors "github.com/chocovilla/chocovilla-backend/pkg/errors"
	"github.com/chocovilla/chocovilla-backend/pkg/whatsapp"
)

// ItemInput identifies a product being added; quantity starts at one and
// repeated adds increment it.
type ItemInput struct {
	ID       string
	Name     string
	OurPrice float64
}

// Service owns cart state transitions. Every mutation loads the snapshot,
// applies the change, and writes it back; concurrent holders of one token
// race with last-write-wins semantics.
type Service interface {
	Get(ctx context.Context, token string) View
	AddItem(ctx context.Context, token string, input ItemInput) (View, error)
	UpdateQuantity(ctx context.Context, token, id string, quantity int) (View, error)
	RemoveItem(ctx context.Context, token, id string) (View, error)
	Clear(ctx context.Context, token string) (View, error)
	ApplyPromo(ctx context.Context, token, code string) (View, error)
	RemovePromo(ctx context.Context, token string) (View, error)
	CheckoutLink(ctx context.Context, token string) (string, error)
}

type promoValidator interface {
	Validate(ctx context.Context, code string, cartSubtotal float64) promo.Result
}

type service struct {
	store    Store
	promos   promoValidator
	composer *whatsapp.Composer
}

// NewService constructs the cart service.
func NewService(store Store, promos promoValidator, composer *whatsapp.Composer) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if promos == nil {
		return nil, fmt.Errorf("promo validator required")
	}
	if composer == nil {
		return nil, fmt.Errorf("whatsapp composer required")
	}
	return &service{store: store, promos: promos, composer: composer}, nil
}

func (s *service) Get(ctx context.Context, token string) View {
	return NewView(s.store.Load(ctx, token))
}

func (s *service) AddItem(ctx context.Context, token string, input ItemInput) (View, error) {
	if input.ID == "" || input.Name == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "item id and name are required")
	}
	if input.OurPrice < 0 {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
	}

	snapshot := s.store.Load(ctx, token)
	found := false
	for i := range snapshot.Items {
		if snapshot.Items[i].ID == input.ID {
			snapshot.Items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		snapshot.Items = append(snapshot.Items, Item{
			ID:       input.ID,
			Name:     input.Name,
			OurPrice: input.OurPrice,
			Quantity: 1,
		})
	}

	return s.save(ctx, token, snapshot)
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (s *service) UpdateQuantity(ctx context.Context, token, id string, quantity int) (View, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, token, id)
	}

	snapshot := s.store.Load(ctx, token)
	for i := range snapshot.Items {
		if snapshot.Items[i].ID == id {
			snapshot.Items[i].Quantity = quantity
			return s.save(ctx, token, snapshot)
		}
	}
	return View{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
}

func (s *service) RemoveItem(ctx context.Context, token, id string) (View, error) {
	snapshot := s.store.Load(ctx, token)
	items := snapshot.Items[:0:0]
	for _, item := range snapshot.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	snapshot.Items = items
	return s.save(ctx, token, snapshot)
}

// Clear empties the cart and drops any applied promo with it.
func (s *service) Clear(ctx context.Context, token string) (View, error) {
	if err := s.store.Delete(ctx, token); err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return NewView(Snapshot{}), nil
}

// ApplyPromo validates the code against the current subtotal server-side and
// binds the result to the cart. Business rejections carry the user-facing
// message from the validator.
func (s *service) ApplyPromo(ctx context.Context, token, code string) (View, error) {
	if code == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "Please enter a promo code")
	}

	snapshot := s.store.Load(ctx, token)
	result := s.promos.Validate(ctx, code, snapshot.Subtotal())
	if !result.Valid {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, result.Error)
	}

	snapshot.AppliedPromo = &AppliedPromo{
		Code:            result.PromoCode.Code,
		DiscountPercent: result.PromoCode.DiscountPercent,
		Discount:        result.Discount,
		Description:     result.PromoCode.Description,
	}
	return s.save(ctx, token, snapshot)
}

func (s *service) RemovePromo(ctx context.Context, token string) (View, error) {
	snapshot := s.store.Load(ctx, token)
	snapshot.AppliedPromo = nil
	return s.save(ctx, token, snapshot)
}

// CheckoutLink renders the WhatsApp handoff for the current cart.
func (s *service) CheckoutLink(ctx context.Context, token string) (string, error) {
	snapshot := s.store.Load(ctx, token)
	if len(snapshot.Items) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	view := NewView(snapshot)
	items := make([]whatsapp.OrderItem, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, whatsapp.OrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Amount:   item.OurPrice * float64(item.Quantity),
		})
	}

	var orderPromo *whatsapp.OrderPromo
	if view.AppliedPromo != nil {
		orderPromo = &whatsapp.OrderPromo{
			Code:            view.AppliedPromo.Code,
			DiscountPercent: view.AppliedPromo.DiscountPercent,
			Discount:        view.AppliedPromo.Discount,
		}
	}

	return s.composer.OrderLink(items, view.Subtotal, orderPromo, view.Total), nil
}

func (s *service) save(ctx context.Context, token string, snapshot Snapshot) (View, error) {
	if err := s.store.Save(ctx, token, snapshot); err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return NewView(snapshot), nil
}
