package services

import (
	"context"
	"errors"

	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/store"
)

// AddItem increments the quantity of productID, appending it with quantity 1
// when absent. The input slice is not modified.
func AddItem(items []models.CartItem, productID uint) []models.CartItem {
	out := cloneItems(items)
	for i := range out {
		if out[i].Product == productID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, models.CartItem{Product: productID, Quantity: 1})
}

// SetQuantity sets the quantity of productID in place; zero removes it.
func SetQuantity(items []models.CartItem, productID uint, quantity int) ([]models.CartItem, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	for i := range items {
		if items[i].Product != productID {
			continue
		}
		if quantity == 0 {
			return RemoveItems(items, productID), nil
		}
		out := cloneItems(items)
		out[i].Quantity = quantity
		return out, nil
	}
	return nil, ErrCartItemNotFound
}

// RemoveItems drops productID from the cart, or empties it when productID is 0.
func RemoveItems(items []models.CartItem, productID uint) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	if productID == 0 {
		return out
	}
	for _, item := range items {
		if item.Product != productID {
			out = append(out, item)
		}
	}
	return out
}

func cloneItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items), len(items)+1)
	copy(out, items)
	return out
}

type CartService struct {
	users    UserStore
	products ProductStore
}

func NewCartService(users UserStore, products ProductStore) *CartService {
	return &CartService{users: users, products: products}
}

// Items joins the user's cart with current product data, in cart order.
// Lines whose product no longer exists are left out.
func (s *CartService) Items(ctx context.Context, user *models.User) ([]models.CartProduct, error) {
	items := user.CartItems.Items
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Product)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]models.CartProduct, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.Product]
		if !ok {
			continue
		}
		lines = append(lines, models.CartProduct{Product: product, Quantity: item.Quantity})
	}
	return lines, nil
}

func (s *CartService) Add(ctx context.Context, user *models.User, productID uint) ([]models.CartItem, error) {
	if productID == 0 {
		return nil, ErrInvalidProductID
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.save(ctx, user, AddItem(user.CartItems.Items, productID))
}

func (s *CartService) RemoveAll(ctx context.Context, user *models.User, productID uint) ([]models.CartItem, error) {
	return s.save(ctx, user, RemoveItems(user.CartItems.Items, productID))
}

func (s *CartService) UpdateQuantity(ctx context.Context, user *models.User, productID uint, quantity int) ([]models.CartItem, error) {
	items, err := SetQuantity(user.CartItems.Items, productID, quantity)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, user, items)
}

func (s *CartService) Clear(ctx context.Context, user *models.User) error {
	_, err := s.save(ctx, user, nil)
	return err
}

func (s *CartService) save(ctx context.Context, user *models.User, items []models.CartItem) ([]models.CartItem, error) {
	if items == nil {
		items = []models.CartItem{}
	}
	if err := s.users.SaveCart(ctx, user.ID, items); err != nil {
		return nil, err
	}
	user.CartItems = models.NewCart(items)
	return items, nil
}
