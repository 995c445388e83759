package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CartItem is one line of the cart embedded on a user row.
type CartItem struct {
	Product  uint `json:"product"`
	Quantity int  `json:"quantity"`
}

// Cart is the embedded cart column. Decoding validates every stored entry:
// entries that are not {product, quantity} objects are dropped, duplicate
// products are merged, and NeedsRewrite reports whether the stored value
// differed from the cleaned one.
type Cart struct {
	Items []CartItem

	repaired int
}

func NewCart(items []CartItem) Cart {
	return Cart{Items: items}
}

// NeedsRewrite is true when decoding discarded or merged stored entries.
func (c Cart) NeedsRewrite() bool {
	return c.repaired > 0
}

func (Cart) GormDataType() string {
	return "json"
}

func (c Cart) Value() (driver.Value, error) {
	items := c.Items
	if items == nil {
		items = []CartItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Cart) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*c = Cart{Items: []CartItem{}}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cart: unsupported column type %T", value)
	}

	decoded, err := DecodeCart(raw)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

func (c Cart) MarshalJSON() ([]byte, error) {
	if c.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Items)
}

func (c *Cart) UnmarshalJSON(b []byte) error {
	decoded, err := DecodeCart(b)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

type storedCartEntry struct {
	Product  json.RawMessage `json:"product"`
	Quantity *int            `json:"quantity"`
}

// DecodeCart parses a stored cart document. Invalid JSON is an error; a
// valid document that is not an array migrates to an empty cart.
func DecodeCart(raw []byte) (Cart, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Cart{Items: []CartItem{}}, nil
	}
	if !json.Valid(raw) {
		return Cart{}, fmt.Errorf("cart: stored value is not valid JSON")
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return Cart{Items: []CartItem{}, repaired: 1}, nil
	}

	cart := Cart{Items: make([]CartItem, 0, len(entries))}
	index := make(map[uint]int, len(entries))
	for _, entry := range entries {
		item, ok := decodeCartEntry(entry)
		if !ok {
			cart.repaired++
			continue
		}
		if pos, seen := index[item.Product]; seen {
			cart.Items[pos].Quantity += item.Quantity
			cart.repaired++
			continue
		}
		index[item.Product] = len(cart.Items)
		cart.Items = append(cart.Items, item)
	}
	return cart, nil
}

func decodeCartEntry(entry json.RawMessage) (CartItem, bool) {
	entry = bytes.TrimSpace(entry)
	if len(entry) == 0 || entry[0] != '{' {
		return CartItem{}, false
	}

	var stored storedCartEntry
	if err := json.Unmarshal(entry, &stored); err != nil {
		return CartItem{}, false
	}

	var productID uint
	if len(stored.Product) == 0 || json.Unmarshal(stored.Product, &productID) != nil || productID == 0 {
		return CartItem{}, false
	}

	quantity := 1
	if stored.Quantity != nil {
		quantity = *stored.Quantity
	}
	if quantity < 1 {
		return CartItem{}, false
	}

	return CartItem{Product: productID, Quantity: quantity}, true
}
