// Package cart holds the single active shopping cart of a user: its state
// machine, its single-shop invariant and its persistence.
package cart

import (
	"errors"

	"localmart/internal/structs"
	"localmart/pkg/utils"
)

// Confirmer answers the cross-shop question: may the existing cart be
// discarded to add an item from another shop?
type Confirmer func(message string) bool

// Approve and Deny are canned confirmers for callers that already know the
// answer (the HTTP replace flag, tests).
var (
	Approve Confirmer = func(string) bool { return true }
	Deny    Confirmer = func(string) bool { return false }
)

const crossShopMessage = "cart holds items from another shop; adding this item clears it"

// Cart is the in-memory cart aggregate. Mutations run synchronously to
// completion; totals are derived on read, never stored.
type Cart struct {
	lines  []structs.CartLine
	shopID string
}

func Empty() *Cart {
	return &Cart{}
}

var errShopBindingBroken = errors.New("cart document lines disagree with its shop binding")

// FromDocument rebuilds a cart from its persisted form. Every line must
// belong to the document's shop; a snapshot that breaks that binding is
// corrupt and comes back as an error so callers can discard it.
func FromDocument(doc structs.CartDocument) (*Cart, error) {
	if len(doc.Lines) == 0 {
		return Empty(), nil
	}
	if doc.ShopID == "" {
		return nil, errShopBindingBroken
	}
	for _, line := range doc.Lines {
		if line.ShopID != doc.ShopID {
			return nil, errShopBindingBroken
		}
	}

	c := &Cart{shopID: doc.ShopID}
	c.lines = append(c.lines, doc.Lines...)
	return c, nil
}

// Add puts one unit of product into the cart. Adding from a different shop
// than the current one asks confirm first: withheld confirmation aborts with
// no state change and Add reports false. An existing line for the same
// product gains quantity instead of a duplicate line.
func (c *Cart) Add(product structs.Product, shop structs.Shop, confirm Confirmer) bool {
	if c.shopID != "" && c.shopID != shop.ID {
		if confirm == nil || !confirm(crossShopMessage) {
			return false
		}
		c.lines = nil
	}

	c.shopID = shop.ID

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity++
			return true
		}
	}

	c.lines = append(c.lines, structs.CartLine{
		ID:        utils.GenKSUID(),
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		ImgUrl:    product.ImgUrl,
		Quantity:  1,
		ShopID:    shop.ID,
		ShopName:  shop.Name,
	})
	return true
}

// Remove drops the line for productID if present. Removing the last line
// releases the shop binding.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	if len(c.lines) == 0 {
		c.shopID = ""
	}
}

// SetQuantity sets the line's quantity; a non-positive quantity removes the
// line. Unknown products are a no-op.
func (c *Cart) SetQuantity(productID string, quantity int64) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
	c.shopID = ""
}

func (c *Cart) ShopID() string {
	return c.shopID
}

func (c *Cart) Lines() []structs.CartLine {
	out := make([]structs.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) TotalItems() (n int64) {
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) TotalAmount() (sum int64) {
	for _, l := range c.lines {
		sum += l.UnitPrice * l.Quantity
	}
	return sum
}

// Document is the persisted form; round-tripping through FromDocument
// yields an identical cart.
func (c *Cart) Document() structs.CartDocument {
	return structs.CartDocument{
		Lines:  c.Lines(),
		ShopID: c.shopID,
	}
}

func (c *Cart) Info() structs.CartInfo {
	info := structs.CartInfo{
		Lines:       c.Lines(),
		ShopID:      c.shopID,
		TotalItems:  c.TotalItems(),
		TotalAmount: c.TotalAmount(),
	}
	if len(c.lines) > 0 {
		info.ShopName = c.lines[0].ShopName
	}
	return info
}
