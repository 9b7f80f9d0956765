package domain

// CartLine pairs a product snapshot with a quantity. A line serialized without
// a quantity (older persisted state) unmarshals to 0 and is treated as 1,
// matching how the stored values have always been read.
type CartLine struct {
	Product
	Quantity int `json:"quantity,omitempty"`
}

// EffectiveQuantity returns the line quantity, treating an unset (zero)
// quantity as 1.
func (l CartLine) EffectiveQuantity() int {
	if l.Quantity == 0 {
		return 1
	}
	return l.Quantity
}

// LineTotal returns price × quantity for the line. Purely derived; no storage
// interaction.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.EffectiveQuantity())
}

// Cart is an insertion-ordered sequence of cart lines, at most one line per
// product ID.
type Cart []CartLine

// AddItem merges a product into the cart and reports whether a new line was
// appended. If a line with the same product ID exists its quantity grows by
// incrementBy (the snapshot fields are left untouched); otherwise a new line
// with quantity incrementBy is appended after all existing lines. The receiver
// is not modified.
func (c Cart) AddItem(product Product, incrementBy int) (Cart, bool) {
	for i := range c {
		if c[i].ID == product.ID {
			updated := make(Cart, len(c))
			copy(updated, c)
			updated[i].Quantity = updated[i].EffectiveQuantity() + incrementBy
			return updated, false
		}
	}

	updated := make(Cart, 0, len(c)+1)
	updated = append(updated, c...)
	updated = append(updated, CartLine{Product: product, Quantity: incrementBy})
	return updated, true
}

// Subtotal returns the sum of all line totals.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, line := range c {
		total += line.LineTotal()
	}
	return total
}

// ItemCount returns the total quantity across all lines.
func (c Cart) ItemCount() int {
	var count int
	for _, line := range c {
		count += line.EffectiveQuantity()
	}
	return count
}

// WishlistEntry is a product snapshot; wishlist membership carries no quantity.
type WishlistEntry = Product

// Wishlist is an insertion-ordered set of product snapshots keyed by product
// ID.
type Wishlist []WishlistEntry

// Contains reports whether the wishlist holds an entry with the given product ID.
func (w Wishlist) Contains(productID string) bool {
	for _, e := range w {
		if e.ID == productID {
			return true
		}
	}
	return false
}

// Toggle removes the product if present and appends it otherwise, preserving
// the order of the remaining entries. Removal filters every entry with the
// product's ID. Applying Toggle twice with the same product returns a wishlist
// equal to the original. The receiver is not modified.
func (w Wishlist) Toggle(product Product) Wishlist {
	if w.Contains(product.ID) {
		updated := make(Wishlist, 0, len(w))
		for _, e := range w {
			if e.ID != product.ID {
				updated = append(updated, e)
			}
		}
		return updated
	}

	updated := make(Wishlist, 0, len(w)+1)
	updated = append(updated, w...)
	updated = append(updated, product)
	return updated
}
