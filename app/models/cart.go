package models

// CartLine is one product/quantity entry pending purchase. Name and
// UnitPrice are snapshots taken when the line was added; they are not
// re-priced while the line sits in the cart.
type CartLine struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Cart is the ordered list of lines owned by a single session.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// AddOrMerge adds qty of the given product to the cart. If a line for the
// product already exists its quantity is increased; otherwise a new line
// with the supplied name/price snapshot is appended. qty is coerced to ≥1.
func (c *Cart) AddOrMerge(productID uint, name string, unitPrice float64, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += qty
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  qty,
	})
}

// SetQuantity replaces the quantity of an existing line. A quantity below 1
// removes the line. Returns false when no line matches productID.
func (c *Cart) SetQuantity(productID uint, qty int) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		if qty < 1 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = qty
		}
		return true
	}
	return false
}

// Remove deletes the line for productID. Returns false when absent.
func (c *Cart) Remove(productID uint) bool {
	return c.SetQuantity(productID, 0)
}

// Subtotal sums unit price × quantity over all lines using the add-time
// price snapshots.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, line := range c.Lines {
		sum += line.UnitPrice * float64(line.Quantity)
	}
	return sum
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.Lines) == 0 }
