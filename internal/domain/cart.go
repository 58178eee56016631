package domain

// CartItem is a product snapshot plus a quantity, keyed by product id.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart holds the current line items. There is one cart per storefront
// session; it starts empty on every run and is never persisted.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	if len(c.Items) == 0 {
		return Cart{}
	}
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

// Total calculates sum(price x quantity) converted with the currency rate,
// rounded to 2 decimals for display.
func (c Cart) Total(rate float64) float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return Round2(total * rate)
}

// ItemCount returns the total quantity across all line items.
func (c Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// FindItemIndex returns the index of the line item for the given product id,
// or -1 when the product is not in the cart.
func (c Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
