package booking

import (
	"github.com/shopspring/decimal"

	"golden-fork/internal/models"
)

// PreOrder collects dishes ordered ahead with a table booking
type PreOrder struct {
	items []models.LineItem
}

func NewPreOrder(items []models.LineItem) *PreOrder {
	p := &PreOrder{}
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		it.Quantity = it.EffectiveQuantity()
		p.items = append(p.items, it)
	}
	return p
}

// Add bumps the dish or appends it with quantity 1
func (p *PreOrder) Add(prod models.Product) {
	for i := range p.items {
		if p.items[i].ID == prod.ID {
			p.items[i].Quantity++
			return
		}
	}
	p.items = append(p.items, models.LineItem{
		ID:        prod.ID,
		Name:      prod.Name,
		UnitPrice: prod.Price,
		Quantity:  1,
		Image:     prod.Image,
	})
}

// Remove takes one unit off, dropping the dish when it reaches zero
func (p *PreOrder) Remove(id string) {
	for i := range p.items {
		if p.items[i].ID != id {
			continue
		}
		if p.items[i].Quantity > 1 {
			p.items[i].Quantity--
			return
		}
		p.items = append(p.items[:i], p.items[i+1:]...)
		return
	}
}

func (p *PreOrder) Quantity(id string) int {
	for _, it := range p.items {
		if it.ID == id {
			return it.Quantity
		}
	}
	return 0
}

func (p *PreOrder) Items() []models.LineItem {
	out := make([]models.LineItem, len(p.items))
	copy(out, p.items)
	return out
}

func (p *PreOrder) Count() int {
	n := 0
	for _, it := range p.items {
		n += it.Quantity
	}
	return n
}

func (p *PreOrder) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range p.items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}
