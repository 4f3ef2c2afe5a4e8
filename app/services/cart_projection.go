package services

import (
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/utils/calc"
	"github.com/Rakhulsr/go-motoshop/app/utils/format"
	"github.com/shopspring/decimal"
)

type CartProductView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	Price     float64  `json:"price"`
	SalePrice *float64 `json:"salePrice"`
	InStock   bool     `json:"inStock"`
	Image     string   `json:"image"`
}

type CartItemView struct {
	ID             string                 `json:"id"`
	ProductID      string                 `json:"productId"`
	Quantity       int                    `json:"quantity"`
	Price          float64                `json:"price"`
	UnitPrice      float64                `json:"unitPrice"`
	Total          float64                `json:"total"`
	FormattedTotal string                 `json:"formattedTotal"`
	Options        models.CartItemOptions `json:"options,omitempty"`
	Available      bool                   `json:"available"`
	Product        *CartProductView       `json:"product"`
}

type CartView struct {
	ID             string         `json:"id,omitempty"`
	Items          []CartItemView `json:"items"`
	Total          float64        `json:"total"`
	FormattedTotal string         `json:"formattedTotal"`
	ItemCount      int            `json:"itemCount"`
}

func EmptyCartView() *CartView {
	return &CartView{
		Items:          []CartItemView{},
		Total:          0,
		FormattedTotal: format.FormatVND(decimal.Zero),
	}
}

// ProjectCart prices every line from the live product. A line whose product
// is gone falls back to its snapshot price and is flagged unavailable.
func ProjectCart(cart *models.Cart) *CartView {
	if cart == nil {
		return EmptyCartView()
	}

	view := &CartView{
		ID:    cart.ID,
		Items: make([]CartItemView, 0, len(cart.CartItems)),
	}

	total := decimal.Zero
	for _, item := range cart.CartItems {
		unit := item.Price
		available := false
		var product *CartProductView

		if item.Product != nil {
			unit = item.Product.EffectivePrice()
			available = item.Product.IsActive && item.Product.InStock
			product = projectProduct(item.Product)
		}

		lineTotal := calc.LineTotal(unit, item.Quantity)
		total = total.Add(lineTotal)
		view.ItemCount += item.Quantity

		view.Items = append(view.Items, CartItemView{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			Price:          item.Price.InexactFloat64(),
			UnitPrice:      unit.InexactFloat64(),
			Total:          lineTotal.InexactFloat64(),
			FormattedTotal: format.FormatVND(lineTotal),
			Options:        item.Options,
			Available:      available,
			Product:        product,
		})
	}

	view.Total = total.InexactFloat64()
	view.FormattedTotal = format.FormatVND(total)
	return view
}

func projectProduct(p *models.Product) *CartProductView {
	view := &CartProductView{
		ID:      p.ID,
		Name:    p.Name,
		Slug:    p.Slug,
		Price:   p.Price.InexactFloat64(),
		InStock: p.InStock,
		Image:   p.PrimaryImage(),
	}
	if p.SalePrice.Valid {
		sale := p.SalePrice.Decimal.InexactFloat64()
		view.SalePrice = &sale
	}
	return view
}
