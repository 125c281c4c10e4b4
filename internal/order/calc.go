package order

import "math"

// Breakdown is the derived totals tuple for one order.
type Breakdown struct {
	Subtotal      float64
	Tax           float64
	ServiceCharge float64
	Tip           float64
	Total         float64
}

// Calculator turns line items plus rate parameters into a Breakdown. Rates
// come from configuration at construction time; nothing is read from global
// state during calculation.
type Calculator struct {
	TaxRate           float64
	ServiceChargeRate float64
}

// ItemTotal is the snapshot price of one line item: unit price times
// quantity, rounded to cents. It is computed once when the item is created
// and never revised.
func ItemTotal(unitPrice float64, quantity int) float64 {
	return round2(unitPrice * float64(quantity))
}

// Totals computes the breakdown over the given items. Each derived field is
// rounded to cents independently, matching currency display semantics. An
// empty item set yields zeros with the tip passed through.
func (c Calculator) Totals(items []OrderItem, tip float64) Breakdown {
	var sum float64
	for _, item := range items {
		sum += item.TotalPrice
	}
	return c.FromSubtotal(sum, tip)
}

// FromSubtotal computes the breakdown for an already-summed subtotal, e.g.
// one aggregated by the database.
func (c Calculator) FromSubtotal(subtotal, tip float64) Breakdown {
	subtotal = round2(subtotal)
	tax := round2(subtotal * c.TaxRate)
	service := round2(subtotal * c.ServiceChargeRate)

	return Breakdown{
		Subtotal:      subtotal,
		Tax:           tax,
		ServiceCharge: service,
		Tip:           tip,
		Total:         round2(subtotal + tax + service + tip),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
