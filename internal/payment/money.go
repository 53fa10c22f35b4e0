package payment

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit amount (UAH) into integer minor units
// (kopiykas), rounding half up. Every amount crossing the wire goes
// through here.
func ToMinorUnits(major decimal.Decimal) int64 {
	return major.Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits converts an integer minor-unit amount back into major units.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(hundred)
}

// OrderTotal computes the chargeable total of a cart in major units: the
// per-line final cost override when set, otherwise unit price times
// quantity, plus the door-delivery surcharge and the explicit delivery
// price. The hold amount and the finalize amount both come from here.
func OrderTotal(cart []CartItem, toDoor bool, deliveryPrice decimal.Decimal) decimal.Decimal {
	total := decimal.Zero

	for _, item := range cart {
		if item.FinalCost != nil {
			total = total.Add(*item.FinalCost)
		} else {
			total = total.Add(item.ProductPrice.Mul(decimal.NewFromFloat(item.Quantity)))
		}
	}

	if toDoor {
		total = total.Add(decimal.NewFromInt(doorDeliverySurcharge))
	}

	return total.Add(deliveryPrice)
}
