package order

import "lavka-be/internal/payment"

func toPaymentCart(items []CartItem) []payment.CartItem {
	cart := make([]payment.CartItem, 0, len(items))
	for _, i := range items {
		cart = append(cart, payment.CartItem{
			ProductID:    i.ProductID,
			ProductName:  i.ProductName,
			ProductPrice: i.ProductPrice,
			Quantity:     i.Quantity,
			FinalCost:    i.FinalCost,
			ProductImage: i.ProductImage,
			Category:     i.Category,
		})
	}
	return cart
}

// ToFinalizeOrder maps a domain order onto the slice the payment adapter
// needs to capture its hold. The order must carry a transaction.
func ToFinalizeOrder(o *Order) payment.FinalizeOrder {
	fin := payment.FinalizeOrder{
		Cart:          toPaymentCart(o.Cart),
		ToDoor:        o.ToDoor,
		DeliveryPrice: o.DeliveryPrice,
	}
	if o.Transaction != nil {
		fin.InvoiceID = o.Transaction.InvoiceID
	}
	return fin
}
