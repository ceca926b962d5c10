package domain

// Summary aggregates the whole order table.
type Summary struct {
	TotalOrders   int
	TotalQuantity int
	MostPopular   string
}

// NoPopularOrder is reported as MostPopular when the table is empty.
const NoPopularOrder = "None"

// Summarize counts orders and quantities and picks the most frequent
// description. Ties go to the description that first appears earliest in
// table order.
func Summarize(orders []Order) Summary {
	s := Summary{MostPopular: NoPopularOrder}
	counts := make(map[string]int, len(orders))
	for _, o := range orders {
		s.TotalOrders++
		s.TotalQuantity += o.Quantity
		counts[o.Description]++
	}
	best := 0
	for _, o := range orders {
		if counts[o.Description] > best {
			best = counts[o.Description]
			s.MostPopular = o.Description
		}
	}
	return s
}
