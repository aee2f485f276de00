// Package stock holds the low-stock rules shared by the item-edit and sale-recording flows.
package stock

// Level is a stock quantity together with the low-stock threshold configured for the item.
type Level struct {
	Quantity  int
	Threshold int
}

// IsLow reports whether the level is at or below its threshold.
func IsLow(l Level) bool {
	return l.Quantity <= l.Threshold
}

// CrossedIntoLowStock reports whether a single operation moved an item from above its
// threshold to at or below it. Items that were already low, quantities that grow and
// quantities that stay above the threshold never count as a crossing.
func CrossedIntoLowStock(quantityBefore, quantityAfter, threshold int) bool {
	return quantityBefore > threshold && quantityAfter <= threshold
}

// CrossedIntoLow is CrossedIntoLowStock for an edit that may also change the threshold:
// "before" is judged against the old threshold and "after" against the new one.
func CrossedIntoLow(before, after Level) bool {
	return !IsLow(before) && IsLow(after)
}

// AfterSale is the quantity left once sold units leave the shelf.
func AfterSale(quantityBefore, sold int) int {
	return quantityBefore - sold
}
