package evidence

// Reconcile combines multiple Items that bear on the same fact into a single
// effective Kind. The classifier itself only ever produces Positive,
// Negative, or Unknown (spec.md §3 invariant); Conflicting is assigned here,
// one layer up, once the answer engine has gathered every item about a fact.
//
// Rules, applied in order:
//  1. No items: Unknown.
//  2. All items agree on Positive or all agree on Negative: that kind.
//  3. At least one Positive and at least one Negative: Conflicting.
//  4. Otherwise (a mix of Unknown with at most one of Positive/Negative):
//     the non-Unknown kind wins, since an Unknown item contributes nothing
//     either way; if every item is Unknown, the result is Unknown.
func Reconcile(items []Item) Kind {
	if len(items) == 0 {
		return Unknown
	}

	sawPositive, sawNegative := false, false
	for _, item := range items {
		switch item.Kind {
		case Positive:
			sawPositive = true
		case Negative:
			sawNegative = true
		case Conflicting:
			// An already-conflicting item poisons the whole group.
			return Conflicting
		}
	}

	switch {
	case sawPositive && sawNegative:
		return Conflicting
	case sawPositive:
		return Positive
	case sawNegative:
		return Negative
	default:
		return Unknown
	}
}
