package device

// Predicate tests a single device
type Predicate func(Device) bool

// IsKind matches devices of the given kind
func IsKind(kind Kind) Predicate {
	return func(d Device) bool {
		return d.Kind == kind
	}
}

// MinComputeMajor matches devices whose compute capability major version is at least major
func MinComputeMajor(major int) Predicate {
	return func(d Device) bool {
		return d.Compute.Major >= major
	}
}

// All matches devices accepted by every predicate. With no predicates it matches everything.
func All(preds ...Predicate) Predicate {
	return func(d Device) bool {
		for _, pred := range preds {
			if !pred(d) {
				return false
			}
		}
		return true
	}
}

// Select returns the devices accepted by pred, preserving input order
func Select(devices []Device, pred Predicate) []Device {
	selected := make([]Device, 0, len(devices))
	for _, d := range devices {
		if pred(d) {
			selected = append(selected, d)
		}
	}
	return selected
}
