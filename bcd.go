package segclock

// Exclusive upper bounds of the two fields of a time, as BCD pairs (tens,
// units).
var (
	MinutesLimit = [2]uint8{6, 0}
	HoursLimit   = [2]uint8{2, 4}
)

// IncrementBCD adds one to the BCD pair n (tens, units). Reaching limit wraps
// n back to 00.
func IncrementBCD(n *[2]uint8, limit [2]uint8) {
	n[1]++
	if n[1] > 9 {
		n[1] = 0
		n[0]++
	}
	if !lessBCD(*n, limit) {
		n[0], n[1] = 0, 0
	}
}

// DecrementBCD subtracts one from the BCD pair n (tens, units). Going below 00
// wraps n to the value just under limit.
func DecrementBCD(n *[2]uint8, limit [2]uint8) {
	switch {
	case !lessBCD(*n, limit):
		*n = lastBCD(limit)
	case n[1] > 0:
		n[1]--
	case n[0] > 0:
		n[0]--
		n[1] = 9
	default:
		*n = lastBCD(limit)
	}
}

func lessBCD(a, b [2]uint8) bool {
	return a[0] < b[0] || a[0] == b[0] && a[1] < b[1]
}

// lastBCD returns limit minus one.
func lastBCD(limit [2]uint8) [2]uint8 {
	switch {
	case limit[1] > 0:
		return [2]uint8{limit[0], limit[1] - 1}
	case limit[0] > 0:
		return [2]uint8{limit[0] - 1, 9}
	}
	return [2]uint8{}
}
