package gridsearch

// odometer enumerates every combination of digits[i] in [0, radices[i]). digits[0] turns fastest.
type odometer struct {
	radices []int
	digits  []int
}

func newOdometer(radices []int) *odometer {
	return &odometer{
		radices: radices,
		digits:  make([]int, len(radices)),
	}
}

// size is the number of combinations, 0 if any radix is 0.
func (o *odometer) size() int {
	n := 1
	for _, r := range o.radices {
		n *= r
	}
	return n
}

// next advances to the following combination and reports false after the last one.
func (o *odometer) next() bool {
	for i := range o.digits {
		o.digits[i]++
		if o.digits[i] < o.radices[i] {
			return true
		}
		o.digits[i] = 0
	}
	return false
}
