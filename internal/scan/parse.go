package scan

// MaxIntDigits bounds the integer part of a value.
const MaxIntDigits = 9

// ParseTenths parses a decimal with an optional sign and at most one
// fractional digit, returning it scaled by ten. "12.3" → 123, "-4" → -40.
// Both an integer digit and, after a '.', exactly one fractional digit are
// required, and the integer part may have at most MaxIntDigits digits.
func ParseTenths(b []byte) (int64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	var neg bool
	switch b[0] {
	case '-':
		neg = true
		b = b[1:]
	case '+':
		b = b[1:]
	}

	var v int64
	i := 0
	for ; i < len(b) && b[i] != '.'; i++ {
		d := b[i] - '0'
		if d > 9 || i == MaxIntDigits {
			return 0, false
		}
		v = v*10 + int64(d)
	}
	if i == 0 {
		return 0, false
	}
	v *= 10 // single decimal digit
	if i < len(b) {
		if len(b)-i != 2 {
			return 0, false
		}
		d := b[i+1] - '0'
		if d > 9 {
			return 0, false
		}
		v += int64(d)
	}
	if neg {
		v = -v
	}
	return v, true
}
