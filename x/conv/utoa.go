package conv

// Utoa writes the base-10 form of n into the tail of buf and returns the
// used slice. buf should be length >= 20 for uint64. No allocations.
func Utoa(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
		return buf[i:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + (n % 10))
		n /= 10
	}
	return buf[i:]
}

// Ustr is Utoa into a fresh string, for cold paths (errors, pin names).
func Ustr(n uint64) string {
	var b [20]byte
	return string(Utoa(b[:], n))
}
