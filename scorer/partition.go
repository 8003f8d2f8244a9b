package scorer

// Chunk returns the w-th of n contiguous ranges over total items, sized
// as evenly as possible. Used for the static fork-join partitioning of
// every parallel axis.
func Chunk(total, n, w int) (lo, hi int) {
	size := total / n
	extra := total % n
	lo = w*size + min(w, extra)
	hi = lo + size
	if w < extra {
		hi++
	}
	return lo, hi
}
