package generator

// Interleave visits each source sequence in turn, skipping exhausted
// sources, until all are exhausted. Downstream fan-out then draws
// roughly evenly from each source rather than exhausting one before
// touching the next. Ordering is organizational only; the executor
// processes tasks independently.
func Interleave[T any](seqs ...[]T) []T {
	total := 0
	for _, s := range seqs {
		total += len(s)
	}
	out := make([]T, 0, total)
	for i := 0; len(out) < total; i++ {
		for _, s := range seqs {
			if i < len(s) {
				out = append(out, s[i])
			}
		}
	}
	return out
}
