package gaze

// ring is a fixed-capacity sample buffer. Pushing onto a full ring
// silently evicts the oldest sample; the buffer never grows past its
// capacity.
type ring[T any] struct {
	buf   []T
	head  int // Next write position
	count int
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{buf: make([]T, capacity)}
}

// Push appends a sample, evicting the oldest if full.
func (r *ring[T]) Push(v T) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Len returns the number of stored samples.
func (r *ring[T]) Len() int {
	return r.count
}

// Cap returns the fixed capacity.
func (r *ring[T]) Cap() int {
	return len(r.buf)
}

// Last returns up to n most recent samples, oldest first.
func (r *ring[T]) Last(n int) []T {
	if n > r.count {
		n = r.count
	}
	out := make([]T, 0, n)
	start := r.head - n
	if start < 0 {
		start += len(r.buf)
	}
	for i := 0; i < n; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

// Values returns all stored samples, oldest first.
func (r *ring[T]) Values() []T {
	return r.Last(r.count)
}

// mean returns the arithmetic mean of xs, or 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
