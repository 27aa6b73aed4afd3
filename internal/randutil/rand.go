// Package randutil centralises how seeded random streams are derived so that
// simulation workers and tests get reproducible, independent sequences.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream returns the seed for the n-th independent stream derived from seed.
// Simulator workers use one stream each so no two share a sequence.
func Stream(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n+1)*goldenRatio64))
}

// Reader adapts a *rand.Rand to io.Reader for libraries that draw bytes.
type Reader struct {
	R *rand.Rand
}

// Read fills p from the underlying generator and never fails.
func (r Reader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.R.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
