package filter

// Distance smooths a noisy distance channel with a fixed window mean.
// The window starts filled with the seed value so early estimates lean
// towards a known-safe reading instead of the first sample.
type Distance struct {
	values   []int
	index    int
	size     int
	seed     int
	Estimate int
}

func (f *Distance) Init(size int, seed int) {
	if size < 1 {
		size = 1
	}
	f.size = size
	f.seed = seed
	f.values = make([]int, size)
	f.index = 0
	f.Reset()
}

func (f *Distance) Reset() {
	for i := range f.values {
		f.values[i] = f.seed
	}
	f.Estimate = f.seed
}

func (f *Distance) Filter(val int) int {
	f.index += 1
	f.index %= f.size
	f.values[f.index] = val
	total := 0
	for _, v := range f.values {
		total += v
	}
	f.Estimate = total / f.size
	return f.Estimate
}

func (f *Distance) Raw() int {
	return f.values[f.index]
}
