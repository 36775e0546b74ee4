package pool

// Pair is a scratch name/value entry used while building an ordered
// Object during JSON parsing, to avoid one small allocation per member on
// large schema documents.
type Pair struct {
	Name  string
	Value any
}

var pairSlicePool = SlicePool[Pair]{
	Pool: New[[]Pair](allocPairSlice, freePairSlice),
}

func allocPairSlice() []Pair {
	return make([]Pair, 0, 64)
}

func freePairSlice(slice []Pair) []Pair {
	clear(slice)
	return slice[:0]
}

// PairSlice returns the package-wide pool of Pair scratch slices.
func PairSlice() *SlicePool[Pair] {
	return &pairSlicePool
}
