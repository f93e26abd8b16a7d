package dea_runner

// Contrast is an unordered pair of condition labels, serialized "A-B".
type Contrast struct {
	A, B string
}

func (c Contrast) String() string { return c.A + "-" + c.B }

// EnumerateContrasts builds every 2-combination of distinct condition
// labels, each exactly once, in the order the labels first appear in
// the sample metadata. k labels yield k*(k-1)/2 contrasts; fewer than
// two labels yield none.
func EnumerateContrasts(conditions []string) []Contrast {
	var contrasts []Contrast
	for i := 0; i < len(conditions); i++ {
		for j := i + 1; j < len(conditions); j++ {
			contrasts = append(contrasts, Contrast{A: conditions[i], B: conditions[j]})
		}
	}
	return contrasts
}
