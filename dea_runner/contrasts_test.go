package dea_runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumerateContrasts(t *testing.T) {
	t.Run("two conditions give exactly one contrast", func(t *testing.T) {
		got := EnumerateContrasts([]string{"a", "b"})
		assert.Equal(t, []Contrast{{A: "a", B: "b"}}, got)
		assert.Equal(t, "a-b", got[0].String())
	})

	t.Run("k conditions give k*(k-1)/2 contrasts without duplicates", func(t *testing.T) {
		for k := 2; k <= 6; k++ {
			conditions := make([]string, k)
			for i := range conditions {
				conditions[i] = string(rune('a' + i))
			}
			got := EnumerateContrasts(conditions)
			assert.Len(t, got, k*(k-1)/2)

			seen := make(map[string]bool)
			for _, c := range got {
				assert.NotEqual(t, c.A, c.B, "no self-pairs")
				assert.False(t, seen[c.String()], "duplicate contrast %s", c)
				seen[c.String()] = true
				// Unordered: the reverse must not appear either.
				assert.False(t, seen[c.B+"-"+c.A])
			}
		}
	})

	t.Run("contrasts follow first-appearance order", func(t *testing.T) {
		got := EnumerateContrasts([]string{"cortex", "thalamus", "striatum"})
		want := []string{"cortex-thalamus", "cortex-striatum", "thalamus-striatum"}
		for i, c := range got {
			assert.Equal(t, want[i], c.String())
		}
	})

	t.Run("single condition gives no contrasts", func(t *testing.T) {
		assert.Empty(t, EnumerateContrasts([]string{"only"}))
		assert.Empty(t, EnumerateContrasts(nil))
	})
}
