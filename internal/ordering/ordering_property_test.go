package ordering

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// permutationOf shuffles declared using the generated swap indices.
func permutationOf(swaps []int) []string {
	p := append([]string(nil), declared...)
	for i, s := range swaps {
		j := i % len(p)
		k := s % len(p)
		p[j], p[k] = p[k], p[j]
	}
	return p
}

func TestInitializeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("valid permutations survive a persist round trip", prop.ForAll(
		func(swaps []int) bool {
			p := permutationOf(swaps)
			raw, err := Encode(p)
			if err != nil {
				return false
			}
			stored, ok := Decode[string](raw)
			if !ok {
				return false
			}
			got := Initialize(declared, stored)
			for i := range p {
				if got[i] != p[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.Property("malformed or foreign input yields the default order", prop.ForAll(
		func(raw string) bool {
			stored, _ := Decode[string](raw)
			got := Initialize(declared, stored)
			if IsPermutation(declared, stored) {
				return true
			}
			for i := range declared {
				if got[i] != declared[i] {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.Property("foreign id lists yield the default order", prop.ForAll(
		func(ids []string) bool {
			got := Initialize(declared, append(ids, "foreign"))
			for i := range declared {
				if got[i] != declared[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func TestMoveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	n := len(declared)

	properties.Property("valid moves keep a permutation with the moved id at to", prop.ForAll(
		func(swaps []int, from, to int) bool {
			order := permutationOf(swaps)
			moved := order[from]
			got, changed := Move(order, from, to)
			if from == to {
				return !changed
			}
			return changed && IsPermutation(declared, got) && got[to] == moved
		},
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.IntRange(0, n-1),
		gen.IntRange(0, n-1),
	))

	properties.Property("out of range moves return the input", prop.ForAll(
		func(from, to int) bool {
			if from >= 0 && from < n && to >= 0 && to < n && from != to {
				return true
			}
			got, changed := Move(declared, from, to)
			if changed || len(got) != n {
				return false
			}
			for i := range declared {
				if got[i] != declared[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(-3, n+3),
		gen.IntRange(-3, n+3),
	))

	properties.TestingRun(t)
}
