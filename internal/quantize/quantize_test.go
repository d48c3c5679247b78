package quantize

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamix-tools/internal/diagnostic"
	"datamix-tools/internal/mixture"
)

func weightsOf(ws ...mixture.Weight) *mixture.Weights {
	w := mixture.NewWeights()
	for _, item := range ws {
		w.Set(item)
	}
	return w
}

func pathsOf(t *testing.T, pairs ...string) *mixture.PathTable {
	t.Helper()

	var entries []mixture.PathEntry
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, mixture.PathEntry{ID: pairs[i], Path: pairs[i+1]})
	}

	paths, err := mixture.NewPathTable(entries...)
	require.NoError(t, err)

	return paths
}

func TestQuantize_Thirds(t *testing.T) {
	w := weightsOf(
		mixture.Weight{Name: "x", Proportion: 0.3333333, Data: "a"},
		mixture.Weight{Name: "y", Proportion: 0.6666667, Data: "b"},
	)
	paths := pathsOf(t, "a", "/data/a.bin", "b", "/data/b.bin")

	rows, err := Quantize(w, paths, DefaultPrecision)
	require.NoError(t, err)

	assert.Equal(t, []Row{
		{Name: "y", Path: "/data/b.bin", Units: 666667, Precision: 6},
		{Name: "x", Path: "/data/a.bin", Units: 333333, Precision: 6},
	}, rows)
	assert.Equal(t, "0.666667", rows[0].Decimal())
	assert.Equal(t, "0.333333", rows[1].Decimal())
	assert.Equal(t, int64(1_000_000), Sum(rows))
}

func TestQuantize_IsDeterministic(t *testing.T) {
	w := weightsOf(
		mixture.Weight{Name: "a", Proportion: 1.0 / 3, Data: "a"},
		mixture.Weight{Name: "b", Proportion: 1.0 / 3, Data: "b"},
		mixture.Weight{Name: "c", Proportion: 1.0 / 3, Data: "c"},
	)
	paths := pathsOf(t, "a", "/a", "b", "/b", "c", "/c")

	first, err := Quantize(w, paths, DefaultPrecision)
	require.NoError(t, err)

	second, err := Quantize(w, paths, DefaultPrecision)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "a", first[0].Name)
	assert.Equal(t, int64(333334), first[0].Units)
	assert.Equal(t, int64(1_000_000), Sum(first))
}

func TestQuantize_RoundTripsExactInputs(t *testing.T) {
	proportions := []float64{0.1, 0.2, 0.3, 0.399997, 0.000003}

	w := mixture.NewWeights()
	var pairs []string
	for i, p := range proportions {
		id := fmt.Sprintf("d%d", i)
		w.Set(mixture.Weight{Name: id, Proportion: p, Data: id})
		pairs = append(pairs, id, "/data/"+id)
	}

	rows, err := Quantize(w, pathsOf(t, pairs...), DefaultPrecision)
	require.NoError(t, err)
	require.Len(t, rows, len(proportions))

	got := map[string]string{}
	for _, r := range rows {
		got[r.Name] = r.Decimal()
	}

	assert.Equal(t, map[string]string{
		"d0": "0.100000",
		"d1": "0.200000",
		"d2": "0.300000",
		"d3": "0.399997",
		"d4": "0.000003",
	}, got)
}

func TestQuantize_Errors(t *testing.T) {
	paths := pathsOf(t, "a", "/a")

	t.Run("unknown data ID", func(t *testing.T) {
		w := weightsOf(mixture.Weight{Name: "x", Proportion: 1, Data: "zzz"})
		_, err := Quantize(w, paths, DefaultPrecision)
		require.Error(t, err)
		assert.True(t, diagnostic.IsKind(err, diagnostic.KindInternal))
	})

	t.Run("empty weights", func(t *testing.T) {
		_, err := Quantize(mixture.NewWeights(), paths, DefaultPrecision)
		require.Error(t, err)
		assert.True(t, diagnostic.IsKind(err, diagnostic.KindInternal))
	})

	t.Run("precision out of range", func(t *testing.T) {
		w := weightsOf(mixture.Weight{Name: "x", Proportion: 1, Data: "a"})
		_, err := Quantize(w, paths, MaxPrecision+1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})
}

// Each level is within the balance tolerance, but twenty of them lose
// almost two billionths of the total.
func TestQuantize_DeepChainDriftsPastOneUnit(t *testing.T) {
	const depth = 20
	const p = 0.99999999991

	var node mixture.Node = mixture.NewLeaf("n0", p, "a")
	for i := 1; i < depth; i++ {
		node = mixture.NewGroup(fmt.Sprintf("n%d", i), p, node)
	}

	tree := mixture.Tree{node}
	paths := pathsOf(t, "a", "/data/a.bin")
	require.NoError(t, tree.Validate(paths))

	w := mixture.Flatten(tree)

	_, err := Quantize(w, paths, MaxPrecision)
	require.Error(t, err)
	assert.True(t, diagnostic.IsKind(err, diagnostic.KindInternal), "expected an internal error, got %v", err)

	rows, err := Quantize(w, paths, DefaultPrecision)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), Sum(rows))
}

func TestApportion_LargestRemainderGetsUnit(t *testing.T) {
	// Floors are 10, 10, 10 out of 31; remainders .2, .7, .1.
	shares := []float64{10.2 / 31, 10.7 / 31, 10.1 / 31}

	units, order, err := Apportion(shares, 31)
	require.NoError(t, err)

	assert.Equal(t, []int64{10, 11, 10}, units)
	assert.Equal(t, []int{1, 0, 2}, order)
}

func TestApportion_TieBreaksByInputOrder(t *testing.T) {
	shares := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}

	for range 5 {
		units, order, err := Apportion(shares, 31)
		require.NoError(t, err)

		assert.Equal(t, []int64{11, 10, 10}, units)
		assert.Equal(t, []int{0, 1, 2}, order)
	}
}

func TestApportion_Errors(t *testing.T) {
	tests := []struct {
		name   string
		shares []float64
	}{
		{"shares sum to half", []float64{0.25, 0.25}},
		{"shares sum above one", []float64{0.75, 0.75}},
		{"no shares", nil},
		{"NaN share", []float64{math.NaN(), 1}},
		{"negative share", []float64{-0.5, 1.5}},
		{"infinite share", []float64{math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Apportion(tt.shares, 1_000_000)
			require.Error(t, err)
			assert.True(t, diagnostic.IsKind(err, diagnostic.KindInternal), "got %v", err)
		})
	}
}

func TestRow_Decimal(t *testing.T) {
	tests := []struct {
		row  Row
		want string
	}{
		{Row{Units: 1, Precision: 6}, "0.000001"},
		{Row{Units: 1_000_000, Precision: 6}, "1.000000"},
		{Row{Units: 42, Precision: 3}, "0.042"},
		{Row{Units: 1, Precision: 0}, "1"},
		{Row{Units: 123456789, Precision: 9}, "0.123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.row.Decimal())
		})
	}
}

func TestScale(t *testing.T) {
	m, err := Scale(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m)

	m, err = Scale(6)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), m)

	_, err = Scale(-1)
	require.Error(t, err)

	_, err = Scale(MaxPrecision + 1)
	require.Error(t, err)
}

// randomTree builds a valid tree whose proportions are integer ratios.
func randomTree(rng *rand.Rand, depth int, next *int) mixture.Tree {
	n := 1 + rng.IntN(5)
	weights := make([]int, n)
	total := 0
	for i := range weights {
		weights[i] = 1 + rng.IntN(1000)
		total += weights[i]
	}

	tree := make(mixture.Tree, 0, n)
	for i := range weights {
		p := float64(weights[i]) / float64(total)
		*next++
		name := fmt.Sprintf("n%d", *next)

		if depth > 0 && rng.IntN(3) == 0 {
			tree = append(tree, mixture.NewGroup(name, p, randomTree(rng, depth-1, next)...))
			continue
		}

		tree = append(tree, mixture.NewLeaf(name, p, name))
	}

	return tree
}

func TestQuantize_UnitsAlwaysSumToScale(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for iter := range 200 {
		next := 0
		tree := randomTree(rng, 3, &next)

		w := mixture.Flatten(tree)
		var pairs []string
		for _, item := range w.Items() {
			pairs = append(pairs, item.Data, "/data/"+item.Data)
		}
		paths := pathsOf(t, pairs...)
		require.NoError(t, tree.Validate(paths), "iteration %d", iter)

		for _, precision := range []int{0, 2, DefaultPrecision, MaxPrecision} {
			rows, err := Quantize(w, paths, precision)
			require.NoError(t, err, "iteration %d precision %d", iter, precision)

			scale, _ := Scale(precision)
			assert.Equal(t, scale, Sum(rows), "iteration %d precision %d", iter, precision)
		}
	}
}
