package quantize

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"datamix-tools/internal/diagnostic"
	"datamix-tools/internal/mixture"
	"datamix-tools/utils"
)

const (
	// DefaultPrecision is the number of decimal places in the output.
	DefaultPrecision = 6
	// MaxPrecision keeps the per-level balance tolerance below one unit.
	// The tolerance compounds with depth, so a deep tree that only just
	// balances at every level can still fail to apportion at high precision.
	MaxPrecision = 9
)

// Row is one quantized output entry.
type Row struct {
	// Name is the leaf the row came from.
	Name string
	// Path is the dataset path of the leaf.
	Path string
	// Units is the proportion in multiples of 10^-Precision.
	Units int64
	// Precision is the number of decimal places.
	Precision int
}

// Decimal formats the proportion with exactly Precision fraction digits.
func (r Row) Decimal() string {
	if r.Precision == 0 {
		return strconv.FormatInt(r.Units, 10)
	}

	scale := pow10(r.Precision)

	return fmt.Sprintf("%d.%0*d", r.Units/scale, r.Precision, r.Units%scale)
}

// Scale returns 10^precision, the number of units that make up 1.
func Scale(precision int) (int64, error) {
	if !utils.IsInRange(0, precision, MaxPrecision) {
		return 0, fmt.Errorf("precision %d out of range [0, %d]", precision, MaxPrecision)
	}

	return pow10(precision), nil
}

// Quantize rounds the weights to precision decimal places and resolves each
// leaf's path. Rows come back ordered by descending remainder; their Units
// always sum to 10^precision.
func Quantize(w *mixture.Weights, paths *mixture.PathTable, precision int) ([]Row, error) {
	total, err := Scale(precision)
	if err != nil {
		return nil, err
	}

	items := w.Items()
	shares := make([]float64, len(items))

	for i, item := range items {
		if _, ok := paths.Path(item.Data); !ok {
			return nil, diagnostic.Errorf(diagnostic.KindInternal, item.Name,
				"no path for data ID %q of %q", item.Data, item.Name)
		}

		shares[i] = item.Proportion
	}

	units, order, err := Apportion(shares, total)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(items))
	for _, i := range order {
		path, _ := paths.Path(items[i].Data)
		rows = append(rows, Row{
			Name:      items[i].Name,
			Path:      path,
			Units:     units[i],
			Precision: precision,
		})
	}

	return rows, nil
}

// Apportion distributes total units over shares (fractions of 1) with the
// largest remainder method. units is indexed like shares; order lists share
// indices by descending remainder, ties in input order.
//
// The shortfall left by flooring must lie in [0, len(shares)]. Anything else
// means the shares did not sum to 1 and is reported as an internal error.
func Apportion(shares []float64, total int64) (units []int64, order []int, err error) {
	units = make([]int64, len(shares))
	remainders := make([]float64, len(shares))
	order = make([]int, len(shares))

	var floorSum int64

	for i, share := range shares {
		if math.IsNaN(share) || math.IsInf(share, 0) || share < 0 {
			return nil, nil, diagnostic.Errorf(diagnostic.KindInternal, "",
				"share %d is %v", i, share)
		}

		exact := share * float64(total)
		floor := math.Floor(exact)

		units[i] = int64(floor)
		remainders[i] = exact - floor
		order[i] = i
		floorSum += units[i]
	}

	deficit := total - floorSum
	if deficit < 0 || deficit > int64(len(shares)) {
		return nil, nil, diagnostic.Errorf(diagnostic.KindInternal, "",
			"cannot apportion %d units over %d shares: floors sum to %d", total, len(shares), floorSum)
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(remainders[b], remainders[a])
	})

	for _, i := range order[:deficit] {
		units[i]++
	}

	return units, order, nil
}

// Sum adds up the units of rows.
func Sum(rows []Row) int64 {
	var sum int64
	for _, r := range rows {
		sum += r.Units
	}

	return sum
}

func pow10(n int) int64 {
	v := int64(1)
	for range n {
		v *= 10
	}

	return v
}
