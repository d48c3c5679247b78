package diagnostic

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a failure.
type Kind int

const (
	_ Kind = iota // zero value is reserved for "not a diagnostic error"

	// KindLoad is malformed input or an unresolved template variable.
	KindLoad
	// KindStructural is a wrong value type for a required key, or a
	// record expected where a scalar or list appears.
	KindStructural
	// KindReference is an unknown data ID or a data ID referenced twice.
	KindReference
	// KindDuplicate is a repeated mixture name or a repeated path.
	KindDuplicate
	// KindBalance is a level whose proportions do not sum to 1.
	KindBalance
	// KindInternal signals a broken invariant in the compiler itself.
	KindInternal
)
