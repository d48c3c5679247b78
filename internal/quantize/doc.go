// Package quantize rounds flattened mixture weights to fixed-precision
// decimals that sum to exactly 1, using the largest remainder method.
//
// Every weight is scaled to integer units of 10^-precision and floored. The
// units lost to flooring are handed out one at a time to the weights with the
// largest fractional remainders. Ties keep flattening order, so the output is
// reproducible.
package quantize
