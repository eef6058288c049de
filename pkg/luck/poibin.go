package luck

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// directConvolutionLimit is the largest product length multiplied directly
const directConvolutionLimit = 64

// PoissonBinomial returns the probability mass function of the number of
// successes among independent trials with the given success probabilities.
// The result has len(probs)+1 entries; an empty input yields [1].
func PoissonBinomial(probs []float64) []float64 {
	if len(probs) == 0 {
		return []float64{1}
	}

	level := make([][]float64, len(probs))
	for i, p := range probs {
		level[i] = []float64{1 - p, p}
	}

	// Balanced product tree: multiply neighbours until one polynomial is left.
	for len(level) > 1 {
		next := make([][]float64, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, multiply(level[i], level[i+1]))
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}

	return normalize(level[0])
}

// multiply returns the coefficients of the product of two polynomials
func multiply(a, b []float64) []float64 {
	if len(a)+len(b)-1 <= directConvolutionLimit {
		return convolveDirect(a, b)
	}
	return convolveFFT(a, b)
}

func convolveDirect(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		if x == 0 {
			continue
		}
		for j, y := range b {
			out[i+j] += x * y
		}
	}
	return out
}

// convolveFFT multiplies via a complex transform padded to a power of two
func convolveFFT(a, b []float64) []float64 {
	size := len(a) + len(b) - 1
	n := 1
	for n < size {
		n <<= 1
	}

	fa := make([]complex128, n)
	fb := make([]complex128, n)
	for i, x := range a {
		fa[i] = complex(x, 0)
	}
	for i, y := range b {
		fb[i] = complex(y, 0)
	}

	fft := fourier.NewCmplxFFT(n)
	ca := fft.Coefficients(nil, fa)
	cb := fft.Coefficients(nil, fb)
	for i := range ca {
		ca[i] *= cb[i]
	}
	seq := fft.Sequence(nil, ca)

	out := make([]float64, size)
	scale := 1 / float64(n)
	for i := range out {
		out[i] = real(seq[i]) * scale
	}
	return clampNegative(out)
}

// clampNegative zeroes transform noise below zero; true coefficients are never negative
func clampNegative(v []float64) []float64 {
	for i, x := range v {
		if x < 0 {
			v[i] = 0
		}
	}
	return v
}

// normalize rescales v so its entries sum to one
func normalize(v []float64) []float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}
	if total <= 0 {
		return v
	}
	for i := range v {
		v[i] /= total
	}
	return v
}
