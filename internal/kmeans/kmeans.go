// Package kmeans implements 1-D k-means quantization used by the SOG
// codec to build its scales and SH0 codebooks.
package kmeans

// Centers is the fixed codebook size used by every SOG codebook.
const Centers = 256

// Iterations is the fixed refinement pass count.
const Iterations = 10

// Quantize clusters vals into Centers 1-D centers using Lloyd's
// algorithm, linearly initialized between the overall min and max, run
// for a fixed number of iterations. It returns the codebook and, for
// every input value, the index of its nearest center.
func Quantize(vals []float32) (codebook []float32, indices []int) {
	codebook = make([]float32, Centers)
	indices = make([]int, len(vals))
	if len(vals) == 0 {
		return codebook, indices
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	for k := 0; k < Centers; k++ {
		if Centers == 1 {
			codebook[k] = lo
			continue
		}
		t := float32(k) / float32(Centers-1)
		codebook[k] = lo + t*(hi-lo)
	}

	for iter := 0; iter < Iterations; iter++ {
		sum := make([]float64, Centers)
		count := make([]int, Centers)
		for i, v := range vals {
			idx := nearest(codebook, v)
			indices[i] = idx
			sum[idx] += float64(v)
			count[idx]++
		}
		for k := 0; k < Centers; k++ {
			if count[k] > 0 {
				codebook[k] = float32(sum[k] / float64(count[k]))
			}
		}
	}

	for i, v := range vals {
		indices[i] = nearest(codebook, v)
	}
	return codebook, indices
}

func nearest(codebook []float32, v float32) int {
	best := 0
	bestDist := dist(codebook[0], v)
	for k := 1; k < len(codebook); k++ {
		d := dist(codebook[k], v)
		if d < bestDist {
			bestDist = d
			best = k
		}
	}
	return best
}

func dist(a, b float32) float32 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}
