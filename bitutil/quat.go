package bitutil

import "math"

// SqrtHalf is 1/sqrt(2), the maximum magnitude any non-largest
// component of a unit quaternion can have under smallest-three
// encoding.
const SqrtHalf = 0.7071067811865476

// NormalizeQuat normalizes a [w,x,y,z] quaternion. If the input has
// zero length, it returns the identity quaternion [1,0,0,0].
func NormalizeQuat(q [4]float32) [4]float32 {
	n := math.Sqrt(float64(q[0])*float64(q[0]) + float64(q[1])*float64(q[1]) + float64(q[2])*float64(q[2]) + float64(q[3])*float64(q[3]))
	if n == 0 {
		return [4]float32{1, 0, 0, 0}
	}
	inv := float32(1 / n)
	return [4]float32{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// SmallestThreeIndex finds the index (0=w,1=x,2=y,3=z) of the
// largest-magnitude component of a normalized quaternion, and returns
// the quaternion negated if necessary so that component is
// non-negative (canonicalization required before packing).
func SmallestThreeIndex(q [4]float32) (canon [4]float32, maxIdx int) {
	maxIdx = 0
	maxAbs := absf32(q[0])
	for i := 1; i < 4; i++ {
		if a := absf32(q[i]); a > maxAbs {
			maxAbs = a
			maxIdx = i
		}
	}
	if q[maxIdx] < 0 {
		for i := range q {
			q[i] = -q[i]
		}
	}
	return q, maxIdx
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// SmallestThreeComponents returns the three non-max components of a
// canonicalized quaternion, in ascending index order excluding maxIdx.
func SmallestThreeComponents(q [4]float32, maxIdx int) (a, b, c float32) {
	var out [3]float32
	j := 0
	for i := 0; i < 4; i++ {
		if i == maxIdx {
			continue
		}
		out[j] = q[i]
		j++
	}
	return out[0], out[1], out[2]
}

// SmallestThreeReconstruct rebuilds the dropped component from the
// unit-norm constraint and reassembles [w,x,y,z].
func SmallestThreeReconstruct(a, b, c float32, maxIdx int) [4]float32 {
	sumSq := float64(a)*float64(a) + float64(b)*float64(b) + float64(c)*float64(c)
	rem := 1 - sumSq
	if rem < 0 {
		rem = 0
	}
	maxVal := float32(math.Sqrt(rem))

	var comps [3]float32 = [3]float32{a, b, c}
	var q [4]float32
	j := 0
	for i := 0; i < 4; i++ {
		if i == maxIdx {
			q[i] = maxVal
			continue
		}
		q[i] = comps[j]
		j++
	}
	return q
}
