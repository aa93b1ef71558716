package webp

import "sort"

// huffmanNode is a binary-tree node used only to derive per-symbol
// code lengths; codes themselves are assigned canonically afterward.
type huffmanNode struct {
	freq        int
	symbol      int // valid only for leaves
	left, right *huffmanNode
}

// buildCodeLengths derives a valid (Kraft-complete) code length per
// symbol with nonzero frequency, bounded by maxBits. It falls back to
// a balanced two-depth construction when the frequency-weighted tree
// would exceed maxBits, which is always representable for the small
// alphabets used here (<=280 symbols against a 15-bit cap, <=19
// against a 7-bit cap).
func buildCodeLengths(freqs []int, maxBits int) []int {
	lengths := make([]int, len(freqs))

	used := make([]int, 0, len(freqs))
	for sym, f := range freqs {
		if f > 0 {
			used = append(used, sym)
		}
	}
	if len(used) == 0 {
		return lengths
	}
	if len(used) == 1 {
		// A single-leaf tree needs zero bits to decode: there is
		// nothing to disambiguate. Callers that must distinguish
		// "used, zero-length" from "unused" (the top-level is_simple
		// decision) check frequency directly rather than this array.
		lengths[used[0]] = 0
		return lengths
	}

	weighted := huffmanMerge(freqs, used)
	if maxDepth(weighted) <= maxBits {
		assignDepths(weighted, 0, lengths)
		return lengths
	}

	// Fallback: balanced two-depth complete code over `used` symbols.
	n := len(used)
	k := 0
	for (1 << uint(k+1)) <= n {
		k++
	}
	m := (1 << uint(k+1)) - n // count of symbols at depth k
	sort.Ints(used)
	for i, sym := range used {
		if i < m {
			lengths[sym] = k
		} else {
			lengths[sym] = k + 1
		}
	}
	return lengths
}

// huffmanMerge runs the standard priority-queue Huffman merge and
// returns the root node.
func huffmanMerge(freqs []int, used []int) *huffmanNode {
	nodes := make([]*huffmanNode, 0, len(used))
	for _, sym := range used {
		nodes = append(nodes, &huffmanNode{freq: freqs[sym], symbol: sym})
	}
	for len(nodes) > 1 {
		sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].freq < nodes[j].freq })
		a, b := nodes[0], nodes[1]
		merged := &huffmanNode{freq: a.freq + b.freq, left: a, right: b, symbol: -1}
		nodes = append(nodes[2:], merged)
	}
	return nodes[0]
}

func maxDepth(n *huffmanNode) int {
	if n == nil || (n.left == nil && n.right == nil) {
		return 0
	}
	l, r := maxDepth(n.left), maxDepth(n.right)
	if l > r {
		return l + 1
	}
	return r + 1
}

func assignDepths(n *huffmanNode, depth int, lengths []int) {
	if n == nil {
		return
	}
	if n.left == nil && n.right == nil {
		if depth == 0 {
			depth = 1
		}
		lengths[n.symbol] = depth
		return
	}
	assignDepths(n.left, depth+1, lengths)
	assignDepths(n.right, depth+1, lengths)
}

// canonicalCodes assigns canonical Huffman codes given per-symbol
// lengths (0 meaning unused), returning codes and max length.
func canonicalCodes(lengths []int) (codes []uint32, maxLen int) {
	codes = make([]uint32, len(lengths))
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen == 0 {
		return codes, 0
	}

	blCount := make([]int, maxLen+1)
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}
	code := 0
	nextCode := make([]int, maxLen+1)
	for bits := 1; bits <= maxLen; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
	}
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		codes[sym] = reverseBits(uint32(nextCode[l]), l)
		nextCode[l]++
	}
	return codes, maxLen
}

func reverseBits(v uint32, n int) uint32 {
	var r uint32
	for i := 0; i < n; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}
