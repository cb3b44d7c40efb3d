// bank.go - SoA reorganization of a 2-D array of biquad filters

package biquad

// Bank2D stores the coefficients and history of Banks*Depth biquad filters
// in structure-of-arrays layout: nine Depth-major planes (five coefficient
// planes, four state planes), each row holding one contiguous Banks-wide
// slice. Iterating a single depth step touches one contiguous slice of each
// plane, which is SIMD-friendly layout even though this module's Process
// method is a plain scalar loop — see DESIGN.md for why the wasm32 SIMD
// intrinsics in the original engine have no portable Go equivalent here.
//
// The serial per-filter recurrence runs along Depth (stage N depends on
// stage N-1's output for the same bank); Banks is the parallel axis.
type Bank2D struct {
	banks int
	depth int

	b0 [][]float32
	b1 [][]float32
	b2 [][]float32
	a1 [][]float32
	a2 [][]float32

	x0 [][]float32
	x1 [][]float32
	y0 [][]float32
	y1 [][]float32
}

// NewBank2D builds a Bank2D from a Depth-major, Banks-wide grid of already
// coefficient-initialized filters: filters[depth][bank].
func NewBank2D(filters [][]*Filter) *Bank2D {
	depth := len(filters)
	if depth == 0 {
		panic("biquad: Bank2D requires at least one depth row")
	}
	banks := len(filters[0])
	if banks == 0 {
		panic("biquad: Bank2D requires at least one bank")
	}

	bk := &Bank2D{
		banks: banks,
		depth: depth,
		b0:    make([][]float32, depth),
		b1:    make([][]float32, depth),
		b2:    make([][]float32, depth),
		a1:    make([][]float32, depth),
		a2:    make([][]float32, depth),
		x0:    make([][]float32, depth),
		x1:    make([][]float32, depth),
		y0:    make([][]float32, depth),
		y1:    make([][]float32, depth),
	}

	for d := 0; d < depth; d++ {
		if len(filters[d]) != banks {
			panic("biquad: Bank2D requires every depth row to have the same bank count")
		}
		bk.b0[d] = make([]float32, banks)
		bk.b1[d] = make([]float32, banks)
		bk.b2[d] = make([]float32, banks)
		bk.a1[d] = make([]float32, banks)
		bk.a2[d] = make([]float32, banks)
		bk.x0[d] = make([]float32, banks)
		bk.x1[d] = make([]float32, banks)
		bk.y0[d] = make([]float32, banks)
		bk.y1[d] = make([]float32, banks)

		for b := 0; b < banks; b++ {
			filt := filters[d][b]
			bk.b0[d][b] = filt.B0
			bk.b1[d][b] = filt.B1
			bk.b2[d][b] = filt.B2
			bk.a1[d][b] = filt.A1
			bk.a2[d][b] = filt.A2
			bk.x0[d][b] = filt.x[0]
			bk.x1[d][b] = filt.x[1]
			bk.y0[d][b] = filt.y[0]
			bk.y1[d][b] = filt.y[1]
		}
	}

	return bk
}

// Banks reports the number of parallel filter lanes.
func (bk *Bank2D) Banks() int { return bk.banks }

// Depth reports the number of cascaded stages per lane.
func (bk *Bank2D) Depth() int { return bk.depth }

// Process runs one cascade stage (depth) across every bank, reading and
// writing outputs in place — outputs must hold `Banks()` values on entry
// (the depth==0 caller seeds it with the input sample broadcast across
// every lane) and holds that depth's output on return.
func (bk *Bank2D) Process(outputs []float32, depth int) {
	b0, b1, b2 := bk.b0[depth], bk.b1[depth], bk.b2[depth]
	a1, a2 := bk.a1[depth], bk.a2[depth]
	x0, x1 := bk.x0[depth], bk.x1[depth]
	y0, y1 := bk.y0[depth], bk.y1[depth]

	for i, in := range outputs {
		out := b0[i]*in + b1[i]*x0[i] + b2[i]*x1[i] - a1[i]*y0[i] - a2[i]*y1[i]
		x1[i] = x0[i]
		x0[i] = in
		y1[i] = y0[i]
		y0[i] = out
		outputs[i] = out
	}
}

// ProcessAll runs every depth in sequence for a single input sample
// broadcast across all banks, returning the per-bank outputs of the final
// stage. This is the non-SIMD equivalent of the original engine's
// `apply(banks, outputs, inputs)` wasm32 entry point.
func (bk *Bank2D) ProcessAll(input float32) []float32 {
	outputs := make([]float32, bk.banks)
	for i := range outputs {
		outputs[i] = input
	}
	for d := 0; d < bk.depth; d++ {
		bk.Process(outputs, d)
	}
	return outputs
}
