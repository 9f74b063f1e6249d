package wide

// F64x4 represents 4 float64 lanes, one 256-bit AVX register.
type F64x4 [4]float64

// SplatF64x4 creates F64x4 with all lanes set to n.
func SplatF64x4(n float64) F64x4 {
	var result F64x4
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs element-wise addition.
func (v F64x4) Add(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v F64x4) Sub(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise multiplication with each product rounded to
// float64 before it can take part in another operation.
func (v F64x4) Mul(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = float64(v[i] * other[i])
	}
	return result
}

// LessEqual returns a mask with all bits set in lanes where v[i] <= other[i].
// NaN lanes compare false.
func (v F64x4) LessEqual(other F64x4) I64x4 {
	var result I64x4
	for i := range v {
		if v[i] <= other[i] {
			result[i] = -1
		}
	}
	return result
}

// I64x4 represents 4 int64 lanes used for counters and masks.
type I64x4 [4]int64

// SplatI64x4 creates I64x4 with all lanes set to n.
func SplatI64x4(n int64) I64x4 {
	var result I64x4
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs element-wise addition.
func (v I64x4) Add(other I64x4) I64x4 {
	var result I64x4
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// And performs element-wise bitwise AND.
func (v I64x4) And(other I64x4) I64x4 {
	var result I64x4
	for i := range v {
		result[i] = v[i] & other[i]
	}
	return result
}

// Less returns a mask with all bits set in lanes where v[i] < other[i].
func (v I64x4) Less(other I64x4) I64x4 {
	var result I64x4
	for i := range v {
		if v[i] < other[i] {
			result[i] = -1
		}
	}
	return result
}

// Any reports whether any lane is non-zero.
func (v I64x4) Any() bool {
	var acc int64
	for i := range v {
		acc |= v[i]
	}
	return acc != 0
}
