package core

// Distribution1D represents a piecewise-constant 1D probability
// distribution over [0,1], built from a set of non-negative weights.
// Sampling inverts the precomputed CDF by binary search.
type Distribution1D struct {
	Func    []float64 // the weights the distribution was built from
	CDF     []float64 // len(Func)+1 entries, CDF[0]=0, CDF[n]=1
	FuncInt float64   // integral of Func over [0,1]
}

// NewDistribution1D builds a distribution from the given weights.
// If all weights are zero the distribution falls back to uniform so
// sampling still returns a valid value with a positive PDF.
func NewDistribution1D(f []float64) *Distribution1D {
	n := len(f)
	d := &Distribution1D{
		Func: append([]float64(nil), f...),
		CDF:  make([]float64, n+1),
	}

	// Integrate the step function
	for i := 1; i <= n; i++ {
		d.CDF[i] = d.CDF[i-1] + d.Func[i-1]/float64(n)
	}

	d.FuncInt = d.CDF[n]
	if d.FuncInt == 0 {
		for i := 1; i <= n; i++ {
			d.CDF[i] = float64(i) / float64(n)
		}
	} else {
		for i := 1; i <= n; i++ {
			d.CDF[i] /= d.FuncInt
		}
	}

	return d
}

// Count returns the number of piecewise-constant segments
func (d *Distribution1D) Count() int {
	return len(d.Func)
}

// SampleContinuous maps a uniform sample u to a value in [0,1) distributed
// proportionally to the weights. Returns the value, its PDF, and the index
// of the segment it fell into.
func (d *Distribution1D) SampleContinuous(u float64) (value, pdf float64, offset int) {
	offset = d.findInterval(u)

	// Linear interpolation within the segment
	du := u - d.CDF[offset]
	if delta := d.CDF[offset+1] - d.CDF[offset]; delta > 0 {
		du /= delta
	}

	if d.FuncInt > 0 {
		pdf = d.Func[offset] / d.FuncInt
	} else {
		pdf = 1
	}

	value = (float64(offset) + du) / float64(d.Count())
	return value, pdf, offset
}

// PDF returns the density of the distribution at the given value in [0,1)
func (d *Distribution1D) PDF(value float64) float64 {
	n := d.Count()
	i := int(value * float64(n))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	if d.FuncInt == 0 {
		return 1
	}
	return d.Func[i] / d.FuncInt
}

// findInterval locates the largest CDF index whose value is <= u
func (d *Distribution1D) findInterval(u float64) int {
	lo, hi := 0, len(d.CDF)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if d.CDF[mid] <= u {
			lo = mid
		} else {
			hi = mid
		}
	}
	if lo > d.Count()-1 {
		lo = d.Count() - 1
	}
	return lo
}

// Distribution2D represents a piecewise-constant 2D probability
// distribution over [0,1]², built from a row-major weight grid. Sampling
// first picks a row from the marginal distribution, then a column from
// that row's conditional distribution.
type Distribution2D struct {
	conditional []*Distribution1D // one per row
	marginal    *Distribution1D
}

// NewDistribution2D builds a distribution from a row-major weight grid
func NewDistribution2D(f []float64, width, height int) *Distribution2D {
	d := &Distribution2D{
		conditional: make([]*Distribution1D, height),
	}

	marginalFunc := make([]float64, height)
	for y := 0; y < height; y++ {
		d.conditional[y] = NewDistribution1D(f[y*width : (y+1)*width])
		marginalFunc[y] = d.conditional[y].FuncInt
	}
	d.marginal = NewDistribution1D(marginalFunc)

	return d
}

// SampleContinuous maps a uniform 2D sample to a point in [0,1)²
// distributed proportionally to the weight grid, returning the point and
// its PDF with respect to unit area in the grid's parameter space
func (d *Distribution2D) SampleContinuous(u Vec2) (Vec2, float64) {
	v, pdfY, row := d.marginal.SampleContinuous(u.Y)
	x, pdfX, _ := d.conditional[row].SampleContinuous(u.X)
	return NewVec2(x, v), pdfX * pdfY
}

// PDF returns the density at a point in [0,1)² with respect to unit area
func (d *Distribution2D) PDF(p Vec2) float64 {
	row := int(p.Y * float64(len(d.conditional)))
	if row < 0 {
		row = 0
	}
	if row >= len(d.conditional) {
		row = len(d.conditional) - 1
	}
	return d.conditional[row].PDF(p.X) * d.marginal.PDF(p.Y)
}
