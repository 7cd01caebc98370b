package surface

// Circle is one recorded FillCircle call.
type Circle struct {
	X, Y, R, Alpha float64
}

// Line is one recorded StrokeLine call.
type Line struct {
	X0, Y0, X1, Y1, Alpha float64
}

// Recorder captures draw calls instead of rasterizing them. Tests use
// it to assert on the exact sequence of primitives a frame produces.
type Recorder struct {
	W, H    float64
	Circles []Circle
	Lines   []Line
	Clears  int
}

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.Clears++
	r.Circles = r.Circles[:0]
	r.Lines = r.Lines[:0]
}

func (r *Recorder) FillCircle(x, y, radius, alpha float64) {
	r.Circles = append(r.Circles, Circle{X: x, Y: y, R: radius, Alpha: alpha})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, alpha float64) {
	r.Lines = append(r.Lines, Line{X0: x0, Y0: y0, X1: x1, Y1: y1, Alpha: alpha})
}
