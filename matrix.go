package symcore

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================
// Matrix — symbolic matrix, row major; vectors are n x 1
// ============================================================

type Matrix struct {
	rows, cols int
	entries    []Expr
}

// ErrSingular is returned when inverting a matrix whose determinant is zero.
var ErrSingular = errors.New("symcore: singular matrix")

// NewMatrix builds a rows x cols matrix from row-major entries. Missing
// entries are zero.
func NewMatrix(rows, cols int, entries ...Expr) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("symcore: invalid matrix shape %dx%d", rows, cols))
	}
	if len(entries) > rows*cols {
		panic(fmt.Sprintf("symcore: %dx%d matrix given %d entries", rows, cols, len(entries)))
	}
	m := &Matrix{rows: rows, cols: cols, entries: make([]Expr, rows*cols)}
	copy(m.entries, entries)
	for i := len(entries); i < len(m.entries); i++ {
		m.entries[i] = N(0)
	}
	return m
}

// Vector returns the column vector of xs.
func Vector(xs ...Expr) *Matrix { return NewMatrix(len(xs), 1, xs...) }

func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.entries[i*n+i] = N(1)
	}
	return m
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) Get(row, col int) Expr {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("symcore: matrix index [%d,%d] out of range for %dx%d", row, col, m.rows, m.cols))
	}
	return m.entries[row*m.cols+col]
}

func (m *Matrix) Kind() Kind   { return KindMatrix }
func (m *Matrix) Args() []Expr { return m.entries }

// N is NaN; evaluate the entries instead.
func (m *Matrix) N() float64 { return realPart(evalComplex(m)) }

func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("[" + joinArgs(m.row(i), ", ", Expr.String) + "]")
	}
	sb.WriteString("]")
	return sb.String()
}

func (m *Matrix) LaTeX() string {
	rows := make([]string, m.rows)
	for i := range rows {
		rows[i] = joinArgs(m.row(i), " & ", Expr.LaTeX)
	}
	return "\\begin{pmatrix}" + strings.Join(rows, " \\\\ ") + "\\end{pmatrix}"
}

func (m *Matrix) row(i int) []Expr { return m.entries[i*m.cols : (i+1)*m.cols] }

func (m *Matrix) Substitute(v *Sym, with Expr) Expr { return substituteArgs(m, v, with) }

// Derivative differentiates entrywise.
func (m *Matrix) Derivative(v *Sym) Expr { return m.mapEntries(func(e Expr) Expr { return e.Derivative(v) }) }

func (m *Matrix) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "matrix", "rows": m.rows, "cols": m.cols, "entries": argsJSON(m.entries)}
}

func (m *Matrix) mapEntries(f func(Expr) Expr) *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, entries: make([]Expr, len(m.entries))}
	for i, e := range m.entries {
		out.entries[i] = f(e)
	}
	return out
}

func (m *Matrix) sameShape(o *Matrix, op string) {
	if m.rows != o.rows || m.cols != o.cols {
		panic(fmt.Sprintf("symcore: %s of %dx%d and %dx%d", op, m.rows, m.cols, o.rows, o.cols))
	}
}

func (m *Matrix) MatAdd(o *Matrix) *Matrix {
	m.sameShape(o, "MatAdd")
	out := NewMatrix(m.rows, m.cols)
	for i := range m.entries {
		out.entries[i] = AddOf(m.entries[i], o.entries[i])
	}
	return out
}

func (m *Matrix) MatSub(o *Matrix) *Matrix {
	m.sameShape(o, "MatSub")
	out := NewMatrix(m.rows, m.cols)
	for i := range m.entries {
		out.entries[i] = SubOf(m.entries[i], o.entries[i])
	}
	return out
}

func (m *Matrix) MatMul(o *Matrix) *Matrix {
	if m.cols != o.rows {
		panic(fmt.Sprintf("symcore: MatMul of %dx%d and %dx%d", m.rows, m.cols, o.rows, o.cols))
	}
	out := NewMatrix(m.rows, o.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < o.cols; j++ {
			terms := make([]Expr, m.cols)
			for k := 0; k < m.cols; k++ {
				terms[k] = MulOf(m.Get(i, k), o.Get(k, j))
			}
			out.entries[i*o.cols+j] = AddOf(terms...)
		}
	}
	return out
}

func (m *Matrix) Scale(c Expr) *Matrix {
	return m.mapEntries(func(e Expr) Expr { return MulOf(c, e) })
}

func (m *Matrix) Transpose() *Matrix {
	out := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.entries[j*m.rows+i] = m.Get(i, j)
		}
	}
	return out
}

func (m *Matrix) square(op string) {
	if m.rows != m.cols {
		panic(fmt.Sprintf("symcore: %s of non-square %dx%d matrix", op, m.rows, m.cols))
	}
}

func (m *Matrix) Trace() Expr {
	m.square("Trace")
	terms := make([]Expr, m.rows)
	for i := range terms {
		terms[i] = m.Get(i, i)
	}
	return AddOf(terms...)
}

// Det expands along the first row.
func (m *Matrix) Det() Expr {
	m.square("Det")
	return Expand(m.det())
}

func (m *Matrix) det() Expr {
	n := m.rows
	switch n {
	case 1:
		return m.entries[0]
	case 2:
		return SubOf(MulOf(m.entries[0], m.entries[3]), MulOf(m.entries[1], m.entries[2]))
	}
	terms := make([]Expr, 0, n)
	for j := 0; j < n; j++ {
		if IsZero(m.entries[j]) {
			continue
		}
		t := MulOf(m.entries[j], m.minor(0, j).det())
		if j%2 == 1 {
			t = Neg(t)
		}
		terms = append(terms, t)
	}
	return AddOf(terms...)
}

func (m *Matrix) minor(skipRow, skipCol int) *Matrix {
	n := m.rows - 1
	out := &Matrix{rows: n, cols: n, entries: make([]Expr, 0, n*n)}
	for i := 0; i < m.rows; i++ {
		if i == skipRow {
			continue
		}
		for j := 0; j < m.cols; j++ {
			if j != skipCol {
				out.entries = append(out.entries, m.Get(i, j))
			}
		}
	}
	return out
}

// Inverse returns adj(m)/det(m), or ErrSingular when the determinant
// simplifies to zero.
func (m *Matrix) Inverse() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, errors.Errorf("symcore: inverse of non-square %dx%d matrix", m.rows, m.cols)
	}
	det := Simplify(m.Det())
	if IsZero(det) {
		return nil, ErrSingular
	}
	n := m.rows
	if n == 1 {
		return NewMatrix(1, 1, PowOf(det, N(-1))), nil
	}
	inv := PowOf(det, N(-1))
	out := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c := m.minor(i, j).det()
			if (i+j)%2 == 1 {
				c = Neg(c)
			}
			// Transposed: adj[j][i] = cofactor[i][j].
			out.entries[j*n+i] = Simplify(MulOf(c, inv))
		}
	}
	return out, nil
}
