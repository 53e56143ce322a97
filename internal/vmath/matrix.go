package vmath

import (
	"fmt"
	"math"
)

// Matrix is row-major.
type Matrix [][]float64

// Rotation returns the 2D rotation matrix for an angle given in degrees.
func Rotation(degrees float64) Matrix {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Matrix{
		{cos, -sin},
		{sin, cos},
	}
}

func Identity(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	return m
}

// cols returns the column count, failing on empty or ragged matrices.
func (m Matrix) cols() (int, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return 0, fmt.Errorf("%w: empty matrix", ErrDimensionMismatch)
	}
	n := len(m[0])
	for i, row := range m {
		if len(row) != n {
			return 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), n)
		}
	}
	return n, nil
}

// MulVec treats v as a row vector and returns v * m, so
// result[i] = sum_j v[j] * m[j][i].
func MulVec(v Vector, m Matrix) (Vector, error) {
	n, err := m.cols()
	if err != nil {
		return nil, err
	}
	if len(v) != len(m) {
		return nil, fmt.Errorf("%w: vector has %d components, matrix has %d rows", ErrDimensionMismatch, len(v), len(m))
	}
	result := make(Vector, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j, e := range v {
			sum += e * m[j][i]
		}
		result[i] = sum
	}
	return result, nil
}

// Transpose swaps rows and columns. For a rotation matrix this is its inverse.
func Transpose(m Matrix) (Matrix, error) {
	n, err := m.cols()
	if err != nil {
		return nil, err
	}
	t := make(Matrix, n)
	for i := range t {
		t[i] = make([]float64, len(m))
		for j := range m {
			t[i][j] = m[j][i]
		}
	}
	return t, nil
}
