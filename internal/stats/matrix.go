package stats

import "math"

// validateMatrix checks that m is non-empty and rectangular, returning
// its dimensions.
func validateMatrix(m [][]float64) (rows, cols int, err error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return 0, 0, ErrEmptyInput
	}
	cols = len(m[0])
	for _, row := range m {
		if len(row) != cols {
			return 0, 0, ErrRaggedMatrix
		}
	}
	return len(m), cols, nil
}

// Transpose returns the transpose of m.
func Transpose(m [][]float64) ([][]float64, error) {
	rows, cols, err := validateMatrix(m)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, cols)
	for i := range out {
		out[i] = make([]float64, rows)
		for j := range out[i] {
			out[i][j] = m[j][i]
		}
	}
	return out, nil
}

// MatMul returns the matrix product a*b.
func MatMul(a, b [][]float64) ([][]float64, error) {
	aRows, aCols, err := validateMatrix(a)
	if err != nil {
		return nil, err
	}
	bRows, bCols, err := validateMatrix(b)
	if err != nil {
		return nil, err
	}
	if aCols != bRows {
		return nil, ErrDimensionMismatch
	}

	out := make([][]float64, aRows)
	for i := range out {
		out[i] = make([]float64, bCols)
		for j := 0; j < bCols; j++ {
			sum := 0.0
			for k := 0; k < aCols; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out, nil
}

// Determinant returns the determinant of a square matrix using Gaussian
// elimination with partial pivoting.
func Determinant(m [][]float64) (float64, error) {
	rows, cols, err := validateMatrix(m)
	if err != nil {
		return 0, err
	}
	if rows != cols {
		return 0, ErrNotSquare
	}

	// Work on a copy; elimination mutates the matrix.
	work := make([][]float64, rows)
	for i, row := range m {
		work[i] = make([]float64, cols)
		copy(work[i], row)
	}

	det := 1.0
	for col := 0; col < cols; col++ {
		// Partial pivoting keeps the elimination numerically stable.
		pivot := col
		for row := col + 1; row < rows; row++ {
			if math.Abs(work[row][col]) > math.Abs(work[pivot][col]) {
				pivot = row
			}
		}
		if work[pivot][col] == 0 {
			return 0, nil
		}
		if pivot != col {
			work[pivot], work[col] = work[col], work[pivot]
			det = -det
		}

		det *= work[col][col]
		for row := col + 1; row < rows; row++ {
			factor := work[row][col] / work[col][col]
			for k := col; k < cols; k++ {
				work[row][k] -= factor * work[col][k]
			}
		}
	}
	return det, nil
}
