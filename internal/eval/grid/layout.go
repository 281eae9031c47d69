// Package grid arranges two image groups into a single contact sheet: AI
// images in the left columns, real images in the right columns.
package grid

import "fmt"

// Side says which half of the grid a cell belongs to.
type Side int

const (
	SideAI Side = iota
	SideReal
)

func (s Side) String() string {
	if s == SideAI {
		return "ai"
	}
	return "real"
}

// Blank marks a cell with no image.
const Blank = -1

// Cell is one slot of the grid. Index points into the group for Side, or is
// Blank when that group ran out of images.
type Cell struct {
	Row   int
	Col   int
	Side  Side
	Index int
}

// Shape is the grid geometry.
type Shape struct {
	Rows     int
	Cols     int
	LeftCols int
}

// DefaultShape is a 10×10 grid split down the middle.
var DefaultShape = Shape{Rows: 10, Cols: 10, LeftCols: 5}

// Validate checks that the shape can hold both halves.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("grid must have positive size, got %dx%d", s.Rows, s.Cols)
	}
	if s.LeftCols < 0 || s.LeftCols > s.Cols {
		return fmt.Errorf("left columns must be within [0, %d], got %d", s.Cols, s.LeftCols)
	}
	return nil
}

// Capacity returns how many cells each half has.
func (s Shape) Capacity() (ai, real int) {
	return s.Rows * s.LeftCols, s.Rows * (s.Cols - s.LeftCols)
}

// Layout assigns images to cells row-major. The AI cursor only advances
// across the left columns and the real cursor only across the right ones.
func Layout(shape Shape, nAI, nReal int) []Cell {
	cells := make([]Cell, 0, shape.Rows*shape.Cols)
	aiIdx, realIdx := 0, 0

	for row := 0; row < shape.Rows; row++ {
		for col := 0; col < shape.Cols; col++ {
			cell := Cell{Row: row, Col: col, Index: Blank}
			if col < shape.LeftCols {
				cell.Side = SideAI
				if aiIdx < nAI {
					cell.Index = aiIdx
					aiIdx++
				}
			} else {
				cell.Side = SideReal
				if realIdx < nReal {
					cell.Index = realIdx
					realIdx++
				}
			}
			cells = append(cells, cell)
		}
	}

	return cells
}

// Stats counts what a layout placed.
type Stats struct {
	AIPlaced   int
	RealPlaced int
	Blank      int
}

// Count summarizes a layout.
func Count(cells []Cell) Stats {
	var st Stats
	for _, c := range cells {
		switch {
		case c.Index == Blank:
			st.Blank++
		case c.Side == SideAI:
			st.AIPlaced++
		default:
			st.RealPlaced++
		}
	}
	return st
}
