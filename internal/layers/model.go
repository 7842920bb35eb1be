package layers

import (
	"fmt"
	"strconv"
)

// Tabular model over the layer collection: one row per layer, columns for
// name, visibility and opacity. UI panes bind to these accessors instead of
// reaching into the slice.

const (
	ColumnName = iota
	ColumnVisible
	ColumnOpacity

	columnCount = 3
)

// RowCount returns the number of rows in the model.
func (m *Manager) RowCount() int { return len(m.layers) }

// ColumnCount returns the number of columns in the model.
func (m *Manager) ColumnCount() int { return columnCount }

// HeaderValue returns the column title.
func (m *Manager) HeaderValue(col int) string {
	switch col {
	case ColumnName:
		return "Name"
	case ColumnVisible:
		return "Visible"
	case ColumnOpacity:
		return "Opacity"
	default:
		return ""
	}
}

// CellValue returns the display text for a cell, or "" when out of range.
func (m *Manager) CellValue(row, col int) string {
	if row < 0 || row >= len(m.layers) {
		return ""
	}
	layer := m.layers[row]

	switch col {
	case ColumnName:
		return layer.Name()
	case ColumnVisible:
		if layer.Visible() {
			return "Visible"
		}

		return "Hidden"
	case ColumnOpacity:
		return strconv.FormatFloat(layer.Opacity(), 'f', 2, 64)
	default:
		return ""
	}
}

// SetCellValue edits a cell. Only the name column (string) and visible
// column (bool) are editable.
func (m *Manager) SetCellValue(row, col int, value any) error {
	if row < 0 || row >= len(m.layers) {
		return fmt.Errorf("row %d out of range", row)
	}
	layer := m.layers[row]

	switch col {
	case ColumnName:
		name, ok := value.(string)
		if !ok {
			return fmt.Errorf("name column expects string, got %T", value)
		}
		layer.SetName(name)
	case ColumnVisible:
		visible, ok := value.(bool)
		if !ok {
			return fmt.Errorf("visible column expects bool, got %T", value)
		}
		layer.SetVisible(visible)
	default:
		return fmt.Errorf("column %d is not editable", col)
	}

	return nil
}
