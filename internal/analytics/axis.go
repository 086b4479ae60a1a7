package analytics

import "sort"

// Axis is an ordered list of row or column labels.
type Axis []string

// Canonical axes that do not depend on the data.
var (
	MonthAxis    = Axis{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	PriorityAxis = Axis{"Low", "Medium", "High", "unknown"}
)

// DerivedAxis returns the sorted distinct non-empty values.
func DerivedAxis(values []string) Axis {
	seen := make(map[string]struct{}, len(values))
	out := make(Axis, 0)
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// UnionAxis keeps the canonical order and appends labels from observed that
// are not already present, sorted.
func UnionAxis(canonical, observed Axis) Axis {
	out := make(Axis, 0, len(canonical)+len(observed))
	seen := make(map[string]struct{}, len(canonical))
	for _, label := range canonical {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	extra := make([]string, 0)
	for _, label := range observed {
		if _, ok := seen[label]; !ok {
			extra = append(extra, label)
		}
	}
	return append(out, DerivedAxis(extra)...)
}

// Contains reports whether label is on the axis.
func (a Axis) Contains(label string) bool {
	for _, l := range a {
		if l == label {
			return true
		}
	}
	return false
}

// PivotTable is a two-axis count matrix. Cells not set read as zero.
type PivotTable struct {
	Rows    Axis
	Columns Axis
	cells   map[string]map[string]int
}

// NewPivotTable returns an empty table.
func NewPivotTable() *PivotTable {
	return &PivotTable{cells: make(map[string]map[string]int)}
}

// Add increments the (row, col) cell by n, extending the axes when the
// labels are new.
func (p *PivotTable) Add(row, col string, n int) {
	cols, ok := p.cells[row]
	if !ok {
		cols = make(map[string]int)
		p.cells[row] = cols
		p.Rows = append(p.Rows, row)
	}
	if !p.Columns.Contains(col) {
		p.Columns = append(p.Columns, col)
	}
	cols[col] += n
}

// Get returns the count for a cell, zero when absent.
func (p *PivotTable) Get(row, col string) int {
	return p.cells[row][col]
}

// RowTotal sums every column of a row on the current column axis.
func (p *PivotTable) RowTotal(row string) int {
	total := 0
	for _, col := range p.Columns {
		total += p.Get(row, col)
	}
	return total
}

// Reconcile returns a table whose axes are exactly rows and cols in the given
// order. Missing combinations read as zero and cells outside the axes are
// dropped. A nil axis keeps the table's current axis sorted.
func Reconcile(p *PivotTable, rows, cols Axis) *PivotTable {
	if rows == nil {
		rows = DerivedAxis(p.Rows)
	}
	if cols == nil {
		cols = DerivedAxis(p.Columns)
	}
	out := &PivotTable{
		Rows:    append(Axis{}, rows...),
		Columns: append(Axis{}, cols...),
		cells:   make(map[string]map[string]int, len(rows)),
	}
	for _, r := range rows {
		row := make(map[string]int, len(cols))
		for _, c := range cols {
			row[c] = p.Get(r, c)
		}
		out.cells[r] = row
	}
	return out
}

// Records renders the table in wide form: one map per row with the row label
// under rowKey and one entry per column.
func (p *PivotTable) Records(rowKey string) []map[string]any {
	out := make([]map[string]any, 0, len(p.Rows))
	for _, r := range p.Rows {
		rec := make(map[string]any, len(p.Columns)+1)
		rec[rowKey] = r
		for _, c := range p.Columns {
			rec[c] = p.Get(r, c)
		}
		out = append(out, rec)
	}
	return out
}

// Index renders the table as row label -> column label -> count.
func (p *PivotTable) Index() map[string]map[string]int {
	out := make(map[string]map[string]int, len(p.Rows))
	for _, r := range p.Rows {
		row := make(map[string]int, len(p.Columns))
		for _, c := range p.Columns {
			row[c] = p.Get(r, c)
		}
		out[r] = row
	}
	return out
}

// Matrix renders the table as a dense rows × columns array.
func (p *PivotTable) Matrix() [][]int {
	out := make([][]int, len(p.Rows))
	for i, r := range p.Rows {
		out[i] = make([]int, len(p.Columns))
		for j, c := range p.Columns {
			out[i][j] = p.Get(r, c)
		}
	}
	return out
}
