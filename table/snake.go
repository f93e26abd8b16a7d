package table

import "strings"

// Snake canonicalizes a name to lowercase snake_case: every run of
// non-alphanumeric characters becomes a single underscore, leading and
// trailing underscores are dropped. Running it twice changes nothing,
// so already-canonical tables pass through untouched.
func Snake(s string) string {
	var b strings.Builder
	pendingUnderscore := false
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			if b.Len() > 0 {
				pendingUnderscore = true
			}
			continue
		}
		if pendingUnderscore {
			b.WriteByte('_')
			pendingUnderscore = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SnakeColumns canonicalizes every column name in place.
func (t *Table) SnakeColumns() {
	for i, c := range t.Columns {
		t.Columns[i] = Snake(c)
	}
}

// SnakeCells canonicalizes every cell value in place. The design table
// gets this treatment so its group labels and sample names match the
// snake-cased quantification columns; the quantification table must NOT,
// since its cells are numeric abundances.
func (t *Table) SnakeCells() {
	for _, row := range t.Rows {
		for j, v := range row {
			row[j] = Snake(v)
		}
	}
}
