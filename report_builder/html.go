package report_builder

import (
	"fmt"
	"html"
	"os"
	"strings"

	"prot_norm_go/table"
)

// WriteHTMLReport renders the DEA results table as a self-contained
// interactive HTML document: click a header to sort, type in the box to
// filter rows. Values are shown exactly as the results file carries
// them; this is a presentation layer only.
func WriteHTMLReport(filename string, t *table.Table) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	var head strings.Builder
	for i, c := range t.Columns {
		fmt.Fprintf(&head, "<th onclick=\"sortBy(%d)\">%s</th>", i, html.EscapeString(c))
	}

	var body strings.Builder
	for _, row := range t.Rows {
		body.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&body, "<td>%s</td>", html.EscapeString(cell))
		}
		body.WriteString("</tr>\n")
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<title>Differential Expression Results</title>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; padding: 20px; background-color: #f9f9f9; }
		h1 { color: #333; }
		input { margin: 10px 0; padding: 6px; width: 320px; }
		table { border-collapse: collapse; margin-top: 10px; }
		th, td { padding: 6px 10px; border: 1px solid #ccc; text-align: left; }
		th { background-color: #eee; cursor: pointer; user-select: none; }
		th:hover { background-color: #ddd; }
	</style>
</head>
<body>
	<h1>Differential Expression Results</h1>
	<p>%d features, %d columns. Click a column header to sort; type to filter.</p>
	<input id="filter" type="text" placeholder="Filter rows..." onkeyup="filterRows()">
	<table id="results">
		<thead><tr>%s</tr></thead>
		<tbody>
%s		</tbody>
	</table>
	<script>
	var sortCol = -1, sortAsc = true;
	function sortBy(col) {
		if (sortCol === col) { sortAsc = !sortAsc; } else { sortCol = col; sortAsc = true; }
		var tbody = document.querySelector("#results tbody");
		var rows = Array.from(tbody.rows);
		rows.sort(function(a, b) {
			var x = a.cells[col].textContent, y = b.cells[col].textContent;
			var nx = parseFloat(x), ny = parseFloat(y);
			var cmp;
			if (!isNaN(nx) && !isNaN(ny)) { cmp = nx - ny; }
			else { cmp = x.localeCompare(y); }
			return sortAsc ? cmp : -cmp;
		});
		rows.forEach(function(r) { tbody.appendChild(r); });
	}
	function filterRows() {
		var q = document.getElementById("filter").value.toLowerCase();
		document.querySelectorAll("#results tbody tr").forEach(function(r) {
			r.style.display = r.textContent.toLowerCase().indexOf(q) >= 0 ? "" : "none";
		});
	}
	</script>
</body>
</html>`,
		len(t.Rows),
		len(t.Columns),
		head.String(),
		body.String(),
	)

	_, err = f.WriteString(page)
	return err
}
