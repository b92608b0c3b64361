package doc

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/wordbin/internal/wordtest"
	"github.com/tsawler/wordbin/model"
	"github.com/tsawler/wordbin/sprm"
)

func tableDoc(paras ...[]wordtest.Paragraph) *wordtest.Document {
	wd := &wordtest.Document{}
	for _, p := range paras {
		wd.Paragraphs = append(wd.Paragraphs, p...)
	}
	return wd
}

func TestTables_Text(t *testing.T) {
	widths := []int16{2000, 3000}
	tests := []struct {
		name string
		wd   *wordtest.Document
		want string
	}{
		{
			"simple",
			tableDoc(
				paras("Intro"),
				wordtest.Row(widths, "A", "B"),
				wordtest.Row(widths, "C", "D"),
				paras("After"),
			),
			"Intro\nA\tB\nC\tD\nAfter\n",
		},
		{
			"several paragraphs in a cell",
			tableDoc(
				[]wordtest.Paragraph{wordtest.P("one", wordtest.InTable()), wordtest.Cell("two"), wordtest.Cell("B")},
				wordtest.Row(widths),
				paras("After"),
			),
			"one two\tB\nAfter\n",
		},
		{
			"nested",
			tableDoc(
				[]wordtest.Paragraph{wordtest.P("x", wordtest.InTable())},
				wordtest.NestedRow([]int16{1000, 1000}, "n1", "n2"),
				[]wordtest.Paragraph{wordtest.Cell("y"), wordtest.Cell("z")},
				wordtest.Row(widths),
				paras("After"),
			),
			"x n1\tn2 y\tz\nAfter\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := build(t, tt.wd)
			if got := plainText(t, d); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTables_Structure(t *testing.T) {
	d := build(t, tableDoc(
		wordtest.Row([]int16{2000, 3000}, "A", "B"),
		wordtest.Row([]int16{2000, 1000, 2000}, "C", "D", "E"),
		paras("After"),
	))
	chain := d.Chain(d.Stories()[0].First)
	if len(chain) != 2 || chain[0].Table == nil {
		t.Fatalf("chain = %d parts, first table %v", len(chain), chain[0].Table != nil)
	}
	tbl := chain[0].Table
	if got, want := tbl.Grid, []int32{0, 2000, 3000, 5000}; !reflect.DeepEqual(got, want) {
		t.Errorf("Grid = %v, want %v", got, want)
	}
	if tbl.Columns() != 3 {
		t.Errorf("Columns() = %d, want 3", tbl.Columns())
	}
	if got, want := tbl.Widths(), []int32{2000, 1000, 2000}; !reflect.DeepEqual(got, want) {
		t.Errorf("Widths() = %v, want %v", got, want)
	}
	b := tbl.Rows[0].Cells[1]
	if b.GridStart != 1 || b.ColSpan != 2 || b.Left != 2000 || b.Right != 5000 {
		t.Errorf("cell B = start %d span %d [%d, %d]", b.GridStart, b.ColSpan, b.Left, b.Right)
	}
	if tbl.Rows[0].Tap == nil || len(tbl.Rows[1].Cells) != 3 {
		t.Errorf("rows not bound to their properties")
	}
	if chain[0].Level != 0 || tbl.Level != 1 {
		t.Errorf("holder level %d, table level %d", chain[0].Level, tbl.Level)
	}

	doc, err := BuildModel(d)
	if err != nil {
		t.Fatalf("BuildModel() error = %v", err)
	}
	mt, ok := doc.Elements[0].(*model.Table)
	if !ok {
		t.Fatalf("Elements[0] = %T, want *model.Table", doc.Elements[0])
	}
	if got, want := mt.Widths, []float64{100, 50, 100}; !reflect.DeepEqual(got, want) {
		t.Errorf("model Widths = %v, want %v", got, want)
	}
	if len(mt.Rows) != 2 || len(mt.Rows[0]) != 2 || len(mt.Rows[1]) != 3 {
		t.Fatalf("model rows = %v", mt.Rows)
	}
	if c := mt.Rows[0][1]; c.Text != "B" || c.ColSpan != 2 || c.Column != 1 || c.Style.Width != 150 {
		t.Errorf("model cell B = %+v", c)
	}
	if mt.Rows[1][2].Text != "E" {
		t.Errorf("model cell E = %q", mt.Rows[1][2].Text)
	}
}

func TestTables_NestedStructure(t *testing.T) {
	d := build(t, tableDoc(
		[]wordtest.Paragraph{wordtest.P("x", wordtest.InTable())},
		wordtest.NestedRow([]int16{1000, 1000}, "n1", "n2"),
		[]wordtest.Paragraph{wordtest.Cell("y")},
		wordtest.Row([]int16{4000}),
	))
	outer := d.Chain(d.Stories()[0].First)[0].Table
	if outer == nil || len(outer.Rows) != 1 || len(outer.Rows[0].Cells) != 1 {
		t.Fatal("outer table not built")
	}
	cell := d.Chain(outer.Rows[0].Cells[0].First)
	if len(cell) != 3 || cell[1].Table == nil {
		t.Fatalf("outer cell chain = %d parts", len(cell))
	}
	inner := cell[1].Table
	if inner.Level != 2 || len(inner.Rows) != 1 || len(inner.Rows[0].Cells) != 2 {
		t.Errorf("inner table = level %d, %d rows", inner.Level, len(inner.Rows))
	}
	if cell[1].Parent != outer.Holder {
		t.Errorf("inner holder parent = %d, want %d", cell[1].Parent, outer.Holder)
	}

	doc, err := BuildModel(d)
	if err != nil {
		t.Fatalf("BuildModel() error = %v", err)
	}
	mt := doc.Elements[0].(*model.Table)
	elems := mt.Rows[0][0].Elements
	if len(elems) != 3 {
		t.Fatalf("outer cell elements = %d, want 3", len(elems))
	}
	if nt, ok := elems[1].(*model.Table); !ok || nt.Level != 2 || nt.Rows[0][1].Text != "n2" {
		t.Errorf("nested model table = %+v", elems[1])
	}
}

func TestStoreRowProperties_HorizontalMerge(t *testing.T) {
	d := &Document{}
	row := &Row{Cells: []*Cell{{}, {}, {}}}
	tap := &sprm.Tap{
		Centers: []int16{0, 1000, 2000, 3000},
		Cells: []sprm.Tc{
			{FirstMerged: true, Merged: true},
			{Merged: true},
			{},
		},
		Header: true,
	}
	d.StoreRowProperties(row, tap)
	if len(row.Cells) != 2 {
		t.Fatalf("len(Cells) = %d, want 2", len(row.Cells))
	}
	if c := row.Cells[0]; c.Left != 0 || c.Right != 2000 || !c.Header {
		t.Errorf("merged cell = [%d, %d] header %v", c.Left, c.Right, c.Header)
	}
	if row.Tap != tap {
		t.Error("row not bound to its properties")
	}
}

func TestVerticalMerges(t *testing.T) {
	cell := func(start int, tc sprm.Tc) *Cell {
		return &Cell{GridStart: start, ColSpan: 1, RowSpan: 1, Tc: tc}
	}
	restart := sprm.Tc{VertMerge: true, VertRestart: true}
	cont := sprm.Tc{VertMerge: true}
	tbl := &Table{Rows: []*Row{
		{Cells: []*Cell{cell(0, restart), cell(1, sprm.Tc{})}},
		{Cells: []*Cell{cell(0, cont), cell(1, sprm.Tc{})}},
		{Cells: []*Cell{cell(0, cont), cell(1, restart)}},
		{Cells: []*Cell{cell(0, sprm.Tc{}), cell(1, cont)}},
	}}
	verticalMerges(tbl)

	if got := tbl.Rows[0].Cells[0].RowSpan; got != 3 {
		t.Errorf("first column RowSpan = %d, want 3", got)
	}
	if !tbl.Rows[1].Cells[0].Continued || !tbl.Rows[2].Cells[0].Continued || tbl.Rows[3].Cells[0].Continued {
		t.Error("first column continuation flags wrong")
	}
	if got := tbl.Rows[2].Cells[1].RowSpan; got != 2 {
		t.Errorf("second column RowSpan = %d, want 2", got)
	}
}

func TestClusterEdges(t *testing.T) {
	tests := []struct {
		name  string
		edges []int32
		want  []int32
	}{
		{"empty", nil, nil},
		{"exact", []int32{0, 1000, 1000, 2000, 0, 2000}, []int32{0, 1000, 2000}},
		{"within tolerance", []int32{0, 1003, 998, 2005, 2000}, []int32{0, 998, 2000}},
		{"just outside", []int32{0, 6}, []int32{0, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clusterEdges(tt.edges, gridTolerance); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("clusterEdges(%v) = %v, want %v", tt.edges, got, tt.want)
			}
		})
	}
}

func TestNearestEdge(t *testing.T) {
	grid := []int32{0, 1000, 2000}
	tests := []struct {
		e    int32
		want int
	}{
		{0, 0}, {-50, 0}, {400, 0}, {600, 1}, {1003, 1}, {1997, 2}, {9000, 2},
	}
	for _, tt := range tests {
		if got := nearestEdge(grid, tt.e); got != tt.want {
			t.Errorf("nearestEdge(%d) = %d, want %d", tt.e, got, tt.want)
		}
	}
}

func TestTables_DepthClamped(t *testing.T) {
	d := build(t, tableDoc(
		paras("A"),
		[]wordtest.Paragraph{wordtest.P("deep", wordtest.InTable(), wordtest.TableDepth(300000))},
		paras("B"),
	))
	if got := d.Diagnostics().ClampedTableDepths; got != 1 {
		t.Errorf("ClampedTableDepths = %d, want 1", got)
	}
	if n := d.parts.Len(); n > maxTableDepth+3 {
		t.Errorf("%d parts allocated, want at most %d", n, maxTableDepth+3)
	}
	chain := d.Chain(d.Stories()[0].First)
	if len(chain) != 3 || chain[1].Table == nil {
		t.Fatalf("chain = %d parts", len(chain))
	}
	depth, tbl := 0, chain[1].Table
	for tbl != nil {
		depth = tbl.Level
		inner := d.Chain(tbl.Rows[0].Cells[0].First)
		tbl = inner[0].Table
	}
	if depth != maxTableDepth {
		t.Errorf("innermost table level = %d, want %d", depth, maxTableDepth)
	}
	text := plainText(t, d)
	if !strings.Contains(text, "deep") || !strings.HasSuffix(text, "B\n") {
		t.Errorf("text = %q", text)
	}
}

func TestRowBorders(t *testing.T) {
	line := func(w uint8) sprm.Brc { return sprm.Brc{Type: 1, Width: w} }
	tap := &sprm.Tap{Centers: []int16{0, 1000}, Cells: []sprm.Tc{{}}}
	tap.Borders[sprm.SideTop] = line(1)
	tap.Borders[sprm.SideBottom] = line(2)
	tap.Borders[sprm.SideInsideH] = line(3)

	own := &sprm.Tap{Centers: []int16{0, 1000}, Cells: []sprm.Tc{{}}}
	own.Borders = tap.Borders
	own.Cells[0].Brc[sprm.SideTop] = line(4)

	d := &Document{}
	tbl := &Table{}
	for i := 0; i < 4; i++ {
		r := &Row{Cells: []*Cell{{}}}
		if i == 3 {
			d.StoreRowProperties(r, own)
		} else {
			d.StoreRowProperties(r, tap)
		}
		tbl.Rows = append(tbl.Rows, r)
	}
	outerRowBorders(tbl)

	want := [][2]uint8{{1, 3}, {3, 3}, {3, 3}, {4, 2}}
	for i, w := range want {
		c := tbl.Rows[i].Cells[0]
		if got := [2]uint8{c.Brc[sprm.SideTop].Width, c.Brc[sprm.SideBottom].Width}; got != w {
			t.Errorf("row %d top/bottom = %v, want %v", i, got, w)
		}
	}
}
