package main

import (
	"bytes"
	"testing"

	"github.com/tsawler/wordbin/model"
)

func TestWriteTables(t *testing.T) {
	tables := []*model.Table{
		{Level: 1, Rows: [][]model.Cell{
			{{Text: "a, b", ColSpan: 1}, {Text: "c", ColSpan: 1}},
			{{Text: "d", ColSpan: 1}, {Text: "e", ColSpan: 1}},
		}},
		{Level: 2, Rows: [][]model.Cell{{{Text: "inner", ColSpan: 1}}}},
	}
	tests := []struct {
		name     string
		markdown bool
		want     string
	}{
		{
			"csv",
			false,
			"# table 1, level 1, 2x2\n\"a, b\",c\nd,e\n\n" +
				"# table 2, level 2, 1x1\ninner\n\n",
		},
		{
			"markdown",
			true,
			"# table 1, level 1, 2x2\n| a, b | c |\n|---|---|\n| d | e |\n\n" +
				"# table 2, level 2, 1x1\n| inner |\n|---|\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeTables(&buf, tables, tt.markdown); err != nil {
				t.Fatalf("writeTables() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("writeTables() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}
