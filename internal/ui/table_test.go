package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTableAlignsColumns(t *testing.T) {
	table := NewTable(Column{Header: "FEATURE"}, Column{Header: "STATUS"})
	table.AddRow("auth", "drafted")
	table.AddRow("漢字", "approved")

	got := table.String()

	expected := "FEATURE  STATUS\n" +
		"auth     drafted\n" +
		"漢字     approved\n"
	if got != expected {
		t.Fatalf("expected aligned table, got %q", got)
	}
}

func TestTableFlattensLineBreaks(t *testing.T) {
	table := NewTable(Column{Header: "ID"}, Column{Header: "NAME"})
	table.AddRow("002", "api\nclient\r\nv2\tbeta")

	got := table.String()

	if !strings.HasSuffix(got, "002  api client v2 beta\n") {
		t.Fatalf("expected flattened cell, got %q", got)
	}
}

func TestTableTruncatesToMaxWidth(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit int
		want  string
	}{
		{"fits", strings.Repeat("a", 9) + "é", 10, strings.Repeat("a", 9) + "é"},
		{"ascii", strings.Repeat("a", 20), 10, strings.Repeat("a", 7) + cellEllipsis},
		{"unlimited", strings.Repeat("a", 80), 0, strings.Repeat("a", 80)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(Column{Header: "X", MaxWidth: tt.limit})
			table.AddRow(tt.value)

			got := strings.TrimSuffix(strings.SplitN(table.String(), "\n", 2)[1], "\n")

			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTableTruncatesWideRunes(t *testing.T) {
	table := NewTable(Column{Header: "X", MaxWidth: 11})
	table.AddRow(strings.Repeat("漢", 20))

	cell := strings.TrimSuffix(strings.SplitN(table.String(), "\n", 2)[1], "\n")

	if width := runewidth.StringWidth(cell); width > 11 {
		t.Fatalf("expected width at most 11, got %d (%q)", width, cell)
	}
	if !strings.HasSuffix(cell, cellEllipsis) {
		t.Fatalf("expected ellipsis suffix, got %q", cell)
	}
}

func TestTableMissingCellsRenderEmpty(t *testing.T) {
	table := NewTable(Column{Header: "A"}, Column{Header: "B"}, Column{Header: "C"})
	table.AddRow("1")
	table.AddRow("2", "two", "deux", "extra")

	got := table.String()

	expected := "A  B    C\n" +
		"1" + strings.Repeat(" ", 7) + "\n" +
		"2  two  deux\n"
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}
