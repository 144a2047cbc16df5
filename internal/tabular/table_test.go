package tabular

import (
	"errors"
	"strings"
	"testing"
)

func TestParseComma(t *testing.T) {
	in := "gene,score\nTP53,0.5\nMYC,-1.2\n"

	tbl, err := CSV{}.Parse(strings.NewReader(in), ',')
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if got, want := len(tbl.Header), 2; got != want {
		t.Fatalf("header width = %d, want %d", got, want)
	}
	if tbl.Header[0] != "gene" || tbl.Header[1] != "score" {
		t.Errorf("header = %v", tbl.Header)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(tbl.Rows))
	}
	if tbl.Rows[0][0] != "TP53" || tbl.Rows[1][1] != "-1.2" {
		t.Errorf("rows = %v", tbl.Rows)
	}
}

func TestParseTab(t *testing.T) {
	in := "pathway\tactivity\nJAK-STAT\tup\n"

	tbl, err := CSV{}.Parse(strings.NewReader(in), '\t')
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if tbl.Rows[0][0] != "JAK-STAT" {
		t.Errorf("rows = %v", tbl.Rows)
	}
}

func TestParseRaggedRowsNormalised(t *testing.T) {
	in := "a,b,c\n1,2\n1,2,3,4\n"

	tbl, err := CSV{}.Parse(strings.NewReader(in), ',')
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	for i, row := range tbl.Rows {
		if len(row) != 3 {
			t.Errorf("row %d width = %d, want 3", i, len(row))
		}
	}
	if tbl.Rows[0][2] != "" {
		t.Errorf("short row not padded: %v", tbl.Rows[0])
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := CSV{}.Parse(strings.NewReader(""), ',')
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("Parse(empty) error = %v, want ErrEmpty", err)
	}
}

func TestParseHeaderOnly(t *testing.T) {
	tbl, err := CSV{}.Parse(strings.NewReader("gene,score\n"), ',')
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(tbl.Rows) != 0 {
		t.Errorf("row count = %d, want 0", len(tbl.Rows))
	}
}

func TestRenderPipeTable(t *testing.T) {
	tbl := &Table{
		Header: []string{"gene", "score"},
		Rows:   [][]string{{"TP53", "0.5"}, {"MYC", "-1.2"}},
	}

	out := CSV{}.Render(tbl)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want 4 (header, rule, 2 rows):\n%s", len(lines), out)
	}
	for i, ln := range lines {
		if !strings.HasPrefix(ln, "|") || !strings.HasSuffix(ln, "|") {
			t.Errorf("line %d not pipe-delimited: %q", i, ln)
		}
	}
	if !strings.Contains(lines[0], "gene") || !strings.Contains(lines[0], "score") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "TP53") {
		t.Errorf("first data line = %q", lines[2])
	}
	if !strings.Contains(lines[3], "MYC") {
		t.Errorf("second data line = %q", lines[3])
	}
}

func TestSerializeColumnOriented(t *testing.T) {
	tbl := &Table{
		Header: []string{"gene", "score"},
		Rows:   [][]string{{"TP53", "0.5"}, {"MYC", "-1.2"}},
	}

	got, err := CSV{}.Serialize(tbl)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}

	want := `{"gene":{"0":"TP53","1":"MYC"},"score":{"0":"0.5","1":"-1.2"}}`
	if got != want {
		t.Errorf("Serialize = %s, want %s", got, want)
	}
}

func TestSerializeEscapesCells(t *testing.T) {
	tbl := &Table{
		Header: []string{`say "hi"`},
		Rows:   [][]string{{"a\tb"}},
	}

	got, err := CSV{}.Serialize(tbl)
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	want := `{"say \"hi\"":{"0":"a\tb"}}`
	if got != want {
		t.Errorf("Serialize = %s, want %s", got, want)
	}
}
