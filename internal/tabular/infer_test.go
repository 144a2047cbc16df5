package tabular

import "testing"

func TestInferToolName(t *testing.T) {
	cases := []struct {
		fileName string
		want     string
	}{
		{"decoupler_results.csv", "decoupler_results"},
		{"PROGENY.tsv", "progeny"},
		{"gsea.out.csv", "gsea"},
		{"noext", "noext"},
		{".hidden", ""},
	}

	for _, c := range cases {
		if got := InferToolName(c.fileName); got != c.want {
			t.Errorf("InferToolName(%q) = %q, want %q", c.fileName, got, c.want)
		}
	}
}

func TestInferDelimiter(t *testing.T) {
	cases := []struct {
		fileName string
		want     rune
	}{
		{"dorothea.tsv", '\t'},
		{"results.tsv.gz", '\t'},
		{"tsv_export.txt", '\t'},
		{"decoupler_results.csv", ','},
		{"plain.txt", ','},
	}

	for _, c := range cases {
		if got := InferDelimiter(c.fileName); got != c.want {
			t.Errorf("InferDelimiter(%q) = %q, want %q", c.fileName, got, c.want)
		}
	}
}
