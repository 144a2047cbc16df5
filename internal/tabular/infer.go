package tabular

import "strings"

// InferToolName derives the tool identity from a file name: the text before
// the first dot, lower-cased. "decoupler_results.csv" -> "decoupler_results".
func InferToolName(fileName string) string {
	name, _, _ := strings.Cut(fileName, ".")
	return strings.ToLower(name)
}

// InferDelimiter picks the field delimiter from the file name: tab when the
// name mentions "tsv" anywhere, comma otherwise.
func InferDelimiter(fileName string) rune {
	if strings.Contains(fileName, "tsv") {
		return '\t'
	}
	return ','
}
