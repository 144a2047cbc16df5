package dialogue

import "strings"

// defaultKnownTools are the analysis methods recognised out of the box.
var defaultKnownTools = []string{"decoupler", "progeny", "dorothea", "gsea"}

// Registry is the ordered list of known tool identifiers. A file belongs to
// a known tool when one of these identifiers appears, case-insensitively,
// anywhere in the file name.
type Registry []string

// DefaultRegistry returns the built-in tool list.
func DefaultRegistry() Registry {
	return append(Registry(nil), defaultKnownTools...)
}

// ParseRegistry builds a Registry from a comma-separated configuration
// value. Entries are trimmed and lower-cased; an empty value yields the
// default registry.
func ParseRegistry(values string) Registry {
	var reg Registry
	for _, v := range strings.Split(values, ",") {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			reg = append(reg, v)
		}
	}
	if len(reg) == 0 {
		return DefaultRegistry()
	}
	return reg
}

// Match reports whether the file name mentions any known tool.
func (r Registry) Match(fileName string) bool {
	lower := strings.ToLower(fileName)
	for _, tool := range r {
		if strings.Contains(lower, strings.ToLower(tool)) {
			return true
		}
	}
	return false
}

// Names returns a copy of the registry entries, in order.
func (r Registry) Names() []string {
	return append([]string(nil), r...)
}
