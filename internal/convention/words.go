package convention

import "strings"

// Words is the lowercase word sequence of an identifier, independent of its
// surface convention. employee_count and employeeCount share Words{"employee", "count"}.
type Words []string

// Key is the canonical grouping key: words joined by a single space.
func (w Words) Key() string {
	return strings.Join(w, " ")
}

// Snake renders the words in snake_case.
func (w Words) Snake() string {
	return strings.Join(w, "_")
}
