package app

import "strings"

const maxTracedQueryLength = 512

// formatDBQueryForTrace collapses whitespace so multi-line statements read as
// one span attribute, cutting very long ones.
func formatDBQueryForTrace(query string) string {
	flat := strings.Join(strings.Fields(query), " ")
	if len(flat) <= maxTracedQueryLength {
		return flat
	}
	return flat[:maxTracedQueryLength] + "..."
}
