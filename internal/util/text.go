package util

import (
	"regexp"
	"strings"
)

var reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// CleanName maps a header to lower snake case: "Producer Type" -> "producer_type",
// "GENERATION\n(Megawatthours)" -> "generation_megawatthours".
func CleanName(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = reNonAlnum.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

func CleanNames(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = CleanName(c)
	}
	return out
}

// TrimSuffixFold strips suffix from s, treating CRLF and LF as the same break.
func TrimSuffixFold(s, suffix string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	suffix = strings.ReplaceAll(suffix, "\r\n", "\n")
	return strings.TrimSpace(strings.TrimSuffix(s, suffix))
}

func StringPtr(v string) *string { return &v }
