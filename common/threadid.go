package common

import (
	"regexp"
	"strings"
)

// threadTokenPattern matches the canonical LinkedIn thread token shape:
// the "2-" marker followed by a base64-ish run.
var threadTokenPattern = regexp.MustCompile(`2-[A-Za-z0-9_=\-]+`)

// ResolveThreadId normalizes any textual encoding of a conversation reference
// into the canonical thread token. The extension observes the same thread in
// several shapes:
//
//	"2-abcXYZ=="                                                  => "2-abcXYZ=="
//	"urn:li:msg_conversation:(urn:li:fsd_profile:999,2-abcXYZ==)" => "2-abcXYZ=="
//	"urn:li:fsd_conversation:2-abcXYZ=="                          => "2-abcXYZ=="
//
// The function is pure and total: unknown shapes fall back to the last
// comma-separated segment with a single trailing ")" stripped, and an empty
// input resolves to "".
func ResolveThreadId(raw string) string {
	if raw == "" {
		return ""
	}

	if token := threadTokenPattern.FindString(raw); token != "" {
		return token
	}

	// Fallback: last tuple segment, e.g. "(...,token)" => "token".
	parts := strings.Split(raw, ",")
	last := parts[len(parts)-1]
	return strings.TrimSuffix(last, ")")
}
