package sanitizer

import "strings"

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail lowercases and trims; emails are compared byte-for-byte
// against the unique index.
func NormalizeEmail(email string) string {
	p := Pipeline{trimAndLower}
	return p.Apply(email)
}
