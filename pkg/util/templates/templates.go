package templates

import (
	"strings"
)

const indent = "  "

// LongDesc normalizes a command's long description: strips the surrounding
// indentation that keeps raw string literals readable in source.
func LongDesc(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(dedent(s))
}

// Examples normalizes a command's example block, indenting each line by two
// spaces the way cobra renders usage examples.
func Examples(s string) string {
	if s == "" {
		return s
	}
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(dedent(s)), "\n") {
		if line == "" {
			out = append(out, line)
			continue
		}
		out = append(out, indent+line)
	}
	return strings.Join(out, "\n")
}

func dedent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(line, " \t")
	}
	return strings.Join(lines, "\n")
}
