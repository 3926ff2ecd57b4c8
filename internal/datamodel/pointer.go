package datamodel

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// ToJSONPointer converts a dotted path into RFC 6901 pointer notation, turning
// every row index into its own token: `a.b[2].c` becomes `/a/b/2/c`.
func ToJSONPointer(dotted string) (string, error) {
	p, err := ParsePath(dotted)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, segment := range p {
		sb.WriteRune('/')
		sb.WriteString(pointerEscaper.Replace(segment.Name))
		if segment.HasIndex() {
			sb.WriteRune('/')
			sb.WriteString(strconv.Itoa(segment.Index))
		}
	}
	return sb.String(), nil
}

// FromJSONPointer reverses ToJSONPointer. A numeric token is attached as a row
// index to the token before it.
func FromJSONPointer(pointer string) (string, error) {
	if !strings.HasPrefix(pointer, "/") {
		return "", &InvalidPathError{Path: pointer, Reason: "pointer must start with '/'"}
	}

	var p Path
	for _, token := range strings.Split(pointer[1:], "/") {
		if token == "" {
			return "", &InvalidPathError{Path: pointer, Reason: "pointer contains empty token"}
		}
		if index, err := strconv.Atoi(token); err == nil && isDigits(token) {
			if len(p) == 0 {
				return "", &InvalidPathError{Path: pointer, Reason: "pointer starts with a row index"}
			}
			last := &p[len(p)-1]
			if last.HasIndex() {
				return "", &InvalidPathError{Path: pointer, Reason: fmt.Sprintf("consecutive row indices at %q", token)}
			}
			last.Index = index
			continue
		}
		p = append(p, NewSegment(pointerUnescaper.Replace(token)))
	}

	// Re-parse so that the dotted form obeys the same rules as any other path.
	dotted := p.String()
	if _, err := ParsePath(dotted); err != nil {
		return "", err
	}
	return dotted, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
