package datamodel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// segmentRegex parses a single segment of a path, e.g. `name` or `name[1]`.
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(?:\[(\d+)\])?$`)

// isValidSegmentName checks for names that match the pattern but are not
// usable as data model fields.
func isValidSegmentName(name string) bool {
	return name != "-"
}

// ParsePath creates a Path by parsing its canonical dotted representation.
func ParsePath(raw string) (Path, error) {
	if raw == "" {
		return nil, &InvalidPathError{Path: raw, Reason: "path cannot be empty"}
	}

	var path Path
	for _, segmentStr := range strings.Split(raw, ".") {
		if segmentStr == "" {
			return nil, &InvalidPathError{Path: raw, Reason: "path contains empty segment"}
		}

		matches := segmentRegex.FindStringSubmatch(segmentStr)
		if matches == nil {
			return nil, &InvalidPathError{Path: raw, Reason: describeSegment(segmentStr)}
		}

		name := matches[1]
		if !isValidSegmentName(name) {
			return nil, &InvalidPathError{Path: raw, Reason: fmt.Sprintf("invalid segment name %q", name)}
		}

		segment := NewSegment(name)
		if matches[2] != "" {
			index, err := strconv.Atoi(matches[2])
			if err != nil {
				return nil, &InvalidPathError{Path: raw, Reason: fmt.Sprintf("row index out of range in %q", segmentStr)}
			}
			segment.Index = index
		}
		path = append(path, segment)
	}

	return path, nil
}

// MustParsePath is like ParsePath but panics on error. Intended for tests and
// package-level constants.
func MustParsePath(raw string) Path {
	p, err := ParsePath(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// describeSegment explains why a segment failed to match.
func describeSegment(segment string) string {
	open := strings.Count(segment, "[")
	closing := strings.Count(segment, "]")
	switch {
	case open != closing:
		return fmt.Sprintf("unbalanced brackets in segment %q", segment)
	case open > 1:
		return fmt.Sprintf("more than one row index in segment %q", segment)
	case open == 1:
		start := strings.IndexByte(segment, '[')
		end := strings.IndexByte(segment, ']')
		if end < start || end != len(segment)-1 {
			return fmt.Sprintf("misplaced brackets in segment %q", segment)
		}
		if start == 0 {
			return fmt.Sprintf("missing name before row index in segment %q", segment)
		}
		return fmt.Sprintf("non-numeric row index %q in segment %q", segment[start+1:end], segment)
	default:
		return fmt.Sprintf("invalid segment format %q", segment)
	}
}
