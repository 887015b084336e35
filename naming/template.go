package naming

import (
	"fmt"
	"regexp"
	"strings"
)

var paramName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type segment struct {
	literal string
	param   string
}

// parseTemplate splits a name template into segments. Parameters are
// written ":name" or "{name}".
func parseTemplate(template string) ([]segment, error) {
	trimmed := strings.Trim(strings.TrimSpace(template), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: %q is empty", ErrInvalidTemplate, template)
	}

	parts := strings.Split(trimmed, "/")
	segments := make([]segment, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidTemplate, template)
		}
		if strings.Contains(part, "*") {
			return nil, fmt.Errorf("%w: %q contains a wildcard", ErrInvalidTemplate, template)
		}

		name, isParam := paramOf(part)
		if !isParam {
			if strings.ContainsAny(part, ":{}") {
				return nil, fmt.Errorf("%w: malformed segment %q", ErrInvalidTemplate, part)
			}
			segments = append(segments, segment{literal: part})
			continue
		}

		if !paramName.MatchString(name) {
			return nil, fmt.Errorf("%w: invalid parameter name %q", ErrInvalidTemplate, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrInvalidTemplate, name)
		}
		seen[name] = true
		segments = append(segments, segment{param: name})
	}

	return segments, nil
}

func paramOf(part string) (string, bool) {
	switch {
	case strings.HasPrefix(part, ":"):
		return part[1:], true
	case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
		return part[1 : len(part)-1], true
	default:
		return "", false
	}
}

// routePattern renders segments in chi's route syntax.
func routePattern(segments []segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		if s.param != "" {
			b.WriteString("{" + s.param + "}")
		} else {
			b.WriteString(s.literal)
		}
	}
	return b.String()
}
