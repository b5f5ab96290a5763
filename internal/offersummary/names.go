package offersummary

import "strings"

// ComposeName joins the present name parts in title, first, last, suffix order.
// It returns "" when no part is present; callers apply their own fallback.
func ComposeName(parts NameParts) string {
	present := make([]string, 0, 4)
	for _, p := range []string{parts.TitleBefore, parts.FirstName, parts.LastName, parts.TitleAfter} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			present = append(present, trimmed)
		}
	}
	return strings.Join(present, " ")
}
