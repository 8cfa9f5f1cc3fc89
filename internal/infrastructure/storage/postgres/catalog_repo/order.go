package catalog_repo

import "strings"

// orderClause sanitizes a user-supplied ordering against a column
// whitelist. Accepts "col", "col ASC", "col DESC" and comma-joined
// combinations; anything unknown falls back to the default.
func orderClause(orderBy string, allowed map[string]bool, fallback string) string {
	if orderBy == "" {
		return fallback
	}

	var parts []string
	for _, piece := range strings.Split(orderBy, ",") {
		fields := strings.Fields(strings.TrimSpace(piece))
		if len(fields) == 0 || len(fields) > 2 {
			continue
		}
		col := strings.ToLower(fields[0])
		if !allowed[col] {
			continue
		}
		dir := ""
		if len(fields) == 2 {
			switch strings.ToUpper(fields[1]) {
			case "ASC":
				dir = " ASC"
			case "DESC":
				dir = " DESC"
			default:
				continue
			}
		}
		parts = append(parts, col+dir)
	}

	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, ", ")
}
