package diff

// Set compares two lists as unordered sets. Duplicates collapse; output
// keeps first-seen order (from for equal and deleted, to for inserted).
func Set(from []string, to []string) SetDiff {
	inFrom := make(map[string]struct{}, len(from))
	for _, v := range from {
		inFrom[v] = struct{}{}
	}
	inTo := make(map[string]struct{}, len(to))
	for _, v := range to {
		inTo[v] = struct{}{}
	}

	result := SetDiff{
		Equal:    make([]string, 0),
		Inserted: make([]string, 0),
		Deleted:  make([]string, 0),
	}
	for _, v := range unique(from) {
		if _, ok := inTo[v]; ok {
			result.Equal = append(result.Equal, v)
		} else {
			result.Deleted = append(result.Deleted, v)
		}
	}
	for _, v := range unique(to) {
		if _, ok := inFrom[v]; !ok {
			result.Inserted = append(result.Inserted, v)
		}
	}
	return result
}

func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
