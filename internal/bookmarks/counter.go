package bookmarks

import "strings"

// rootKeys are the conventional bookmark container keys inside an untyped
// object (the "roots" document of Chromium-family browsers).
var rootKeys = map[string]struct{}{
	"bookmark_bar": {},
	"other":        {},
	"synced":       {},
}

// Count returns the number of leaf bookmark entries in a decoded document.
// The traversal is an explicit worklist rather than recursion, so arbitrarily
// deep or adversarial documents cannot exhaust the stack. Unrecognized shapes
// contribute zero.
func Count(doc any) int {
	count := 0
	stack := []any{doc}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := node.(type) {
		case map[string]any:
			switch v["type"] {
			case "url":
				count++
			case "folder":
				if children, ok := v["children"]; ok {
					stack = append(stack, children)
				}
			default:
				for key, value := range v {
					if isBookmarkContainerKey(key) {
						stack = append(stack, value)
					}
				}
			}
		case []any:
			for _, item := range v {
				stack = append(stack, item)
			}
		}
	}
	return count
}

// isBookmarkContainerKey reports whether an untyped object key is worth
// descending into when looking for bookmark entries.
func isBookmarkContainerKey(key string) bool {
	if _, ok := rootKeys[key]; ok {
		return true
	}
	return strings.Contains(strings.ToLower(key), "bookmarks")
}
