package store

import (
	"encoding/json"
	"sort"
)

// sortedKeys gives batch writes a stable order so SQL statements are
// issued deterministically.
func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
