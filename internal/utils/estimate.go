package utils

import "encoding/json"

// fallbackEntrySize is charged for payloads that cannot be serialized.
const fallbackEntrySize = 64

// EstimateSize returns a best-effort byte size for an arbitrary payload,
// used for memory accounting only. Strings and byte slices are measured
// directly; everything else by serialized length, falling back to a fixed
// estimate when serialization fails.
func EstimateSize(value any) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return int64(len(v))
	case []byte:
		return int64(len(v))
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fallbackEntrySize
	}
	return int64(len(data))
}
