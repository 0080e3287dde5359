package report

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Flatten converts a nested document into a single-level mapping with
// dot-joined path keys. Nil leaves become "" so every row exports the same
// columns; arrays are joined into one comma-delimited string (the convention
// used across the codebase). Idempotent on already-flat records.
func Flatten(record map[string]any) FlatRecord {
	out := make(FlatRecord, len(record))
	flattenInto(out, "", record)
	return out
}

func flattenInto(out FlatRecord, prefix string, record map[string]any) {
	for key, value := range record {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case nil:
			out[path] = ""
		case map[string]any:
			flattenInto(out, path, v)
		case bson.M:
			flattenInto(out, path, map[string]any(v))
		case bson.D:
			flattenInto(out, path, v.Map())
		case []any:
			out[path] = joinArray(v)
		case primitive.A:
			out[path] = joinArray([]any(v))
		case primitive.ObjectID:
			out[path] = v.Hex()
		default:
			out[path] = v
		}
	}
}

func joinArray(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, fmt.Sprint(item))
	}
	return strings.Join(parts, ", ")
}
