package report

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Logical field names. Historical records use inconsistent concrete field
// names for the same logical value; the candidate tables below are declared
// once so the query builder and the executors probe in the same order.
const (
	FieldDate      = "date"
	FieldMachine   = "machine"
	FieldOwner     = "owner"
	FieldWorkplace = "workplace"
)

var fieldCandidates = map[string][]string{
	FieldDate:      {"fecha", "createdAt", "date", "datos.fecha", "datos.createdAt"},
	FieldMachine:   {"machineId", "maquinaId", "datos.machineId", "datos.maquinaId"},
	FieldOwner:     {"userId", "createdBy", "datos.userId"},
	FieldWorkplace: {"workplaceName", "workplace", "datos.workplaceName"},
}

// Machine documents encode their owning user under any of these fields.
var machineOwnerCandidates = []string{"userId", "createdBy", "workplaceName", "creatorId"}

// ResolveField probes the candidate paths for a logical field name and
// returns the first present value. Presence means the path is defined, not
// that the value is truthy. Missing intermediate objects are not an error.
func ResolveField(record map[string]any, logicalName string) (any, bool) {
	candidates, ok := fieldCandidates[logicalName]
	if !ok {
		return nil, false
	}
	return resolvePaths(record, candidates)
}

func resolvePaths(record map[string]any, paths []string) (any, bool) {
	for _, path := range paths {
		if value, ok := lookupPath(record, path); ok {
			return value, true
		}
	}
	return nil, false
}

func lookupPath(record map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	current := record
	for i, segment := range segments {
		value, ok := current[segment]
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return value, true
		}
		switch v := value.(type) {
		case map[string]any:
			current = v
		case bson.M:
			current = map[string]any(v)
		case bson.D:
			current = v.Map()
		default:
			return nil, false
		}
	}
	return nil, false
}
