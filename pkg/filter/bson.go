package filter

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
)

// ToBSON lowers an expression tree to a MongoDB filter document.
func ToBSON(n Node) bson.M {
	switch v := n.(type) {
	case nil:
		return bson.M{}
	case All:
		return bson.M{}
	case Eq:
		return bson.M{v.Field: v.Value}
	case In:
		return bson.M{v.Field: bson.M{"$in": v.Values}}
	case Range:
		bounds := bson.M{}
		if v.From != nil {
			bounds["$gte"] = v.From
		}
		if v.To != nil {
			bounds["$lte"] = v.To
		}
		return bson.M{v.Field: bounds}
	case And:
		clauses := make([]bson.M, 0, len(v.Nodes))
		for _, child := range v.Nodes {
			clauses = append(clauses, ToBSON(child))
		}
		return bson.M{"$and": clauses}
	case Or:
		clauses := make([]bson.M, 0, len(v.Nodes))
		for _, child := range v.Nodes {
			clauses = append(clauses, ToBSON(child))
		}
		return bson.M{"$or": clauses}
	default:
		return bson.M{}
	}
}

// MarshalJSON renders the lowered filter for storage alongside generated
// report metadata, so a stored report can be reproduced later.
func MarshalJSON(n Node) string {
	raw, err := json.Marshal(ToBSON(n))
	if err != nil {
		return "{}"
	}
	return string(raw)
}
