package models

import "go.mongodb.org/mongo-driver/v2/bson"

// Whitelist maps the JSON field names a client may submit on a partial update
// to the bson fields they patch. Anything not listed is silently dropped, so a
// request can never touch counters, ownership or role fields.
type Whitelist map[string]string

// Build turns a decoded request body into a $set document containing only
// whitelisted fields.
func (w Whitelist) Build(body map[string]any) bson.M {
	set := bson.M{}
	for jsonKey, bsonKey := range w {
		if v, ok := body[jsonKey]; ok {
			set[bsonKey] = v
		}
	}
	return set
}
