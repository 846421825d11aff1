// Package query translates flat query-string parameters into the filter,
// sort, projection and pagination directives applied to list reads.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	DefaultPage  = int64(1)
	DefaultLimit = int64(100)
	MaxLimit     = int64(500)
)

// Control keys that never become filter fields.
var reserved = map[string]bool{
	"page":   true,
	"limit":  true,
	"sort":   true,
	"fields": true,
}

var comparisonKey = regexp.MustCompile(`^(.+)\[(gte|gt|lte|lt)\]$`)

type Features struct {
	Filter     bson.M
	Sort       bson.D
	Projection bson.D
	Page       int64
	Limit      int64
	Skip       int64
}

// Parse builds the read directives from raw query parameters, e.g. the map
// fiber's c.Queries() returns. Unknown keys become equality filters;
// `field[gte]`-style keys become range operators.
func Parse(params map[string]string) Features {
	f := Features{
		Filter: bson.M{},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for key, val := range params {
		if reserved[key] {
			continue
		}
		if m := comparisonKey.FindStringSubmatch(key); m != nil {
			field, op := m[1], "$"+m[2]
			sub, ok := f.Filter[field].(bson.M)
			if !ok {
				sub = bson.M{}
				f.Filter[field] = sub
			}
			sub[op] = coerce(val)
			continue
		}
		f.Filter[key] = coerce(val)
	}

	if raw := params["page"]; raw != "" {
		if p, err := strconv.ParseInt(raw, 10, 64); err == nil && p > 0 {
			f.Page = p
		}
	}
	if raw := params["limit"]; raw != "" {
		if l, err := strconv.ParseInt(raw, 10, 64); err == nil && l > 0 {
			f.Limit = min(l, MaxLimit)
		}
	}
	f.Skip = (f.Page - 1) * f.Limit

	f.Sort = parseSort(params["sort"])
	f.Projection = parseFields(params["fields"])
	return f
}

// TotalPages returns ceil(total/limit) for response metadata.
func (f Features) TotalPages(total int64) int64 {
	if f.Limit <= 0 {
		return 0
	}
	return (total + f.Limit - 1) / f.Limit
}

func parseSort(raw string) bson.D {
	if raw == "" {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	var sort bson.D
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		dir := 1
		if strings.HasPrefix(field, "-") {
			dir = -1
			field = field[1:]
		}
		sort = append(sort, bson.E{Key: field, Value: dir})
	}
	if len(sort) == 0 {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	return sort
}

func parseFields(raw string) bson.D {
	if raw == "" {
		return nil
	}
	var proj bson.D
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		val := 1
		if strings.HasPrefix(field, "-") {
			val = 0
			field = field[1:]
		}
		proj = append(proj, bson.E{Key: field, Value: val})
	}
	return proj
}

// coerce keeps numeric comparisons numeric; everything else stays a string.
func coerce(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if fl, err := strconv.ParseFloat(raw, 64); err == nil {
		return fl
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	return raw
}
