package blogs

import (
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Filter holds exact-match list filters. Empty fields, and the value "all",
// mean no filtering on that field.
type Filter struct {
	Category    string
	Subcategory string
	Status      string
}

func FilterFromQuery(q url.Values) Filter {
	return Filter{
		Category:    strings.TrimSpace(q.Get("category")),
		Subcategory: strings.TrimSpace(q.Get("subcategory")),
		Status:      strings.TrimSpace(q.Get("status")),
	}
}

func (f Filter) BSON() bson.M {
	m := bson.M{}
	for field, v := range map[string]string{
		"category":    f.Category,
		"subcategory": f.Subcategory,
		"status":      f.Status,
	} {
		if active(v) {
			m[field] = v
		}
	}
	return m
}

func active(v string) bool {
	return v != "" && !strings.EqualFold(v, "all")
}
