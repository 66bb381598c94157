package db

import (
	"regexp"
	"strings"

	"github.com/ukydev/travel-agency/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PackageQuery filters the packages collection. Zero values mean "any".
type PackageQuery struct {
	Status models.Status
	Search string
}

// CarQuery filters the cars collection. Zero values mean "any".
type CarQuery struct {
	Status models.Status
	Search string
}

var (
	packageSearchFields = []string{"title", "destination"}
	carSearchFields     = []string{"name", "brand", "model"}
)

// Filter maps the query to a Mongo filter document.
func (q PackageQuery) Filter() bson.M {
	return buildFilter(q.Status, q.Search, packageSearchFields)
}

// Matches evaluates the query against a row in memory.
func (q PackageQuery) Matches(row models.PackageRow) bool {
	if q.Status != "" && row.Status != q.Status {
		return false
	}
	return containsAny(q.Search, row.Title, row.Destination)
}

// Filter maps the query to a Mongo filter document.
func (q CarQuery) Filter() bson.M {
	return buildFilter(q.Status, q.Search, carSearchFields)
}

// Matches evaluates the query against a row in memory.
func (q CarQuery) Matches(row models.CarRow) bool {
	if q.Status != "" && row.Status != q.Status {
		return false
	}
	return containsAny(q.Search, row.Name, row.Brand, row.Model)
}

func buildFilter(status models.Status, search string, fields []string) bson.M {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	term := strings.TrimSpace(search)
	if term == "" {
		return filter
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	filter["$or"] = or
	return filter
}

// containsAny reports whether any value contains search, ignoring case.
// A blank search matches everything.
func containsAny(search string, values ...string) bool {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return true
	}
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}
