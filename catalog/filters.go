package catalog

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
	"github.com/tech-manthan/mernspace-catalog-service/utils"
)

// ParseFilters reads the optional item filters from the query string.
// Absent parameters stay nil and match everything.
func ParseFilters(r *http.Request) (Filters, error) {
	f := Filters{}

	if v := r.URL.Query().Get("tenantId"); v != "" {
		f.TenantID = &v
	}
	if v := r.URL.Query().Get("categoryId"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return f, apperror.Validation("categoryId must be a valid object id")
		}
		f.CategoryID = &id
	}
	f.IsPublish = utils.ParseBoolParam(r, "isPublish")

	return f, nil
}
