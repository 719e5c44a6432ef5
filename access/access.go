// Package access is the tenant authorization gate consulted by every
// mutating item operation.
package access

import (
	"context"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
	"github.com/tech-manthan/mernspace-catalog-service/models"
)

// Identity is the caller's authenticated role and tenant, supplied by the
// token middleware. The guard never fetches it.
type Identity struct {
	ID     string
	Role   models.Role
	Tenant string
}

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// CanMutate decides whether the caller may mutate an item owned by
// itemTenant. Admins pass for any tenant, managers only within their own,
// customers never. Denial is Forbidden, distinct from NotFound; callers
// resolve existence first.
func CanMutate(role models.Role, callerTenant, itemTenant string) error {
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleManager:
		if callerTenant == itemTenant {
			return nil
		}
		return apperror.Forbidden("you are not allowed to access this resource")
	default:
		return apperror.Forbidden("you are not allowed to access this resource")
	}
}
