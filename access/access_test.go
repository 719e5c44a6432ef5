package access

import (
	"context"
	"testing"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
	"github.com/tech-manthan/mernspace-catalog-service/models"
)

func TestCanMutate(t *testing.T) {
	cases := []struct {
		name         string
		role         models.Role
		callerTenant string
		itemTenant   string
		allowed      bool
	}{
		{"admin any tenant", models.RoleAdmin, "", "T2", true},
		{"admin own tenant", models.RoleAdmin, "T1", "T1", true},
		{"manager own tenant", models.RoleManager, "T1", "T1", true},
		{"manager cross tenant", models.RoleManager, "T1", "T2", false},
		{"customer own tenant", models.RoleCustomer, "T1", "T1", false},
		{"unknown role", models.Role("driver"), "T1", "T1", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CanMutate(c.role, c.callerTenant, c.itemTenant)
			if c.allowed && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !c.allowed {
				if err == nil {
					t.Fatal("expected deny, got allow")
				}
				if !apperror.IsKind(err, apperror.KindForbidden) {
					t.Fatalf("denial must be Forbidden, got %v", err)
				}
			}
		})
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	id := Identity{ID: "u1", Role: models.RoleManager, Tenant: "T1"}
	ctx := WithIdentity(context.Background(), id)

	got, ok := IdentityFrom(ctx)
	if !ok {
		t.Fatal("identity not found in context")
	}
	if got != id {
		t.Fatalf("got %+v, want %+v", got, id)
	}

	if _, ok := IdentityFrom(context.Background()); ok {
		t.Fatal("empty context should carry no identity")
	}
}
