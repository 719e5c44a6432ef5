package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"github.com/tech-manthan/mernspace-catalog-service/access"
	"github.com/tech-manthan/mernspace-catalog-service/models"
	"github.com/tech-manthan/mernspace-catalog-service/utils"
)

// Claims carried by the access token the identity service issues.
type Claims struct {
	Role   string `json:"role"`
	Tenant string `json:"tenant"`
	jwt.RegisteredClaims
}

type Auth struct {
	secret []byte
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

func (a *Auth) parseToken(r *http.Request) (*Claims, bool) {
	header := r.Header.Get("Authorization")
	if len(header) < 8 || !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(header[7:], claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}

// Authenticate rejects requests without a valid bearer token and stores
// the caller identity in the request context.
func (a *Auth) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, ok := a.parseToken(r)
		if !ok {
			utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{"error": "invalid token"})
			return
		}

		identity := access.Identity{
			ID:     claims.Subject,
			Role:   models.Role(claims.Role),
			Tenant: claims.Tenant,
		}
		next(w, r.WithContext(access.WithIdentity(r.Context(), identity)), ps)
	}
}

// CanAccess gates a handler to the given roles. Runs after Authenticate.
func CanAccess(next httprouter.Handle, roles ...models.Role) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, ok := access.IdentityFrom(r.Context())
		if !ok {
			utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{"error": "invalid token"})
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				next(w, r, ps)
				return
			}
		}
		utils.RespondWithJSON(w, http.StatusForbidden, utils.M{"error": "unauthorized access"})
	}
}
