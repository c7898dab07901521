package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"event_marketplace/internal/domain/entities"
	"event_marketplace/pkg"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid bearer token", http.StatusUnauthorized)

// Claims is the bearer token payload. Tokens are issued by the identity
// service; this service only verifies them.
type Claims struct {
	Sub   string `json:"sub"`
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// RequireAuth rejects requests without a valid HS256 bearer token and stores
// the caller's Actor on the gin context.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		actor, err := a.Parse(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

func (a *Authenticator) Parse(token string) (entities.Actor, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return entities.Actor{}, err
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return entities.Actor{}, errors.New("invalid token")
	}
	role := entities.Role(strings.ToLower(claims.Role))
	switch role {
	case entities.RoleClient, entities.RoleVendor, entities.RoleAdmin:
	default:
		return entities.Actor{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	if claims.Sub == "" {
		return entities.Actor{}, errors.New("token has no subject")
	}
	return entities.Actor{UserID: claims.Sub, Role: role, Email: claims.Email}, nil
}

// Issue signs a token for actor. Used by local tooling and tests.
func (a *Authenticator) Issue(actor entities.Actor, ttl time.Duration) (string, error) {
	claims := Claims{
		Sub:   actor.UserID,
		Role:  string(actor.Role),
		Email: actor.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func ActorFrom(c *gin.Context) (entities.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return entities.Actor{}, false
	}
	actor, ok := v.(entities.Actor)
	return actor, ok
}

// SetActor stores actor on c, for handlers mounted without RequireAuth in
// tests.
func SetActor(actor entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(actorKey, actor)
		c.Next()
	}
}
