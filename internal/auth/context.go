package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/metadata"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleSeller Role = "SELLER"
	RoleBuyer  Role = "BUYER"
)

const (
	HeaderUserID = "X-User-ID"
	HeaderRole   = "X-User-Role"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Principal is the caller as asserted by the API gateway. An empty UserID is an anonymous buyer.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

func (p Principal) Anonymous() bool { return p.UserID == "" }

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the principal stored by Middleware, falling back to
// gRPC incoming metadata (x-user-id / x-user-role).
func FromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(ctxKey{}).(Principal); ok {
		return p
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		var p Principal
		if val := md.Get("x-user-id"); len(val) > 0 {
			p.UserID = val[0]
		}
		if val := md.Get("x-user-role"); len(val) > 0 {
			p.Role = parseRole(val[0])
		}
		if p.Role == "" {
			p.Role = RoleBuyer
		}
		return p
	}
	return Principal{Role: RoleBuyer}
}

func parseRole(s string) Role {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return r
	}
	return RoleBuyer
}

// Middleware copies the gateway identity headers into the request context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := Principal{
			UserID: strings.TrimSpace(c.GetHeader(HeaderUserID)),
			Role:   parseRole(c.GetHeader(HeaderRole)),
		}
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// Authorize checks that p is signed in and holds one of roles.
func Authorize(p Principal, roles ...Role) error {
	if p.Anonymous() {
		return ErrUnauthenticated
	}
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
