package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/api_context"
	"github.com/fhuszti/assets-ms-go/internal/handler/api"
	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/golang-jwt/jwt/v4"
)

const (
	dstIssuer = "core"
	// tolerated clock drift between core and this service on iat
	iatLeeway = 30 * time.Second
)

var (
	errMissingToken = errors.New("missing bearer token")
	errBadToken     = errors.New("unauthorized")
	errBadIssuer    = errors.New("bad issuer")
	errBadAudience  = errors.New("bad audience")
	errExpired      = errors.New("token expired")
	errFutureIAT    = errors.New("invalid iat")
	errMissingSub   = errors.New("missing sub")
)

// dstClaims is the payload of a delegated service token. Roles come from the
// roles claim, or from a space separated OAuth scope when roles is absent.
type dstClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
	Scope string   `json:"scope,omitempty"`
}

func (c *dstClaims) grantedRoles() []string {
	if len(c.Roles) > 0 {
		return c.Roles
	}
	return strings.Fields(c.Scope)
}

type dstVerifier struct {
	parser   *jwt.Parser
	keyFunc  jwt.Keyfunc
	audience string
	now      func() time.Time
}

// verify checks the Authorization header value and returns the token claims.
func (v *dstVerifier) verify(header string) (*dstClaims, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, errMissingToken
	}

	claims := &dstClaims{}
	tok, err := v.parser.ParseWithClaims(raw, claims, v.keyFunc)
	if err != nil || !tok.Valid {
		return nil, errBadToken
	}

	now := v.now()
	switch {
	case !claims.VerifyIssuer(dstIssuer, true):
		return nil, errBadIssuer
	case !claims.VerifyAudience(v.audience, true):
		return nil, errBadAudience
	case !claims.VerifyExpiresAt(now, true):
		return nil, errExpired
	case !claims.VerifyIssuedAt(now.Add(iatLeeway), false):
		return nil, errFutureIAT
	case claims.Subject == "":
		return nil, errMissingSub
	}
	return claims, nil
}

// WithDSTAuth validates a short-lived Bearer JWT (DST only) issued by core
// for the given audience.
func WithDSTAuth(jwtPublicKeyPEM, audience string) func(http.Handler) http.Handler {
	// Passthrough if no public key is provided
	if jwtPublicKeyPEM == "" {
		return func(next http.Handler) http.Handler { return next }
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(jwtPublicKeyPEM))
	if err != nil {
		panic(fmt.Sprintf("invalid Core RSA public key: %v", err))
	}

	v := &dstVerifier{
		// claims are checked by verify so each failure gets its own message
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
			jwt.WithoutClaimsValidation(),
		),
		keyFunc: func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodRS256 {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return pubKey, nil
		},
		audience: audience,
		now:      time.Now,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := v.verify(r.Header.Get("Authorization"))
			if err != nil {
				logger.Debugf(r.Context(), "rejected DST on %s %s: %v", r.Method, r.URL.Path, err)
				api.WriteError(w, http.StatusUnauthorized, err.Error(), nil)
				return
			}

			ctx := api_context.WithAuth(r.Context(), claims.Subject, claims.grantedRoles())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
