package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/api_context"
	"github.com/golang-jwt/jwt/v4"
)

func TestWithDSTAuth(t *testing.T) {
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	middleware := WithDSTAuth(string(pubPEM), "assets")

	baseClaims := jwt.MapClaims{
		"iss":   "core",
		"aud":   "assets",
		"exp":   time.Now().Add(time.Minute).Unix(),
		"iat":   time.Now().Unix(),
		"sub":   "user-123",
		"roles": []any{"admin", "dst"},
	}

	tests := []struct {
		name           string
		modifyClaims   func(jwt.MapClaims) jwt.MapClaims
		tokenFactory   func(jwt.MapClaims) (string, error)
		authHeader     string
		wantStatus     int
		expectNextCall bool
	}{
		{
			name:           "missing header",
			authHeader:     "",
			wantStatus:     http.StatusUnauthorized,
			expectNextCall: false,
		},
		{
			name:           "wrong prefix",
			authHeader:     "Token abc",
			wantStatus:     http.StatusUnauthorized,
			expectNextCall: false,
		},
		{
			name:         "bad signature",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims { return c },
			tokenFactory: func(claims jwt.MapClaims) (string, error) {
				otherKey, err := rsa.GenerateKey(rand.Reader, 1024)
				if err != nil {
					return "", err
				}
				return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(otherKey)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:         "wrong method",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims { return c },
			tokenFactory: func(claims jwt.MapClaims) (string, error) {
				return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "bad issuer",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims {
				c = cloneClaims(c)
				c["iss"] = "other"
				return c
			},
			tokenFactory: func(claims jwt.MapClaims) (string, error) {
				return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privKey)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "bad audience",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims {
				c = cloneClaims(c)
				c["aud"] = "other"
				return c
			},
			tokenFactory: func(claims jwt.MapClaims) (string, error) {
				return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privKey)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims {
				c = cloneClaims(c)
				c["exp"] = time.Now().Add(-time.Minute).Unix()
				return c
			},
			tokenFactory: func(claims jwt.MapClaims) (string, error) {
				return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privKey)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "future iat",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims {
				c = cloneClaims(c)
				c["iat"] = time.Now().Add(time.Minute).Unix()
				return c
			},
			tokenFactory: func(claims jwt.MapClaims) (string, error) {
				return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privKey)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing sub",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims {
				c = cloneClaims(c)
				delete(c, "sub")
				return c
			},
			tokenFactory: func(claims jwt.MapClaims) (string, error) {
				return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privKey)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:         "valid token",
			modifyClaims: func(c jwt.MapClaims) jwt.MapClaims { return cloneClaims(c) },
			tokenFactory: func(claims jwt.MapClaims) (string, error) {
				return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privKey)
			},
			wantStatus:     http.StatusNoContent,
			expectNextCall: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				rawUserID := r.Context().Value(api_context.AuthUserIDKey)
				roles, _ := api_context.AuthRolesFromContext(r.Context())
				if sub, ok := rawUserID.(string); ok {
					w.Header().Set("X-User-ID", sub)
				}
				w.Header().Set("X-Roles", strings.Join(roles, ","))
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			} else if tc.tokenFactory != nil {
				claims := cloneClaims(baseClaims)
				if tc.modifyClaims != nil {
					claims = tc.modifyClaims(claims)
				}
				token, err := tc.tokenFactory(claims)
				if err != nil {
					t.Fatalf("sign token: %v", err)
				}
				req.Header.Set("Authorization", "Bearer "+token)
			}

			rec := httptest.NewRecorder()

			handler := middleware(next)
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if nextCalled != tc.expectNextCall {
				t.Fatalf("nextCalled = %v; want %v", nextCalled, tc.expectNextCall)
			}
			if tc.expectNextCall {
				if got := rec.Header().Get("X-User-ID"); got != baseClaims["sub"].(string) {
					t.Fatalf("user id = %q; want %q", got, baseClaims["sub"])
				}
				if got := rec.Header().Get("X-Roles"); got != "admin,dst" {
					t.Fatalf("roles = %q; want %q", got, "admin,dst")
				}
			}
		})
	}
}

func cloneClaims(src jwt.MapClaims) jwt.MapClaims {
	dst := make(jwt.MapClaims, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func TestWithDSTAuth_NoKeyIsPassthrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := api_context.AuthUserIDFromContext(r.Context()); ok {
			t.Error("no user expected without a key")
		}
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	WithDSTAuth("", "assets")(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !called || rec.Code != http.StatusNoContent {
		t.Errorf("called = %v, status = %d", called, rec.Code)
	}
}

func TestDSTVerifier(t *testing.T) {
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	v := &dstVerifier{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
			jwt.WithoutClaimsValidation(),
		),
		keyFunc:  func(*jwt.Token) (interface{}, error) { return &privKey.PublicKey, nil },
		audience: "assets",
		now:      func() time.Time { return now },
	}
	sign := func(c jwt.MapClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, c).SignedString(privKey)
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		return "Bearer " + tok
	}
	base := func() jwt.MapClaims {
		return jwt.MapClaims{
			"iss": "core",
			"aud": []string{"media", "assets"},
			"exp": now.Add(time.Minute).Unix(),
			"sub": "user-9",
		}
	}

	tests := []struct {
		name      string
		claims    func(jwt.MapClaims)
		wantErr   error
		wantRoles []string
	}{
		{"scope fallback", func(c jwt.MapClaims) { c["scope"] = "assets:read assets:write" }, nil, []string{"assets:read", "assets:write"}},
		{"roles win over scope", func(c jwt.MapClaims) { c["roles"] = []string{"dst"}; c["scope"] = "assets:write" }, nil, []string{"dst"}},
		{"iat within leeway", func(c jwt.MapClaims) { c["iat"] = now.Add(10 * time.Second).Unix() }, nil, nil},
		{"iat beyond leeway", func(c jwt.MapClaims) { c["iat"] = now.Add(time.Minute).Unix() }, errFutureIAT, nil},
		{"missing exp", func(c jwt.MapClaims) { delete(c, "exp") }, errExpired, nil},
		{"missing aud", func(c jwt.MapClaims) { delete(c, "aud") }, errBadAudience, nil},
		{"missing iss", func(c jwt.MapClaims) { delete(c, "iss") }, errBadIssuer, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.claims(c)

			claims, err := v.verify(sign(c))
			if tc.wantErr != nil {
				if err != tc.wantErr {
					t.Fatalf("err = %v; want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.Subject != "user-9" {
				t.Errorf("Subject = %q", claims.Subject)
			}
			if strings.Join(claims.grantedRoles(), ",") != strings.Join(tc.wantRoles, ",") {
				t.Errorf("roles = %v; want %v", claims.grantedRoles(), tc.wantRoles)
			}
		})
	}

	if _, err := v.verify(""); err != errMissingToken {
		t.Errorf("empty header err = %v; want %v", err, errMissingToken)
	}
	if _, err := v.verify("Bearer "); err != errMissingToken {
		t.Errorf("empty token err = %v; want %v", err, errMissingToken)
	}
}

func TestWithDSTAuth_ErrorMessage(t *testing.T) {
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss": "core",
		"aud": "other-service",
		"exp": time.Now().Add(time.Minute).Unix(),
		"sub": "user-1",
	}).SignedString(privKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/assets/1", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	WithDSTAuth(string(pubPEM), "assets")(http.NotFoundHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body.Error != "bad audience" {
		t.Errorf("body = %+v, %v", body, err)
	}
}
