package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/constants"
	userModel "github.com/SaddamHosen42/zap-shift-server/models/user"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "auth_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.User{}))
	return db
}

func newKeyAndAuth(t *testing.T, db *gorm.DB) (*rsa.PrivateKey, *Auth) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key, NewAuth(NewVerifierWithKey(&key.PublicKey), db)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

// okHandler marks that the request made it through every gate.
func okHandler(c *fiber.Ctx) error {
	principal, _ := PrincipalFrom(c)
	return c.JSON(fiber.Map{"email": principal.Email})
}

func TestAuthenticateRejectsMissingAndMalformedHeaders(t *testing.T) {
	_, auth := newKeyAndAuth(t, newTestDB(t))

	app := fiber.New()
	app.Get("/protected", auth.Authenticate(), okHandler)

	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"no scheme", "sometoken"},
		{"wrong scheme", "Basic sometoken"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	key, auth := newKeyAndAuth(t, newTestDB(t))

	app := fiber.New()
	app.Get("/protected", auth.Authenticate(), okHandler)

	token := signToken(t, key, jwt.MapClaims{
		"email": "a@x.com",
		"sub":   "uid-1",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateRejectsTokenWithoutEmail(t *testing.T) {
	key, auth := newKeyAndAuth(t, newTestDB(t))

	app := fiber.New()
	app.Get("/protected", auth.Authenticate(), okHandler)

	token := signToken(t, key, jwt.MapClaims{"sub": "uid-1"})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateExtractsPrincipal(t *testing.T) {
	key, auth := newKeyAndAuth(t, newTestDB(t))

	app := fiber.New()
	app.Get("/protected", auth.Authenticate(), okHandler)

	token := signToken(t, key, jwt.MapClaims{"email": "a@x.com", "sub": "uid-1"})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "a@x.com", body["email"])
}

func TestRequireSelfComparesQueryEmail(t *testing.T) {
	key, auth := newKeyAndAuth(t, newTestDB(t))

	app := fiber.New()
	app.Get("/mine", auth.Authenticate(), auth.RequireSelf(), okHandler)

	token := signToken(t, key, jwt.MapClaims{"email": "a@x.com", "sub": "uid-1"})

	cases := []struct {
		name   string
		target string
		status int
	}{
		{"matching email", "/mine?email=a@x.com", http.StatusOK},
		{"foreign email", "/mine?email=b@x.com", http.StatusForbidden},
		{"no email supplied", "/mine", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequireAdminChecksUserStore(t *testing.T) {
	db := newTestDB(t)
	key, auth := newKeyAndAuth(t, db)

	require.NoError(t, db.Create(&userModel.User{
		Email: "admin@x.com", Role: constants.RoleAdmin,
	}).Error)
	require.NoError(t, db.Create(&userModel.User{
		Email: "plain@x.com", Role: constants.RoleUser,
	}).Error)

	app := fiber.New()
	app.Get("/admin", auth.Authenticate(), auth.RequireAdmin(), okHandler)

	cases := []struct {
		name   string
		email  string
		status int
	}{
		{"admin user", "admin@x.com", http.StatusOK},
		{"non-admin user", "plain@x.com", http.StatusForbidden},
		{"no user record", "ghost@x.com", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := signToken(t, key, jwt.MapClaims{"email": tc.email, "sub": "uid"})
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestFetchPublicKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"key": string(pemKey)})
	}))
	defer srv.Close()

	fetched, err := FetchPublicKey(srv.URL)
	require.NoError(t, err)
	require.True(t, fetched.Equal(&key.PublicKey))

	verifier, err := NewVerifier(srv.URL)
	require.NoError(t, err)

	token := signToken(t, key, jwt.MapClaims{"email": "a@x.com", "sub": "uid-1"})
	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", claims["email"])
}

func TestFetchPublicKeyBadResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/not-pem":
			json.NewEncoder(w).Encode(map[string]string{"key": "not a pem block"})
		}
	}))
	defer srv.Close()

	_, err := FetchPublicKey(srv.URL + "/missing")
	require.Error(t, err)

	_, err = FetchPublicKey(srv.URL + "/not-pem")
	require.Error(t, err)
}
