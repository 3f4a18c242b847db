// Package session binds incoming requests to an authenticated user. Login
// state travels in a signed JWT carried by a cookie; the server keeps no
// session table.
package session

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const cookieName = "tasktrack_session"

/// Manager is the capability the controller consumes: who is logged in, log
// in, log out. Injected so handlers never touch cookie or token details.
type Manager interface {
	// CurrentUser resolves the request to a user id. ok is false when there
	// is no session, the token is invalid, or it has expired.
	CurrentUser(c *gin.Context) (userID string, ok bool)
	// Establish binds the response's session cookie to the given user.
	Establish(c *gin.Context, userID string) error
	// Clear drops the session cookie unconditionally. Idempotent.
	Clear(c *gin.Context)
}

// CookieManager implements Manager with an HS256-signed token in a cookie.
type CookieManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewCookieManager returns a manager signing tokens with secret. secure
// controls the cookie's Secure attribute.
func NewCookieManager(secret string, ttl time.Duration, secure bool) *CookieManager {
	return &CookieManager{secret: []byte(secret), ttl: ttl, secure: secure}
}

func (m *CookieManager) CurrentUser(c *gin.Context) (string, bool) {
	tokenStr, err := c.Cookie(cookieName)
	if err != nil || tokenStr == "" {
		return "", false
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

func (m *CookieManager) Establish(c *gin.Context, userID string) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}
	c.SetCookie(cookieName, signed, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

func (m *CookieManager) Clear(c *gin.Context) {
	c.SetCookie(cookieName, "", -1, "/", "", m.secure, true)
}
