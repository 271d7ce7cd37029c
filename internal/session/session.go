package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tchapssolution/customer-webapp/internal/config"
)

const CookieName = "customer_session"

var ErrInvalidToken = errors.New("invalid session token")

// Claims is the identity carried by the signed session cookie.
type Claims struct {
	Name  string
	Email string
	Role  string
}

// Service issues and parses the signed session cookie. Tokens are JWT
// HS256 signed with the configured secret; the cookie slides: the auth
// middleware re-issues it once a token is past half its lifetime.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func New(cfg *config.Config) *Service {
	return &Service{
		secret: []byte(cfg.SessionSecret),
		ttl:    cfg.SessionTTL,
	}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the claims and sets it as a persistent
// HttpOnly cookie on the response.
func (s *Service) Issue(c *gin.Context, claims Claims) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name":  claims.Name,
		"email": claims.Email,
		"role":  claims.Role,
		"exp":   now.Add(s.ttl).Unix(),
		"iat":   now.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, signed, int(s.ttl.Seconds()), "/", "", false, true)
	return nil
}

// Clear expires the session cookie.
func (s *Service) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// Parse validates the raw cookie value and returns the claims plus the
// time the token was issued (used for sliding renewal).
func (s *Service) Parse(raw string) (Claims, time.Time, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, time.Time{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, time.Time{}, ErrInvalidToken
	}

	name, _ := mc["name"].(string)
	email, ok1 := mc["email"].(string)
	role, ok2 := mc["role"].(string)
	iat, ok3 := mc["iat"].(float64)
	if !ok1 || !ok2 || !ok3 {
		return Claims{}, time.Time{}, ErrInvalidToken
	}

	return Claims{Name: name, Email: email, Role: role}, time.Unix(int64(iat), 0), nil
}
