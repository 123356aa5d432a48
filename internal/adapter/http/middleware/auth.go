package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"cmms/internal/core/domain"
	"cmms/pkg/apierrors"
)

const (
	actorKey     = "actor"
	RealIPHeader = "X-Real-Ip"
)

var ErrInvalidToken = errors.New("invalid token")

// UserLookup resolves the subject of a token.
type UserLookup interface {
	GetUser(ctx context.Context, id uint64) (domain.User, error)
}

// IssueToken signs an HS256 token whose subject is the user id.
func IssueToken(secret string, user domain.User, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	claims := jwt.MapClaims{
		"sub":     strconv.FormatUint(user.ID, 10),
		"email":   user.Email,
		"manager": user.IsManager,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates tokenString and returns the user id it was issued for.
func ParseToken(secret, tokenString string) (uint64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// AuthMiddleware requires a Bearer token and stores the acting user. The
// user is reloaded on every request so role changes apply immediately.
func AuthMiddleware(secret string, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			abortUnauthorized(c, lang)
			return
		}

		userID, err := ParseToken(secret, tokenString)
		if err != nil {
			abortUnauthorized(c, lang)
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, domain.ErrUserNotFound) {
				zap.L().Error("failed to load token user", zap.Uint64("user_id", userID), zap.Error(err))
			}
			abortUnauthorized(c, lang)
			return
		}

		c.Set(actorKey, &domain.Actor{
			User:     &user,
			RealIP:   c.GetHeader(RealIPHeader),
			ClientIP: c.ClientIP(),
		})
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, lang string) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
	)
}

// GetActor returns the authenticated actor, or nil on public routes.
func GetActor(c *gin.Context) *domain.Actor {
	if value, exists := c.Get(actorKey); exists {
		if actor, ok := value.(*domain.Actor); ok {
			return actor
		}
	}
	return nil
}

// SetActor stores actor on the request; used by tests and trusted callers.
func SetActor(c *gin.Context, actor *domain.Actor) {
	c.Set(actorKey, actor)
}
