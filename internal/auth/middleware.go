package auth

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Actor is who the request acts as. Tokens are minted by the external
// auth service; this package only verifies them. Requests without a
// valid token proceed as guests.
type Actor struct {
	Guest bool
	Email string
	Admin bool
}

type contextKey string

const actorKey contextKey = "actor"

// FromContext returns the request's actor, defaulting to a guest.
func FromContext(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey).(Actor); ok {
		return actor
	}
	return Actor{Guest: true}
}

// ActorMiddleware resolves the actor from an optional Bearer token and
// stores it on the request context. Invalid tokens degrade to guest
// rather than failing the request; the booking flow is open to guests.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := Actor{Guest: true}
		if token := bearerToken(r); token != "" {
			if claims, err := verify(token); err == nil {
				email, _ := claims["email"].(string)
				role, _ := claims["role"].(string)
				actor = Actor{Guest: false, Email: email, Admin: role == "admin"}
			}
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
	})
}

// AdminMiddleware rejects requests whose actor lacks the admin role.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !FromContext(r.Context()).Admin {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func verify(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
