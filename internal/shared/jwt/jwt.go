package jwt

import (
	"errors"
	"os"
	"time"

	jw "github.com/golang-jwt/jwt/v5"
)

func secret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("replace-this-with-a-strong-secret")
}

// Make issues a signed session token for a user.
func Make(userID uint, username string) (string, error) {
	claims := jw.MapClaims{
		"sub": username,
		"uid": float64(userID),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	return jw.NewWithClaims(jw.SigningMethodHS256, claims).SignedString(secret())
}

func Parse(tok string) (uint, string, error) {
	t, err := jw.Parse(tok, func(t *jw.Token) (any, error) { return secret(), nil })
	if err != nil || !t.Valid {
		return 0, "", errors.New("invalid token")
	}
	mc, ok := t.Claims.(jw.MapClaims)
	if !ok {
		return 0, "", errors.New("bad claims")
	}
	username, _ := mc["sub"].(string)
	idf, ok := mc["uid"].(float64)
	if !ok || username == "" {
		return 0, "", errors.New("missing identity")
	}
	return uint(idf), username, nil
}
