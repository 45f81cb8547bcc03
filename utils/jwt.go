package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"go-splendor/config"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and checks the HS256 access and refresh tokens.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

func (t *TokenIssuer) GenerateAccessToken(userID, name string) (string, error) {
	return t.sign(userID, name, "splendor-access", t.accessTTL, t.accessSecret)
}

func (t *TokenIssuer) GenerateRefreshToken(userID, name string) (string, error) {
	return t.sign(userID, name, "splendor-refresh", t.refreshTTL, t.refreshSecret)
}

func (t *TokenIssuer) ParseAccessToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, t.accessSecret)
}

func (t *TokenIssuer) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, t.refreshSecret)
}

func (t *TokenIssuer) sign(userID, name, issuer string, ttl time.Duration, secret []byte) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseToken(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID != "" {
		return claims, nil
	}
	return nil, ErrInvalidToken
}
