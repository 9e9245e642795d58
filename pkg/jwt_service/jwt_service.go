package jwtservice

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/lumin/internal/error_values"
	"github.com/limbo/lumin/pkg/entity"
)

const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

var (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"uid"`
	Username  string `json:"username"`
	TokenType string `json:"typ"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func New(secret string, accessTTL, refreshTTL time.Duration) *JWTService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (s *JWTService) GenerateToken(user *entity.User) (string, error) {
	return s.sign(user, AccessToken, s.accessTTL)
}

// GeneratePair issues access and refresh tokens for the user.
func (s *JWTService) GeneratePair(user *entity.User) (*TokenPair, error) {
	access, err := s.sign(user, AccessToken, s.accessTTL)
	if err != nil {
		return nil, errors.New("signing access token error: " + err.Error())
	}
	refresh, err := s.sign(user, RefreshToken, s.refreshTTL)
	if err != nil {
		return nil, errors.New("signing refresh token error: " + err.Error())
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *JWTService) sign(user *entity.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:    user.ID.String(),
		Username:  user.Name,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates an access token.
func (s *JWTService) ParseToken(tokenString string) (*Claims, error) {
	return s.parse(tokenString, AccessToken)
}

func (s *JWTService) ParseRefreshToken(tokenString string) (*Claims, error) {
	return s.parse(tokenString, RefreshToken)
}

func (s *JWTService) parse(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, errors.Join(errorvalues.ErrInvalidToken, errors.New("token parsing error: "+err.Error()))
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errorvalues.ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, errorvalues.ErrWrongTokenType
	}
	return claims, nil
}
