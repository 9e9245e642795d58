package api

import (
	"github.com/limbo/lumin/pkg/entity"
	jwtservice "github.com/limbo/lumin/pkg/jwt_service"
)

type JWTServiceI interface {
	// Issues access and refresh tokens
	GeneratePair(user *entity.User) (*jwtservice.TokenPair, error)
	// Validates an access token
	ParseToken(tokenString string) (*jwtservice.Claims, error)
	ParseRefreshToken(tokenString string) (*jwtservice.Claims, error)
}
