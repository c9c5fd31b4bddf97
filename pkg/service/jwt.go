package service

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "insurance-system/pkg/errors"
)

type JwtCustomClaim struct {
	UserID         int  `json:"userId"`
	IsRefreshToken bool `json:"isRefreshToken"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateTokens(userID int) (string, string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
}

type jwtService struct {
	secretKey       string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration) JWTService {
	return &jwtService{
		secretKey:       secretKey,
		accessTokenExp:  accessTokenExp,
		refreshTokenExp: refreshTokenExp,
	}
}

func (s *jwtService) GenerateTokens(userID int) (string, string, error) {
	accessTokenClaims := &JwtCustomClaim{
		UserID:         userID,
		IsRefreshToken: false,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTokenExp)),
		},
	}
	refreshTokenClaims := &JwtCustomClaim{
		UserID:         userID,
		IsRefreshToken: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.refreshTokenExp)),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS512, accessTokenClaims).SignedString([]byte(s.secretKey))
	if err != nil {
		return "", "", err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS512, refreshTokenClaims).SignedString([]byte(s.secretKey))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(s.secretKey), nil
		default:
			return nil, apperrors.ErrInvalidSigningMethod
		}
	})
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
