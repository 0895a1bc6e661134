package jwt

import (
	"errors"
	"fmt"
	"time"

	"Recipe-Box/domain"
	"Recipe-Box/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
)

const issuer = "RECIPE_BOX"

type (
	JWTService interface {
		GenerateTokenUser(userId string, role string) string
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (string, string, error)
		TTL() time.Duration
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
	}
)

// NewJWTService reads JWT_SECRET and JWT_TTL_MINUTES from the loaded config.
func NewJWTService() JWTService {
	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		log.Warn("JWT_SECRET is empty, tokens are signed with an empty key")
	}
	ttl := time.Duration(utils.GetConfigInt("JWT_TTL_MINUTES", 120)) * time.Minute
	return NewJWTServiceWith(secret, ttl)
}

func NewJWTServiceWith(secret string, ttl time.Duration) JWTService {
	return &jwtService{
		secretKey: secret,
		issuer:    issuer,
		ttl:       ttl,
	}
}

func (j *jwtService) TTL() time.Duration { return j.ttl }

func (j *jwtService) GenerateTokenUser(userId string, role string) string {
	now := time.Now()
	claims := jwtUserClaim{
		userId,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tx, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Error(err)
	}
	return tx
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetUserIDByToken(token string) (string, string, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	if claims.Issuer != j.issuer || claims.UserID == "" {
		return "", "", domain.ErrTokenInvalid
	}
	return claims.UserID, claims.Role, nil
}
