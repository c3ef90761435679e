package util

import (
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/pkg/config"
)

type (
	JWTClaims struct {
		UserID       uint       `json:"ui"`
		Username     string     `json:"un"`
		RolePlatform model.Role `json:"rp"`
		jwt.RegisteredClaims
	}
	// RefreshClaims deliberately carries no role: the role is re-read
	// from the database when the token is exchanged, so a demotion
	// takes effect on the next refresh.
	RefreshClaims struct {
		UserID uint `json:"ui"`
		jwt.RegisteredClaims
	}
	JWTMessage struct {
		UserID       uint       `json:"userID"`       // User ID
		Username     string     `json:"username"`     // Username
		RolePlatform model.Role `json:"rolePlatform"` // Role in platform (e.g. user, admin, super_admin)
	}
)

type TokenManager struct {
	accessSecret    string
	refreshSecret   string
	accessTokenTTL  int // minutes
	refreshTokenTTL int // hours
}

var (
	once     sync.Once
	tokenMgr *TokenManager
)

func GetTokenMgr() *TokenManager {
	once.Do(func() {
		tokenConfig := config.NewTokenConf()
		tokenMgr = newTokenManager(
			tokenConfig.AccessTokenSecret,
			tokenConfig.RefreshTokenSecret,
			tokenConfig.AccessTokenExpiryMinute,
			tokenConfig.RefreshTokenExpiryHour,
		)
	})
	return tokenMgr
}

func newTokenManager(accessSecret, refreshSecret string, accessTokenTTL, refreshTokenTTL int) *TokenManager {
	return &TokenManager{
		accessSecret,
		refreshSecret,
		accessTokenTTL,
		refreshTokenTTL,
	}
}

// RefreshTokenTTL is exposed for the cookie max age.
func (tm *TokenManager) RefreshTokenTTL() time.Duration {
	return time.Hour * time.Duration(tm.refreshTokenTTL)
}

// CreateTokens creates a new access token and a new refresh token
func (tm *TokenManager) CreateTokens(msg *JWTMessage) (
	accessToken string, refreshToken string, err error) {
	accessClaims := &JWTClaims{
		UserID:       msg.UserID,
		Username:     msg.Username,
		RolePlatform: msg.RolePlatform,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute * time.Duration(tm.accessTokenTTL))),
		},
	}
	accessToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(tm.accessSecret))
	if err != nil {
		klog.Error(err)
		return "", "", err
	}

	refreshClaims := &RefreshClaims{
		UserID: msg.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.RefreshTokenTTL())),
		},
	}
	refreshToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(tm.refreshSecret))
	if err != nil {
		klog.Error(err)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (tm *TokenManager) CheckToken(requestToken string) (JWTMessage, error) {
	claims := JWTClaims{}
	_, err := jwt.ParseWithClaims(requestToken, &claims, func(_ *jwt.Token) (any, error) {
		return []byte(tm.accessSecret), nil
	})
	return JWTMessage{
		UserID:       claims.UserID,
		Username:     claims.Username,
		RolePlatform: claims.RolePlatform,
	}, err
}

// CheckRefreshToken validates a refresh token and returns the user it
// was minted for.
func (tm *TokenManager) CheckRefreshToken(requestToken string) (uint, error) {
	claims := RefreshClaims{}
	_, err := jwt.ParseWithClaims(requestToken, &claims, func(_ *jwt.Token) (any, error) {
		return []byte(tm.refreshSecret), nil
	})
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
