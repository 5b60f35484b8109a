package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 默认 Token 签发者
const DefaultTokenIssuer = "fast-vault-service"

// ContextKeySession gin context key holding the parsed session
// ContextKeySession 保存已解析会话的 gin 上下文键
const ContextKeySession = "session_token"

// TokenConfig 定义 Token 管理器的配置
type TokenConfig struct {
	SecretKey string        `yaml:"secret-key"` // JWT 签名密钥
	Expiry    time.Duration `yaml:"expiry"`     // Token 过期时间，默认 7 天
	Issuer    string        `yaml:"issuer"`     // Token 签发者
}

// TokenManager 定义 Token 管理接口
type TokenManager interface {
	Generate(ownerID string) (string, error)
	Parse(token string) (*SessionEntity, error)
}

type tokenManager struct {
	config TokenConfig
}

// NewTokenManager 创建一个新的 TokenManager 实例
func NewTokenManager(cfg TokenConfig) TokenManager {
	if cfg.Expiry == 0 {
		cfg.Expiry = 7 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &tokenManager{config: cfg}
}

// SessionEntity is the session carried in the token; the subject is the opaque owner id.
// SessionEntity 令牌中携带的会话，subject 为不透明的所有者 ID
type SessionEntity struct {
	jwt.RegisteredClaims
}

// OwnerID returns the session owner id
// OwnerID 返回会话所有者 ID
func (s *SessionEntity) OwnerID() string {
	return s.Subject
}

// Generate 生成一个新的 JWT Token
func (t *tokenManager) Generate(ownerID string) (string, error) {
	if ownerID == "" {
		return "", fmt.Errorf("owner id is empty")
	}
	now := time.Now()
	claims := &SessionEntity{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   ownerID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.config.SecretKey))
}

// Parse 解析 JWT Token 并返回会话信息
func (t *tokenManager) Parse(token string) (*SessionEntity, error) {
	return ParseTokenWithKey(token, t.config.SecretKey)
}

// ParseTokenWithKey 使用指定密钥解析 Token
func ParseTokenWithKey(tokenString string, secretKey string) (*SessionEntity, error) {
	claims := &SessionEntity{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}

// GetOwnerID extracts the session owner id from the request context.
// The second result is false for anonymous requests.
// GetOwnerID 从请求上下文中提取会话所有者 ID，匿名请求时第二个返回值为 false
func GetOwnerID(ctx *gin.Context) (string, bool) {
	v, exist := ctx.Get(ContextKeySession)
	if !exist {
		return "", false
	}
	session, ok := v.(*SessionEntity)
	if !ok || session.OwnerID() == "" {
		return "", false
	}
	return session.OwnerID(), true
}

// SetTokenToContextWithKey 使用指定密钥设置 Token 到 Context
func SetTokenToContextWithKey(ctx *gin.Context, tokenString string, secretKey string) error {
	session, err := ParseTokenWithKey(tokenString, secretKey)
	if err != nil {
		return err
	}
	ctx.Set(ContextKeySession, session)
	return nil
}
