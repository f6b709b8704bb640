package service

import (
	"Birrapp/internal/pkg/consts"
	"Birrapp/internal/pkg/redis"
	"Birrapp/internal/repository"
	"context"
	"time"

	"github.com/goccy/go-json"
)

// SessionService 解析外部认证服务签发的会话令牌；无法解析时返回 (nil, nil)
type SessionService interface {
	Resolve(ctx context.Context, token string) (*repository.SessionIdentity, error)
}

type sessionServiceImpl struct {
	sessionRepo repository.SessionRepo
	cacheTTL    time.Duration
}

func NewSessionService(sessionRepo repository.SessionRepo, cacheTTL time.Duration) SessionService {
	return &sessionServiceImpl{sessionRepo: sessionRepo, cacheTTL: cacheTTL}
}

func (s *sessionServiceImpl) Resolve(ctx context.Context, token string) (*repository.SessionIdentity, error) {
	if token == "" {
		return nil, nil
	}

	key := consts.SessionKey + token
	cached, err := redis.GetValue(ctx, key)
	if err == nil && cached != "" {
		var identity repository.SessionIdentity
		if err = json.Unmarshal([]byte(cached), &identity); err == nil {
			if identity.ExpiresAt.After(time.Now()) {
				return &identity, nil
			}
			_ = redis.DeleteKey(ctx, key)
		}
	}

	identity, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, nil
	}

	// 缓存不越过会话本身的过期时间
	ttl := s.cacheTTL
	if remaining := time.Until(identity.ExpiresAt); remaining < ttl {
		ttl = remaining
	}
	if ttl > 0 {
		if data, err := json.Marshal(identity); err == nil {
			_ = redis.SetWithExpiration(ctx, key, data, ttl)
		}
	}
	return identity, nil
}
