package token

import (
	"fmt"
	"time"

	"github.com/hertz-contrib/jwt"

	"github.com/GreaLake/checkIn/config"
)

const (
	// IdentityKey 用户 ID 声明
	IdentityKey = "uid"
	// UserNameKey 用户姓名声明，审批操作用作审批人署名
	UserNameKey = "uname"
)

var (
	// 令牌由统一认证服务签发，服务端只共享同一份密钥做校验。
	// 这个实例会被 middleware 共同使用
	sharedGenerator *jwt.HertzJWTMiddleware
)

func Init() error {
	var err error
	sharedGenerator, err = jwt.New(&jwt.HertzJWTMiddleware{
		Key:         []byte(config.Cfg.JWTSecret),
		Timeout:     time.Duration(config.Cfg.JWTExpireMinutes) * time.Minute,
		MaxRefresh:  time.Duration(config.Cfg.JWTRefreshDays) * 24 * time.Hour,
		IdentityKey: IdentityKey,
		TimeFunc:    time.Now,
	})

	if err != nil {
		return fmt.Errorf("failed to initialize token validator: %w", err)
	}

	return nil
}

// GetGenerator 获取共享的 token 校验器（供 middleware 使用）
func GetGenerator() *jwt.HertzJWTMiddleware {
	return sharedGenerator
}
