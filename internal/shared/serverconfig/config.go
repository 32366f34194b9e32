package serverconfig

import (
	"os"
	"sync"
	"time"

	"MachiKoro/internal/shared/config"
)

var (
	mu   sync.RWMutex
	conf Config
)

// Load 读取配置并开启热更新；cfgName 为空时按默认规则查找。
func Load(cfgName string) (Config, error) {
	c, err := config.Load[Config](cfgName, set)
	if err != nil {
		return Config{}, err
	}
	set(c)
	return c, nil
}

// Get 返回当前配置快照。
func Get() Config {
	mu.RLock()
	defer mu.RUnlock()
	return conf
}

func set(c Config) {
	mu.Lock()
	conf = c
	mu.Unlock()
	// 环境变量优先；若未设置则回填配置中的 jwt_secret，兼容本地开发场景。
	if os.Getenv("JWT_SECRET") == "" && c.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", c.JWTSecret)
	}
}

func (c PersistenceConfig) FlushInterval() time.Duration {
	if c.FlushIntervalMs <= 0 {
		return time.Second
	}
	return time.Duration(c.FlushIntervalMs) * time.Millisecond
}

func (c PersistenceConfig) AskTimeout() time.Duration {
	if c.AskTimeoutMs <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.AskTimeoutMs) * time.Millisecond
}

func (c PersistenceConfig) IdleTimeout() time.Duration {
	if c.IdleTimeoutS <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.IdleTimeoutS) * time.Second
}

func (c GameConfig) Money() int {
	return max(0, c.StartingMoney)
}
