package serverconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_读取全部分段(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "conf.yml")
	body := `
httpserver:
  host: 0.0.0.0
  port: 8080
grpcserver:
  port: 9090
persistence:
  driver: sqlite
  flush_interval_ms: 500
game:
  starting_money: 3
jwt_secret: test-secret
`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write err=%v", err)
	}
	t.Chdir(dir)
	t.Setenv("JWT_SECRET", "")

	c, err := Load(p)
	if err != nil {
		t.Fatalf("期望加载成功, got=%v", err)
	}
	if c.HTTPServer.Port != 8080 || c.GRPCServer.Port != 9090 || c.Persistence.Driver != "sqlite" {
		t.Fatalf("期望读取配置值, got=%+v", c)
	}
	if Get().Game.Money() != 3 {
		t.Fatalf("期望 Get 返回已加载配置, got=%+v", Get())
	}
	if os.Getenv("JWT_SECRET") != "test-secret" {
		t.Fatalf("期望回填 JWT_SECRET")
	}
}

func TestPersistenceConfig_默认值(t *testing.T) {
	var c PersistenceConfig
	if c.FlushInterval() != time.Second || c.AskTimeout() != 3*time.Second || c.IdleTimeout() != 10*time.Minute {
		t.Fatalf("期望零值使用默认时长, got=%v %v %v", c.FlushInterval(), c.AskTimeout(), c.IdleTimeout())
	}
	c.FlushIntervalMs = 200
	if c.FlushInterval() != 200*time.Millisecond {
		t.Fatalf("期望 200ms, got=%v", c.FlushInterval())
	}
}
