package security

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestAward_缺少JWT_SECRET应失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Award("g1", "p1"); err == nil {
		t.Fatalf("期望 JWT_SECRET 为空时 Award 返回错误")
	}
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")

	token, err := Award("g1", "p1")
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	if token == "" {
		t.Fatalf("期望 token 非空")
	}

	_, claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken err=%v", err)
	}
	if claims == nil || claims.GameID != "g1" || claims.PlayerID != "p1" {
		t.Fatalf("期望 claims 绑定 g1/p1, got=%v", claims)
	}
}

func TestParseToken_密钥不同验签失败(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token, err := Award("g1", "p1")
	if err != nil {
		t.Fatalf("Award err=%v", err)
	}
	t.Setenv("JWT_SECRET", "secret-b")
	if _, _, err := ParseToken(token); err == nil {
		t.Fatalf("期望换密钥后解析失败")
	}
}

func TestParseToken_拒绝非HS256(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{GameID: "g1", PlayerID: "p1"})
	signed, err := token.SignedString([]byte("secret-a"))
	if err != nil {
		t.Fatalf("sign err=%v", err)
	}
	if _, _, err := ParseToken(signed); err == nil {
		t.Fatalf("期望拒绝 HS512")
	}
}
