package entity

import "github.com/google/uuid"

type (
	GameID          string
	PlayerID        string
	EstablishmentID string
	LandmarkID      string
)

// newID uuid v4，底层 crypto/rand，跨会话、跨进程碰撞概率可忽略。
func newID() string {
	return uuid.NewString()
}
