package entity

// GameSnapshot 落库快照，Version 单调递增，旧版本不得覆盖新版本。
type GameSnapshot struct {
	Version uint64
	Game    *Game
}
