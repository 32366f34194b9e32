package dc

import (
	"context"
	"sync"
	"time"

	"MachiKoro/internal/game/app/port"
	"MachiKoro/internal/game/entity"
	"MachiKoro/modules/kit/logx"

	"go.uber.org/zap"
)

const (
	defaultFlushEvery = 3000 * time.Millisecond
	writeTimeout      = 3 * time.Second
	retryBackoff      = 200 * time.Millisecond
)

type GameID = entity.GameID

// GameDC 单局内存数据中心：actor 内同步修改，脏检查后生成快照交给写协程异步落库。
type GameDC struct {
	repo       port.GameRepository
	log        logx.Logger
	game       *entity.Game
	dirty      bool
	flushEvery time.Duration

	mu      sync.Mutex
	pending *entity.GameSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewGameDC(repo port.GameRepository, flushEvery time.Duration, log logx.Logger) *GameDC {
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	if log == nil {
		log = logx.Nop()
	}
	d := &GameDC{
		repo:       repo,
		log:        log,
		flushEvery: flushEvery,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

func (d *GameDC) Load(ctx context.Context, id GameID) (*entity.Game, error) {
	s, err := d.repo.LoadGame(ctx, id)
	if err != nil {
		return nil, err
	}
	// 版本号接续已存快照，保证重新激活后的写入不会被当作旧版本
	d.mu.Lock()
	d.version = s.Version
	d.mu.Unlock()
	d.game = s.Game
	d.dirty = false
	return s.Game, nil
}

// Set 替换为新状态并标脏。入参视为不可变，之后不得再修改。
func (d *GameDC) Set(g *entity.Game) {
	if g == nil {
		return
	}
	d.game = g
	d.dirty = true
}

// Flush 脏检查 + 同步快照 + 异步写库。
func (d *GameDC) Flush(ctx context.Context) {
	_ = ctx
	if !d.IsDirty() {
		return
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return
	}
	d.enqueueLatest(s)
}

// FlushSync 立即写库，用于新建对局，确保随后的加载能读到。
func (d *GameDC) FlushSync(ctx context.Context) error {
	if !d.IsDirty() {
		return nil
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return nil
	}
	if err := d.repo.Snapshot(ctx, s); err != nil {
		d.dirty = true
		return err
	}
	return nil
}

func (d *GameDC) IsDirty() bool {
	return d.game != nil && d.dirty
}

func (d *GameDC) Entity() *entity.Game {
	return d.game
}

func (d *GameDC) FlushEvery() time.Duration {
	return d.flushEvery
}

func (d *GameDC) Close(ctx context.Context) error {
	d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *GameDC) buildNextSnapshot() (*entity.GameSnapshot, bool) {
	if d.game == nil {
		return nil, false
	}
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	d.dirty = false
	return &entity.GameSnapshot{Version: version, Game: d.game}, true
}

func (d *GameDC) enqueueLatest(s *entity.GameSnapshot) {
	if s == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *GameDC) popPending() *entity.GameSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

// requeueOnError 失败的快照放回队列；若期间已有更新版本则丢弃旧的。返回是否已放回。
func (d *GameDC) requeueOnError(s *entity.GameSnapshot) bool {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	return true
}

func (d *GameDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *GameDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := d.repo.Snapshot(ctx, s)
		cancel()
		if err == nil {
			continue
		}
		logx.ReportSysError(ctx, d.log, logx.NewSysLog("game_dc_snapshot", err),
			zap.String("game_id", string(s.Game.ID)), zap.Uint64("version", s.Version))
		if !d.requeueOnError(s) {
			d.lastTry(s)
			return
		}
		select {
		case <-time.After(retryBackoff):
		case <-d.stop:
			// 关闭时最后再试一次，失败即放弃
			d.lastTry(s)
			return
		}
	}
}

func (d *GameDC) lastTry(s *entity.GameSnapshot) {
	if p := d.popPending(); p != nil && p.Version > s.Version {
		s = p
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := d.repo.Snapshot(ctx, s); err != nil {
		logx.ReportSysError(ctx, d.log, logx.NewSysLog("game_dc_final_snapshot", err),
			zap.String("game_id", string(s.Game.ID)), zap.Uint64("version", s.Version))
	}
}
