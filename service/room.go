package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"go-splendor/engine"
	"go-splendor/entities"
)

// SnapshotStore persists room snapshots between restarts.
type SnapshotStore interface {
	Save(ctx context.Context, snap entities.RoomSnapshot) error
	Delete(ctx context.Context, roomID string) error
	// List returns the readable snapshots. corrupt reports entries that
	// could not be decoded; err means nothing could be read.
	List(ctx context.Context) (snaps []entities.RoomSnapshot, corrupt error, err error)
}

// ResultArchive records finished games.
type ResultArchive interface {
	SaveResult(ctx context.Context, result entities.GameResult) error
}

type room struct {
	mu       sync.Mutex
	ctx      context.Context // ctx of the call currently holding mu
	info     entities.RoomInfo
	store    *engine.Store // nil until the first start
	archived bool
	deleted  bool
	unwatch  func()
}

// RoomService owns every room and its game. Calls into one room are
// serialized by the room's mutex, which is the only way the engine store is
// ever reached.
type RoomService struct {
	snapshots SnapshotStore
	archive   ResultArchive
	rules     engine.Rules
	shuffle   bool
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
	seed      func() uint64
	timeout   time.Duration

	mu       sync.RWMutex
	rooms    map[string]*room
	onChange []func(entities.RoomSnapshot)
}

type Option func(*RoomService)

func WithArchive(archive ResultArchive) Option {
	return func(s *RoomService) { s.archive = archive }
}

func WithRules(rules engine.Rules) Option {
	return func(s *RoomService) { s.rules = rules }
}

func WithShuffle(shuffle bool) Option {
	return func(s *RoomService) { s.shuffle = shuffle }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *RoomService) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *RoomService) { s.now = now }
}

// WithIDs replaces the room id generator.
func WithIDs(newID func() string) Option {
	return func(s *RoomService) { s.newID = newID }
}

func NewRoomService(snapshots SnapshotStore, opts ...Option) *RoomService {
	s := &RoomService{
		snapshots: snapshots,
		rules:     engine.DefaultRules(),
		shuffle:   true,
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     newRoomID,
		seed:      rand.Uint64,
		timeout:   5 * time.Second,
		rooms:     make(map[string]*room),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newRoomID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// OnChange registers fn to receive every published snapshot. fn runs while
// the room is locked and must not call back into the service.
func (s *RoomService) OnChange(fn func(entities.RoomSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *RoomService) CreateRoom(ctx context.Context, owner entities.RoomPlayer, maxPlayers int) (entities.RoomInfo, error) {
	if owner.PlayerID == "" {
		return entities.RoomInfo{}, fmt.Errorf("owner id: %w", ErrInvalidPlayerInput)
	}
	if maxPlayers < engine.MinPlayers || maxPlayers > engine.MaxPlayers {
		return entities.RoomInfo{}, ErrInvalidMaxPlayers
	}

	r := &room{
		ctx: ctx,
		info: entities.RoomInfo{
			RoomID:     s.newID(),
			UserID:     owner.PlayerID,
			MaxPlayers: maxPlayers,
			Status:     entities.RoomStatusWaiting,
			Players:    []entities.RoomPlayer{owner},
			CreatedAt:  s.now().UnixMilli(),
		},
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s.mu.Lock()
	s.rooms[r.info.RoomID] = r
	s.mu.Unlock()

	s.logger.Info("room created",
		zap.String("room", r.info.RoomID),
		zap.String("owner", owner.PlayerID),
		zap.Int("maxPlayers", maxPlayers))
	s.publish(r, nil)
	return r.info.Clone(), nil
}

func (s *RoomService) JoinRoom(ctx context.Context, roomID string, player entities.RoomPlayer) (entities.RoomInfo, error) {
	if player.PlayerID == "" {
		return entities.RoomInfo{}, fmt.Errorf("player id: %w", ErrInvalidPlayerInput)
	}
	r, err := s.lockRoom(ctx, roomID)
	if err != nil {
		return entities.RoomInfo{}, err
	}
	defer r.mu.Unlock()

	if r.info.HasPlayer(player.PlayerID) {
		return r.info.Clone(), nil
	}
	if r.store != nil {
		return entities.RoomInfo{}, ErrRoomStarted
	}
	if len(r.info.Players) >= r.info.MaxPlayers {
		return entities.RoomInfo{}, ErrRoomFull
	}

	r.info.Players = append(r.info.Players, player)
	s.logger.Info("player joined", zap.String("room", roomID), zap.String("player", player.PlayerID))
	s.publish(r, nil)
	return r.info.Clone(), nil
}

// StartGame deals a new game for the seated players, in join order.
func (s *RoomService) StartGame(ctx context.Context, roomID, playerID string) (entities.GameState, error) {
	r, err := s.lockRoom(ctx, roomID)
	if err != nil {
		return entities.GameState{}, err
	}
	defer r.mu.Unlock()

	if r.info.UserID != playerID {
		return entities.GameState{}, ErrNotRoomOwner
	}
	if r.store != nil {
		return entities.GameState{}, ErrRoomStarted
	}

	state, err := s.deal(r.info)
	if err != nil {
		return entities.GameState{}, err
	}
	r.store = s.newStore(roomID, state)
	s.watch(r)
	return r.store.Start()
}

// RestartGame replaces a running or finished game with a fresh deal.
func (s *RoomService) RestartGame(ctx context.Context, roomID, playerID string) (entities.GameState, error) {
	r, err := s.lockRoom(ctx, roomID)
	if err != nil {
		return entities.GameState{}, err
	}
	defer r.mu.Unlock()

	if r.info.UserID != playerID {
		return entities.GameState{}, ErrNotRoomOwner
	}
	if r.store == nil {
		return entities.GameState{}, ErrGameNotStarted
	}

	state, err := s.deal(r.info)
	if err != nil {
		return entities.GameState{}, err
	}
	r.archived = false
	r.store.Reset(state)
	s.logger.Info("game restarted", zap.String("room", roomID))
	return r.store.Start()
}

// PerformAction submits action to the room's game. Rule violations come back
// as *engine.Rejection.
func (s *RoomService) PerformAction(ctx context.Context, roomID string, action entities.GameAction) (entities.GameState, error) {
	r, err := s.lockRoom(ctx, roomID)
	if err != nil {
		return entities.GameState{}, err
	}
	defer r.mu.Unlock()

	if !r.info.HasPlayer(action.PlayerID) {
		return entities.GameState{}, ErrNotInRoom
	}
	if r.store == nil {
		return entities.GameState{}, ErrGameNotStarted
	}
	return r.store.PerformAction(action)
}

func (s *RoomService) DeleteRoom(ctx context.Context, roomID, playerID string) error {
	r, err := s.lockRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if r.info.UserID != playerID {
		r.mu.Unlock()
		return ErrNotRoomOwner
	}
	r.deleted = true
	if r.unwatch != nil {
		r.unwatch()
	}
	r.mu.Unlock()

	s.mu.Lock()
	delete(s.rooms, roomID)
	s.mu.Unlock()

	if err := s.snapshots.Delete(ctx, roomID); err != nil {
		return fmt.Errorf("delete room %s: %w", roomID, err)
	}
	s.logger.Info("room deleted", zap.String("room", roomID))
	return nil
}

func (s *RoomService) GetRoom(ctx context.Context, roomID string) (entities.RoomSnapshot, error) {
	r, err := s.lockRoom(ctx, roomID)
	if err != nil {
		return entities.RoomSnapshot{}, err
	}
	defer r.mu.Unlock()
	return s.snapshot(r), nil
}

// ListRooms returns every room, oldest first.
func (s *RoomService) ListRooms() []entities.RoomInfo {
	s.mu.RLock()
	rooms := make([]*room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.mu.RUnlock()

	infos := make([]entities.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		if !r.deleted {
			infos = append(infos, r.info.Clone())
		}
		r.mu.Unlock()
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt != infos[j].CreatedAt {
			return infos[i].CreatedAt < infos[j].CreatedAt
		}
		return infos[i].RoomID < infos[j].RoomID
	})
	return infos
}

// Restore loads every persisted room. Unreadable snapshots are logged and
// skipped.
func (s *RoomService) Restore(ctx context.Context) (int, error) {
	snaps, corrupt, err := s.snapshots.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("restore rooms: %w", err)
	}
	if corrupt != nil {
		s.logger.Warn("skipped unreadable room snapshots", zap.Error(corrupt))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, snap := range snaps {
		r := &room{ctx: ctx, info: snap.Room}
		if snap.State != nil {
			r.store = s.newStore(snap.Room.RoomID, *snap.State)
			r.archived = snap.State.Status == entities.GameStatusFinished
			s.watch(r)
		}
		s.rooms[snap.Room.RoomID] = r
	}
	s.logger.Info("rooms restored", zap.Int("rooms", len(snaps)))
	return len(snaps), nil
}

func (s *RoomService) lockRoom(ctx context.Context, roomID string) (*room, error) {
	s.mu.RLock()
	r, ok := s.rooms[roomID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrRoomNotFound)
	}

	r.mu.Lock()
	if r.deleted {
		r.mu.Unlock()
		return nil, fmt.Errorf("room %s: %w", roomID, ErrRoomNotFound)
	}
	r.ctx = ctx
	return r, nil
}

func (s *RoomService) deal(info entities.RoomInfo) (entities.GameState, error) {
	if len(info.Players) < engine.MinPlayers {
		return entities.GameState{}, ErrNotEnoughPlayers
	}
	players := make([]engine.PlayerInfo, len(info.Players))
	for i, p := range info.Players {
		players[i] = engine.PlayerInfo{ID: p.PlayerID, Name: p.Name}
	}
	return engine.NewGame(engine.Config{
		Players: players,
		Shuffle: s.shuffle,
		Seed:    s.seed(),
	})
}

func (s *RoomService) newStore(roomID string, state entities.GameState) *engine.Store {
	return engine.NewStore(state,
		engine.WithRules(s.rules),
		engine.WithLogger(s.logger.With(zap.String("room", roomID))),
		engine.WithClock(s.now),
	)
}

// watch publishes every state the room's store commits. The store calls
// back while the room is locked.
func (s *RoomService) watch(r *room) {
	r.unwatch = r.store.Subscribe(func(state entities.GameState) {
		r.info.Status = roomStatus(state.Status)
		s.publish(r, &state)
	})
}

func roomStatus(status entities.GameStatus) entities.RoomStatus {
	switch status {
	case entities.GameStatusPlaying:
		return entities.RoomStatusPlaying
	case entities.GameStatusFinished:
		return entities.RoomStatusEnd
	}
	return entities.RoomStatusWaiting
}

// snapshot must be called with r.mu held.
func (s *RoomService) snapshot(r *room) entities.RoomSnapshot {
	snap := entities.RoomSnapshot{Room: r.info.Clone()}
	if r.store != nil {
		state := r.store.GetState()
		snap.State = &state
	}
	return snap
}

// publish persists the room and fans the snapshot out. Called with r.mu held.
func (s *RoomService) publish(r *room, state *entities.GameState) {
	snap := entities.RoomSnapshot{Room: r.info.Clone(), State: state}
	if state == nil {
		snap = s.snapshot(r)
	}
	roomID := snap.Room.RoomID

	base := r.ctx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(base), s.timeout)
	defer cancel()

	if err := s.snapshots.Save(ctx, snap); err != nil {
		s.logger.Error("save room snapshot failed", zap.String("room", roomID), zap.Error(err))
	}

	if snap.State != nil && snap.State.Status == entities.GameStatusFinished && !r.archived {
		r.archived = true
		s.archiveResult(ctx, roomID, snap.State)
	}

	s.mu.RLock()
	listeners := append([]func(entities.RoomSnapshot){}, s.onChange...)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(snap)
	}
}

func (s *RoomService) archiveResult(ctx context.Context, roomID string, state *entities.GameState) {
	result := entities.NewGameResult(roomID, state, s.now().UnixMilli())
	s.logger.Info("game finished",
		zap.String("room", roomID),
		zap.String("winner", result.WinnerID),
		zap.Int("turns", result.Turns))
	if s.archive == nil {
		return
	}
	if err := s.archive.SaveResult(ctx, result); err != nil {
		s.logger.Error("archive game result failed", zap.String("room", roomID), zap.Error(err))
	}
}
