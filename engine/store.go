package engine

import (
	"time"

	"go.uber.org/zap"

	"go-splendor/entities"
)

// Listener receives a copy of the state after every committed change.
type Listener func(entities.GameState)

// Store owns one game's state. It is not safe for concurrent use; callers
// serialize access per game.
type Store struct {
	state     entities.GameState
	rules     Rules
	validator Validator
	applier   Applier
	logger    *zap.Logger
	now       func() time.Time

	listeners map[int]Listener
	nextID    int
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithRules(rules Rules) Option {
	return func(s *Store) { s.rules = rules }
}

// WithClock replaces time.Now for action timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(state entities.GameState, opts ...Option) *Store {
	s := &Store{
		state:     state.Clone(),
		rules:     DefaultRules(),
		logger:    zap.NewNop(),
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validator = NewValidator(s.rules)
	s.applier = NewApplier(s.rules)
	return s
}

func (s *Store) Rules() Rules {
	return s.rules
}

// GetState returns a snapshot that callers may modify freely.
func (s *Store) GetState() entities.GameState {
	return s.state.Clone()
}

// Validate reports whether action would be accepted right now.
func (s *Store) Validate(action entities.GameAction) error {
	return s.validator.Validate(&s.state, action)
}

// Start moves a waiting game into play.
func (s *Store) Start() (entities.GameState, error) {
	if s.state.Status != entities.GameStatusWaiting {
		return entities.GameState{}, reject(CodeGameNotInProgress, "game is already %s", s.state.Status)
	}
	s.state.Status = entities.GameStatusPlaying
	s.logger.Info("game started", zap.Int("players", len(s.state.Players)))
	s.notify()
	return s.state.Clone(), nil
}

// PerformAction validates and commits action. On rejection the state is
// unchanged, no listener is called, and the error is a *Rejection.
func (s *Store) PerformAction(action entities.GameAction) (entities.GameState, error) {
	action.Details = normalizeDetails(action.Details)
	if err := s.validator.Validate(&s.state, action); err != nil {
		s.logger.Info("action rejected",
			zap.String("player", action.PlayerID),
			zap.String("action", string(action.Type)),
			zap.Error(err))
		return entities.GameState{}, err
	}

	action.Timestamp = s.timestamp()
	prev := s.state
	s.state = s.applier.Apply(s.state, action)

	s.logger.Debug("action applied",
		zap.String("player", action.PlayerID),
		zap.String("action", string(action.Type)),
		zap.Int("turn", s.state.Turn))
	if s.state.Status == entities.GameStatusFinished && prev.Status != entities.GameStatusFinished {
		s.logger.Info("game finished",
			zap.Stringp("winner", s.state.Winner),
			zap.Int("turns", s.state.Turn))
	}
	s.notify()
	return s.state.Clone(), nil
}

// Reset replaces the whole state, for a new game in the same session.
func (s *Store) Reset(state entities.GameState) {
	s.state = state.Clone()
	s.notify()
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() { delete(s.listeners, id) }
}

func (s *Store) notify() {
	for _, l := range s.listeners {
		l(s.state.Clone())
	}
}

// timestamp stamps from the store clock, ignoring whatever the caller sent,
// and keeps the action log ordered even if the clock steps back.
func (s *Store) timestamp() int64 {
	ts := s.now().UnixMilli()
	if n := len(s.state.Actions); n > 0 && ts < s.state.Actions[n-1].Timestamp {
		ts = s.state.Actions[n-1].Timestamp
	}
	return ts
}
