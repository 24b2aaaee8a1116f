// Package session keeps one room listing per visitor.
//
// Each session owns a rooms.Adapter, a share URL kept in sync by the engine,
// and a storage key under which its sort and page survive restarts when the
// manager is given persistent storage. Sessions expire after an idle period.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hotel-site/room-filter/internal/domain"
	"github.com/hotel-site/room-filter/internal/infrastructure/logger"
	"github.com/hotel-site/room-filter/internal/infrastructure/timeutil"
	"github.com/hotel-site/room-filter/internal/query"
	"github.com/hotel-site/room-filter/internal/rooms"
	"github.com/hotel-site/room-filter/internal/urlstate"
)

const (
	// DefaultIdleTimeout is how long a session lives without being used.
	DefaultIdleTimeout = 30 * time.Minute

	// DefaultBasePath is the listing address sessions start from.
	DefaultBasePath = "/rooms"

	storageKeyPrefix = "rooms:"
)

// ErrSessionLimit is returned when the manager already holds MaxSessions live sessions.
var ErrSessionLimit = errors.New("session limit reached")

// Config configures a Manager.
type Config struct {
	// IdleTimeout expires sessions not used for this long. Zero uses DefaultIdleTimeout.
	IdleTimeout time.Duration

	// MaxSessions caps live sessions. Zero means no cap.
	MaxSessions int

	// BasePath is the share URL path. Empty uses DefaultBasePath.
	BasePath string

	// Debounce and SearchDebounce are passed to each session's adapter.
	Debounce       time.Duration
	SearchDebounce time.Duration

	// PageSize is used when a session is created without one.
	PageSize int

	// Locale orders room names.
	Locale string

	// Storage persists sort and pagination per session. nil disables persistence.
	Storage query.Storage

	Clock  timeutil.Clock
	Logger zerolog.Logger
}

// CreateParams describes a new session.
type CreateParams struct {
	Filters  domain.RoomFilters
	SortBy   domain.SortOption
	PageSize int

	// Page opens the listing on this page. Values below 2 start on the first page.
	Page int

	// Resume reuses the ID of an earlier session so its stored sort and page
	// are restored. It must be a UUID that is not live.
	Resume string
}

// Session is one visitor's listing.
type Session struct {
	ID        string
	CreatedAt time.Time

	Rooms    *rooms.Adapter
	Location *urlstate.Location

	lastSeen time.Time
}

// StorageKey returns the key the session's state is persisted under.
func (s *Session) StorageKey() string { return storageKeyPrefix + s.ID }

// IDFromStorageKey returns the session ID a storage key belongs to, or "" when
// the key is not a session key.
func IDFromStorageKey(key string) string {
	id, ok := strings.CutPrefix(key, storageKeyPrefix)
	if !ok {
		return ""
	}
	return id
}

// Manager creates, finds and expires sessions. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	catalog  []domain.Room

	cfg   Config
	clock timeutil.Clock
	log   zerolog.Logger
}

// NewManager creates a Manager serving the given room catalog.
func NewManager(catalog []domain.Room, cfg *Config) *Manager {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if c.Clock == nil {
		c.Clock = timeutil.NewRealClock()
	}

	return &Manager{
		sessions: make(map[string]*Session),
		catalog:  catalog,
		cfg:      c,
		clock:    c.Clock,
		log:      logger.WithComponent(c.Logger, "session_manager"),
	}
}

// Create starts a new session.
func (m *Manager) Create(p CreateParams) (*Session, error) {
	id, err := m.newID(p.Resume)
	if err != nil {
		return nil, err
	}

	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = m.cfg.PageSize
	}

	loc, err := urlstate.New(m.cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("%w: base path: %v", domain.ErrInvalidRequest, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, live := m.sessions[id]; live {
		return nil, fmt.Errorf("%w: session %s is already active", domain.ErrInvalidRequest, id)
	}
	if m.cfg.MaxSessions > 0 && len(m.sessions) >= m.cfg.MaxSessions {
		m.sweepLocked()
		if len(m.sessions) >= m.cfg.MaxSessions {
			return nil, ErrSessionLimit
		}
	}

	s := &Session{ID: id, Location: loc}
	adapter, err := rooms.New(m.catalog, &rooms.Options{
		InitialFilters: p.Filters,
		SortBy:         p.SortBy,
		PageSize:       pageSize,
		SearchDebounce: m.cfg.SearchDebounce,
		Locale:         m.cfg.Locale,
		Engine: query.Options[rooms.AugmentedRoom]{
			Debounce:   m.cfg.Debounce,
			StorageKey: s.StorageKey(),
			SyncURL:    true,
			Storage:    m.cfg.Storage,
			URLWriter:  loc,
			Clock:      m.clock,
			Logger:     logger.WithSession(m.log, id),
		},
	})
	if err != nil {
		return nil, err
	}

	if p.Page > 1 {
		adapter.SetPage(p.Page)
	}

	now := m.clock.Now()
	s.Rooms = adapter
	s.CreatedAt = now
	s.lastSeen = now
	m.sessions[id] = s

	log := logger.WithSession(m.log, id)
	log.Info().
		Bool("resumed", p.Resume != "").
		Int("active_sessions", len(m.sessions)).
		Msg("Session created")

	return s, nil
}

// Get returns a live session and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	s.lastSeen = m.clock.Now()
	return s, nil
}

// Delete ends a session and removes its stored state.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}

	s.Rooms.Close()
	if d, ok := m.cfg.Storage.(interface{ Delete(string) error }); ok {
		if err := d.Delete(s.StorageKey()); err != nil {
			log := logger.WithSession(m.log, id)
			log.Warn().Err(err).Msg("Failed to delete session state")
		}
	}

	log := logger.WithSession(m.log, id)
	log.Info().Msg("Session deleted")
	return nil
}

// Sweep closes sessions idle for longer than the idle timeout and returns how
// many were removed. Their stored state is kept so they can be resumed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked()
}

func (m *Manager) sweepLocked() int {
	cutoff := m.clock.Now().Add(-m.cfg.IdleTimeout)
	removed := 0
	for id, s := range m.sessions {
		if s.lastSeen.After(cutoff) {
			continue
		}
		s.Rooms.Close()
		delete(m.sessions, id)
		removed++
	}
	if removed > 0 {
		m.log.Info().
			Int("expired", removed).
			Int("active_sessions", len(m.sessions)).
			Msg("Expired idle sessions")
	}
	return removed
}

// StartSweeper runs Sweep every interval until the returned stop function is called.
func (m *Manager) StartSweeper(interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = m.cfg.IdleTimeout
	}

	var (
		mu      sync.Mutex
		timer   timeutil.Timer
		stopped bool
	)

	var tick func()
	tick = func() {
		m.Sweep()

		mu.Lock()
		defer mu.Unlock()
		if !stopped {
			timer = m.clock.AfterFunc(interval, tick)
		}
	}

	mu.Lock()
	timer = m.clock.AfterFunc(interval, tick)
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		timer.Stop()
	}
}

// SetCatalog replaces the rooms served by every live session and by sessions created later.
func (m *Manager) SetCatalog(catalog []domain.Room) {
	m.mu.Lock()
	m.catalog = catalog
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.Unlock()

	for _, s := range live {
		s.Rooms.SetRooms(catalog)
	}
	m.log.Info().Int("rooms", len(catalog)).Int("sessions", len(live)).Msg("Catalog replaced")
}

// Catalog returns the rooms new sessions are created over.
func (m *Manager) Catalog() []domain.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalog
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close ends every live session without removing stored state.
func (m *Manager) Close() {
	m.mu.Lock()
	live := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range live {
		s.Rooms.Close()
	}
}

func (m *Manager) newID(resume string) (string, error) {
	if resume == "" {
		return uuid.NewString(), nil
	}
	id, err := uuid.Parse(resume)
	if err != nil {
		return "", fmt.Errorf("%w: resume id: %v", domain.ErrInvalidRequest, err)
	}
	return id.String(), nil
}
