package help

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// cleanupTimeout bounds the Discord calls made after a session ends
const cleanupTimeout = 5 * time.Second

// Event is one navigation request for a session
type Event struct {
	Action Action
	// Page is the target of ActionJump
	Page   int
	UserID string
	// Emoji is the reaction that produced the event, in API form
	Emoji string
	// Interaction is the component press that produced the event
	Interaction *discordgo.Interaction
}

// view puts a session on screen. Both methods run on the session goroutine.
type view interface {
	// show renders the current page after an event. changed is false when
	// the event was refused or left the page as it was.
	show(ctx context.Context, s *Session, ev Event, index int, changed bool)
	// close removes the navigation affordances. ev is nil unless the viewer
	// asked for the close.
	close(ctx context.Context, s *Session, ev *Event, reason CloseReason)
}

// Session is one paginated help message and its navigation state.
// Events are handled one at a time on the session's own goroutine.
type Session struct {
	Key       string
	OwnerID   string
	ChannelID string
	MessageID string
	CreatedAt time.Time
	Pages     []*discordgo.MessageEmbed

	timeout time.Duration
	nav     *Navigator
	view    view
	events  chan Event
	done    chan struct{}

	mu           sync.Mutex
	lastActivity time.Time
	onDone       func()
}

func newSession(key, ownerID, channelID, messageID string, pages []*discordgo.MessageEmbed, timeout time.Duration, wrap bool, v view) (*Session, error) {
	nav, err := NewNavigator(len(pages), wrap)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		Key:          key,
		OwnerID:      ownerID,
		ChannelID:    channelID,
		MessageID:    messageID,
		CreatedAt:    now,
		Pages:        pages,
		timeout:      timeout,
		nav:          nav,
		view:         v,
		events:       make(chan Event, 8),
		done:         make(chan struct{}),
		lastActivity: now,
	}, nil
}

// Dispatch queues an event. It returns false once the session has ended.
func (s *Session) Dispatch(ev Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case <-s.done:
		return false
	case s.events <- ev:
		return true
	}
}

// Done is closed when the session has ended and cleaned up
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// LastActivity returns the time of the last accepted transition
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Index returns the page currently shown
func (s *Session) Index() int {
	return s.nav.Index()
}

// Reason returns why the session ended, zero while it is running
func (s *Session) Reason() CloseReason {
	return s.nav.Reason()
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Session) run(ctx context.Context) {
	defer func() {
		if s.onDone != nil {
			s.onDone()
		}
		close(s.done)
	}()

	var expired <-chan time.Time
	var timer *time.Timer
	if s.timeout > 0 {
		timer = time.NewTimer(s.timeout)
		defer timer.Stop()
		expired = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			s.finish(nil, CloseDisposed)
			return

		case <-expired:
			s.finish(nil, CloseTimeout)
			return

		case ev := <-s.events:
			if ev.Action == ActionClose {
				s.finish(&ev, CloseRequested)
				return
			}

			before := s.nav.Index()
			if !s.nav.Apply(ev.Action, ev.Page) {
				s.view.show(ctx, s, ev, before, false)
				continue
			}

			s.touch()
			if timer != nil {
				timer.Reset(s.timeout)
			}
			index := s.nav.Index()
			s.view.show(ctx, s, ev, index, index != before)
		}
	}
}

func (s *Session) finish(ev *Event, reason CloseReason) {
	if !s.nav.Close(reason) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	log.Printf("Help session %s closed: %s", s.Key, reason)
	s.view.close(ctx, s, ev, reason)
}

// SessionManager routes events to running sessions by key. A key is the
// message ID for reaction menus and the component token for app menus.
type SessionManager struct {
	sessions map[string]*Session
	cancels  map[string]context.CancelFunc
	mu       sync.RWMutex
	wg       sync.WaitGroup
}

// NewSessionManager creates an empty session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Start runs the session until it is closed, times out or ctx is cancelled
func (m *SessionManager) Start(ctx context.Context, s *Session) {
	ctx, cancel := context.WithCancel(ctx)

	m.mu.Lock()
	if old, exists := m.cancels[s.Key]; exists {
		old()
	}
	m.sessions[s.Key] = s
	m.cancels[s.Key] = cancel
	m.mu.Unlock()

	s.onDone = func() {
		cancel()
		m.remove(s)
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		s.run(ctx)
	}()
}

func (m *SessionManager) remove(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// a newer session may have taken the key
	if m.sessions[s.Key] == s {
		delete(m.sessions, s.Key)
		delete(m.cancels, s.Key)
	}
}

// Get retrieves a running session
func (m *SessionManager) Get(key string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, exists := m.sessions[key]
	return s, exists
}

// Len returns the number of running sessions
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll disposes every running session and waits for their cleanup
func (m *SessionManager) CloseAll() {
	m.mu.RLock()
	for _, cancel := range m.cancels {
		cancel()
	}
	m.mu.RUnlock()

	m.wg.Wait()
}
