// Package chat implements the demo assistant: every user message gets a
// "Typing..." placeholder that is replaced by a canned reply after a delay.
// There is no model behind it.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Who identifies the author of a message
type Who string

const (
	User Who = "user"
	AI   Who = "ai"
)

const (
	// Placeholder is shown while a reply is pending
	Placeholder = "Typing..."

	// Reply is the canned answer to every message
	Reply = "I can help with that (demo reply)"

	// DefaultDelay is how long the placeholder stays before the reply
	DefaultDelay = 600 * time.Millisecond
)

var (
	// ErrEmptyMessage is returned when sending blank text
	ErrEmptyMessage = errors.New("message is empty")

	// ErrClosed is returned when sending on a closed conversation
	ErrClosed = errors.New("conversation is closed")
)

// Message is one line of the conversation
type Message struct {
	ID   string    `json:"id" yaml:"id"`
	Who  Who       `json:"who" yaml:"who"`
	Text string    `json:"text" yaml:"text"`
	At   time.Time `json:"at" yaml:"at"`
}

// Pending reports whether m is a placeholder awaiting its reply
func (m Message) Pending() bool {
	return m.Who == AI && m.Text == Placeholder
}

// pending is the reply slot of a conversation
type pending struct {
	id    string
	timer Timer
	done  chan struct{}
}

// Conversation holds the ordered chat history. At most one reply is pending
// at a time; sending while a reply is pending resolves it first, so every
// user message is directly followed by its own reply.
type Conversation struct {
	mu       sync.Mutex
	messages []Message
	pending  *pending
	closed   bool

	clock   Clock
	delay   time.Duration
	newID   func() string
	onReply func(Message)
	logger  *zap.Logger
}

// Option is a function that modifies Conversation configuration
type Option func(*Conversation)

// WithClock sets the clock used to schedule replies
func WithClock(clock Clock) Option {
	return func(c *Conversation) {
		c.clock = clock
	}
}

// WithDelay sets the reply delay
func WithDelay(d time.Duration) Option {
	return func(c *Conversation) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithReplyHook registers f to be called with each reply once it replaces
// its placeholder. f runs without the conversation lock held.
func WithReplyHook(f func(Message)) Option {
	return func(c *Conversation) {
		c.onReply = f
	}
}

// WithIDGenerator replaces the UUID generator for message IDs
func WithIDGenerator(f func() string) Option {
	return func(c *Conversation) {
		c.newID = f
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Conversation) {
		c.logger = logger
	}
}

// New creates an empty conversation
func New(opts ...Option) *Conversation {
	c := &Conversation{
		messages: []Message{},
		clock:    RealClock{},
		delay:    DefaultDelay,
		newID:    uuid.NewString,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send appends text as a user message followed by the reply placeholder and
// returns the updated history. Blank text is rejected with ErrEmptyMessage.
func (c *Conversation) Send(text string) ([]Message, error) {
	if strings.TrimSpace(text) == "" {
		return c.Messages(), ErrEmptyMessage
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return c.Messages(), ErrClosed
	}

	var replies []Message
	if c.pending != nil {
		c.logger.Debug("resolving pending reply early", zap.String("id", c.pending.id))
		if reply, ok := c.resolveLocked(c.pending); ok {
			replies = append(replies, reply)
		}
	}

	now := c.clock.Now()
	placeholder := Message{ID: c.newID(), Who: AI, Text: Placeholder, At: now}
	c.messages = append(c.messages,
		Message{ID: c.newID(), Who: User, Text: text, At: now},
		placeholder,
	)

	p := &pending{id: placeholder.ID, done: make(chan struct{})}
	c.pending = p
	p.timer = c.clock.AfterFunc(c.delay, func() { c.fire(p) })

	history := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(replies...)
	return history, nil
}

// fire runs when the reply timer expires
func (c *Conversation) fire(p *pending) {
	c.mu.Lock()
	if c.pending != p {
		// Resolved early or cancelled
		c.mu.Unlock()
		return
	}
	reply, ok := c.resolveLocked(p)
	c.mu.Unlock()

	if ok {
		c.notify(reply)
	}
}

// resolveLocked replaces the placeholder of p with the reply.
// Caller must hold c.mu.
func (c *Conversation) resolveLocked(p *pending) (Message, bool) {
	p.timer.Stop()
	c.pending = nil
	defer close(p.done)

	for i := range c.messages {
		if c.messages[i].ID == p.id {
			c.messages[i].Text = Reply
			c.messages[i].At = c.clock.Now()
			return c.messages[i], true
		}
	}
	return Message{}, false
}

func (c *Conversation) notify(replies ...Message) {
	if c.onReply == nil {
		return
	}
	for _, r := range replies {
		c.onReply(r)
	}
}

// Cancel stops the pending reply, if any, and removes its placeholder
func (c *Conversation) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

func (c *Conversation) cancelLocked() {
	p := c.pending
	if p == nil {
		return
	}
	p.timer.Stop()
	c.pending = nil
	for i := range c.messages {
		if c.messages[i].ID == p.id {
			c.messages = append(c.messages[:i], c.messages[i+1:]...)
			break
		}
	}
	close(p.done)
}

// Close cancels any pending reply and refuses further sends
func (c *Conversation) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.closed = true
}

// Wait blocks until no reply is pending or ctx is done
func (c *Conversation) Wait(ctx context.Context) error {
	for {
		c.mu.Lock()
		p := c.pending
		c.mu.Unlock()
		if p == nil {
			return nil
		}

		select {
		case <-p.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Pending reports whether a reply is waiting on its timer
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Messages returns a copy of the history in order
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Conversation) snapshotLocked() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}
