package leaderboard

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/BananaMi1kshake/TheMonetizationGame/internal/config"
)

// Entry is one row on the shared board.
type Entry struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	CompanyName string    `json:"companyName"`
	Money       float64   `json:"money"`
	Timestamp   time.Time `json:"timestamp"`
}

// Score is what Run polls from the game each publish interval.
type Score struct {
	DisplayName string
	CompanyName string
	Money       float64
}

// Client maintains one websocket session with the leaderboard service:
// scores go out at the publish interval, the full board streams back in. A
// nil *Client is a no-op, so the server works identically with the board
// disabled.
type Client struct {
	cfg    config.Leaderboard
	id     Identity
	logger *log.Logger

	mu   sync.Mutex
	feed []Entry
}

func NewClient(cfg config.Leaderboard, id Identity, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{cfg: cfg, id: id, logger: logger}
}

// Run connects and pumps scores until the context is cancelled. A failed
// dial or a dropped connection disables the board for the rest of the
// session; the game never blocks on it.
func (c *Client) Run(ctx context.Context, score func() Score) {
	if c == nil {
		return
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		c.logger.Printf("leaderboard: dial %s failed, board disabled: %v", c.cfg.URL, err)
		return
	}
	defer conn.Close()

	go c.readLoop(conn)

	interval := time.Duration(c.cfg.PublishIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			return
		case <-ticker.C:
			s := score()
			entry := Entry{
				ID:          c.id.ID,
				DisplayName: s.DisplayName,
				CompanyName: s.CompanyName,
				Money:       s.Money,
				Timestamp:   time.Now().UTC(),
			}
			if err := conn.WriteJSON(entry); err != nil {
				c.logger.Printf("leaderboard: publish failed, board disabled: %v", err)
				return
			}
		}
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		var feed []Entry
		if err := conn.ReadJSON(&feed); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Printf("leaderboard: feed closed: %v", err)
			}
			return
		}
		c.setFeed(feed)
	}
}

func (c *Client) setFeed(feed []Entry) {
	sort.Slice(feed, func(i, j int) bool { return feed[i].Money > feed[j].Money })
	c.mu.Lock()
	c.feed = feed
	c.mu.Unlock()
}

// Feed returns the latest board snapshot, richest first. Empty until the
// first feed arrives or when the board is disabled.
func (c *Client) Feed() []Entry {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.feed...)
}
