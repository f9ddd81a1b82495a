// Package telemetry 通过 websocket 向旁观者广播引擎上报的事件
//
// Feed 实现 game.Observer。引擎在模拟 goroutine 中同步回调 Feed，
// Feed 只负责序列化并放入缓冲队列，网络写入在 Run 的 goroutine 中完成，
// 因此慢连接不会拖慢模拟。
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/decker502/skyshot/pkg/game"
	"github.com/gorilla/websocket"
)

const (
	// FeedPath websocket 端点路径
	FeedPath = "/feed"

	writeTimeout      = 2 * time.Second
	defaultBufferSize = 256
)

// Event 推送给旁观者的一条消息
type Event struct {
	Type      string          `json:"type"` // tick / score / won / lost / notice
	Telemetry *game.Telemetry `json:"telemetry,omitempty"`
	Score     int             `json:"score,omitempty"`
	Round     int             `json:"round,omitempty"`
	Notice    *game.Notice    `json:"notice,omitempty"`
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Feed 旁观者广播
type Feed struct {
	upgrader websocket.Upgrader
	events   chan []byte

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}

	// 只在模拟 goroutine 中访问
	lastTick    game.Telemetry
	hasLastTick bool
	dropped     int
}

// NewFeed 创建广播器，bufferSize 为待发送事件的队列长度
func NewFeed(bufferSize int) *Feed {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Feed{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		events:      make(chan []byte, bufferSize),
		subscribers: make(map[*subscriber]struct{}),
	}
}

// ServeHTTP 升级连接并注册为订阅者
// 旁观者发送的消息被忽略，读取失败即视为断开
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Feed] Upgrade failed: %v", err)
		return
	}

	sub := &subscriber{conn: conn}
	f.mu.Lock()
	f.subscribers[sub] = struct{}{}
	count := len(f.subscribers)
	f.mu.Unlock()
	log.Printf("[Feed] Spectator connected from %s (%d total)", r.RemoteAddr, count)

	go func() {
		defer f.remove(sub)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (f *Feed) remove(sub *subscriber) {
	f.mu.Lock()
	_, ok := f.subscribers[sub]
	delete(f.subscribers, sub)
	f.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

// Subscribers 当前订阅者数量
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}

// Run 把队列中的事件广播给所有订阅者，直到 ctx 取消
func (f *Feed) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			f.closeAll()
			return
		case data := <-f.events:
			f.broadcast(data)
		}
	}
}

func (f *Feed) broadcast(data []byte) {
	f.mu.Lock()
	subs := make([]*subscriber, 0, len(f.subscribers))
	for sub := range f.subscribers {
		subs = append(subs, sub)
	}
	f.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		_ = sub.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := sub.conn.WriteMessage(websocket.TextMessage, data)
		sub.mu.Unlock()
		if err != nil {
			log.Printf("[Feed] Write failed, dropping spectator: %v", err)
			f.remove(sub)
		}
	}
}

func (f *Feed) closeAll() {
	f.mu.Lock()
	subs := f.subscribers
	f.subscribers = make(map[*subscriber]struct{})
	f.mu.Unlock()

	for sub := range subs {
		sub.mu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed")
		_ = sub.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
		sub.conn.Close()
		sub.mu.Unlock()
	}
}

// publish 序列化事件并入队，队列已满时丢弃
func (f *Feed) publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Feed] Failed to encode %s event: %v", ev.Type, err)
		return
	}
	select {
	case f.events <- data:
	default:
		f.dropped++
		if f.dropped%100 == 1 {
			log.Printf("[Feed] Queue full, %d events dropped", f.dropped)
		}
	}
}

// OnTick 只在遥测数据变化时推送
func (f *Feed) OnTick(t game.Telemetry) {
	if f.hasLastTick && t == f.lastTick {
		return
	}
	f.lastTick, f.hasLastTick = t, true
	f.publish(Event{Type: "tick", Telemetry: &t})
}

func (f *Feed) OnRoundWon(score, round int) {
	f.publish(Event{Type: "won", Score: score, Round: round})
}

func (f *Feed) OnRoundLost(score int) {
	f.publish(Event{Type: "lost", Score: score})
}

func (f *Feed) OnScoreChanged(score, round int) {
	f.publish(Event{Type: "score", Score: score, Round: round})
}

func (f *Feed) OnNotice(n game.Notice) {
	f.publish(Event{Type: "notice", Notice: &n})
}

// ListenAndServe 在 addr 上提供 FeedPath 端点并广播事件，ctx 取消时关闭
func (f *Feed) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(FeedPath, f)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go f.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[Feed] Listening on %s%s", addr, FeedPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve spectator feed on %s: %w", addr, err)
	}
	return nil
}
