package tui

import (
	"context"
	"sync"

	"gestao-cli/internal/crud"

	tea "github.com/charmbracelet/bubbletea"
)

type noticeMsg struct{ notice crud.Notice }

type confirmRequestMsg struct {
	title string
	body  string
	opts  crud.ConfirmOptions
	reply chan<- bool
}

// bridge lets controllers talk to the running program. Controllers call it
// from command goroutines; calling it from Update would deadlock, since Send
// waits for the event loop.
type bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (b *bridge) attach(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	b.mu.Unlock()
}

func (b *bridge) post(msg tea.Msg) bool {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send == nil {
		return false
	}
	send(msg)
	return true
}

func (b *bridge) Notify(_ context.Context, n crud.Notice) {
	b.post(noticeMsg{notice: n})
}

// Confirm opens the confirm modal and waits for the answer. Without a
// program attached the answer is no.
func (b *bridge) Confirm(ctx context.Context, title, body string, opts crud.ConfirmOptions) (bool, error) {
	reply := make(chan bool, 1)
	if !b.post(confirmRequestMsg{title: title, body: body, opts: opts, reply: reply}) {
		return false, nil
	}
	select {
	case yes := <-reply:
		return yes, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
