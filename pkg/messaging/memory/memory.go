// Package memory is an in-process broker used when no Redis is configured.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/hospiflow/pkg/messaging"
)

var ErrClosed = errors.New("broker closed")

const bufferSize = 100

type subscriber struct {
	ch   chan []byte
	done <-chan struct{}
}

type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscriber]struct{}
	closed bool
	logger *zerolog.Logger
}

func NewBroker(logger *zerolog.Logger) messaging.Broker {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Broker{
		subs:   make(map[string]map[*subscriber]struct{}),
		logger: logger,
	}
}

// Publish delivers to every current subscriber. A subscriber whose buffer is
// full misses the message rather than blocking the publisher.
func (b *Broker) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	for sub := range b.subs[channel] {
		select {
		case <-sub.done:
		case sub.ch <- payload:
		default:
			b.logger.Warn().Str("channel", channel).Msg("subscriber buffer full, dropping message")
		}
	}
	return nil
}

func (b *Broker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	sub := &subscriber{ch: make(chan []byte, bufferSize), done: ctx.Done()}
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*subscriber]struct{})
	}
	b.subs[channel][sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.remove(channel, sub)
	}()

	return sub.ch, nil
}

func (b *Broker) remove(channel string, sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[channel][sub]; ok {
		delete(b.subs[channel], sub)
		close(sub.ch)
	}
}

func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for channel, subs := range b.subs {
		for sub := range subs {
			close(sub.ch)
		}
		delete(b.subs, channel)
	}
	return nil
}
