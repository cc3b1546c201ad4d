package matchservice

import (
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ------------------------
// Fake Publisher
// ------------------------

// FakePublisher records published topics and messages.
type FakePublisher struct {
	mu       sync.Mutex
	trace    []string
	messages []*message.Message

	PublishFunc func(topic string, messages ...*message.Message) error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{trace: []string{}}
}

func (f *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	f.mu.Lock()
	f.trace = append(f.trace, topic)
	f.messages = append(f.messages, messages...)
	f.mu.Unlock()

	if f.PublishFunc != nil {
		return f.PublishFunc(topic, messages...)
	}
	return nil
}

// Trace returns the sequence of topics published to.
func (f *FakePublisher) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Last returns the most recent message, or nil.
func (f *FakePublisher) Last() *message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		return nil
	}
	return f.messages[len(f.messages)-1]
}

var _ Publisher = (*FakePublisher)(nil)
