//go:build unit
// +build unit

package worker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/open-horizon/archd/events"
)

type fakeHandler struct {
	messages chan events.Message
	received int32
}

func (f *fakeHandler) Messages() chan events.Message {
	return f.messages
}

func (f *fakeHandler) NewEvent(ev events.Message) {
	atomic.AddInt32(&f.received, 1)
}

func Test_Registry_AddContains(t *testing.T) {

	registry := NewMessageHandlerRegistry()

	if registry.Contains("fake") {
		t.Errorf("Empty registry claims to contain a handler.")
	}

	registry.Add("fake", &fakeHandler{messages: make(chan events.Message)})

	if !registry.Contains("fake") {
		t.Errorf("Registry does not contain an added handler.")
	}
}

func Test_ProcessEventMessages_fanout(t *testing.T) {

	registry := NewMessageHandlerRegistry()

	producer := &fakeHandler{messages: make(chan events.Message, 1)}
	consumer := &fakeHandler{messages: make(chan events.Message)}
	registry.Add("producer", producer)
	registry.Add("consumer", consumer)

	producer.messages <- events.NewArchResolvedMessage(events.ARCH_RESOLVED, "amd64", []string{"amd64"})
	close(producer.messages)
	close(consumer.messages)

	done := make(chan bool)
	go func() {
		registry.ProcessEventMessages()
		done <- true
	}()

	select {
	case <-done:
		// the loop exits once all message channels are closed
	case <-time.After(10 * time.Second):
		t.Fatalf("ProcessEventMessages did not terminate.")
	}

	if atomic.LoadInt32(&producer.received) != 1 || atomic.LoadInt32(&consumer.received) != 1 {
		t.Errorf("Message was not delivered to all handlers: producer %v, consumer %v",
			producer.received, consumer.received)
	}
}
