package worker

import (
	"reflect"

	"github.com/golang/glog"
	"github.com/open-horizon/archd/config"
	"github.com/open-horizon/archd/events"
)

type Command interface {
	ShortString() string
}

type Manager struct {
	Config   *config.ArchdConfig
	Messages chan events.Message // managers send messages
}

type Worker struct {
	Name string
	Manager
	Commands chan Command // workers can receive commands
}

// All workers need to implement this interface
type MessageHandler interface {
	NewEvent(events.Message)
	Messages() chan events.Message
}

type MessageHandlerRegistry struct {
	Handlers map[string]*MessageHandler
}

func NewMessageHandlerRegistry() *MessageHandlerRegistry {
	mhr := new(MessageHandlerRegistry)
	mhr.Handlers = make(map[string]*MessageHandler)
	return mhr
}

func (m *MessageHandlerRegistry) Add(name string, mh interface {
	MessageHandler
}) {

	if y, ok := mh.(MessageHandler); ok {
		m.Handlers[name] = &y
	}

}

func (m *MessageHandlerRegistry) Contains(name string) bool {
	_, exists := m.Handlers[name]
	return exists
}

// ProcessEventMessages distributes every message produced by one handler to
// all registered handlers. It returns when every handler has closed its
// message channel.
func (m *MessageHandlerRegistry) ProcessEventMessages() {

	names := []string{}
	cases := []reflect.SelectCase{}
	for name, handler := range m.Handlers {
		names = append(names, name)
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf((*handler).Messages()),
		})
	}

	for len(cases) > 0 {
		ix, value, ok := reflect.Select(cases)
		if !ok {
			glog.V(3).Infof("Message channel of %v closed.", names[ix])
			cases = append(cases[:ix], cases[ix+1:]...)
			names = append(names[:ix], names[ix+1:]...)
			continue
		}

		msg, isMsg := value.Interface().(events.Message)
		if !isMsg {
			glog.Errorf("Unexpected message type from %v: %v", names[ix], value.Interface())
			continue
		}

		glog.V(3).Infof("Event %v from %v", msg.ShortString(), names[ix])
		for _, handler := range m.Handlers {
			(*handler).NewEvent(msg)
		}
	}
}
