package arch

import (
	"github.com/golang/glog"
	"github.com/open-horizon/archd/config"
	"github.com/open-horizon/archd/events"
	"github.com/open-horizon/archd/worker"
)

// ResolverWorker runs the one time architecture resolution off the control
// path and announces the outcome to the other workers.
type ResolverWorker struct {
	worker.Worker // embedded field
	resolver      *Resolver
}

func NewResolverWorker(name string, cfg *config.ArchdConfig) *ResolverWorker {
	messages := make(chan events.Message)

	w := &ResolverWorker{
		Worker: worker.Worker{
			Name: name,
			Manager: worker.Manager{
				Config:   cfg,
				Messages: messages,
			},
			// no Commands channel: this worker does its one job and never
			// takes commands
		},

		resolver: NewResolver(cfg.ResolveMachineType(), cfg.CompatTablePath),
	}

	w.start()
	return w
}

// Worker framework functions
func (w *ResolverWorker) Messages() chan events.Message {
	return w.Manager.Messages
}

func (w *ResolverWorker) NewEvent(ev events.Message) {
	return
}

// Resolver returns the shared resolver instance. Its query functions are safe
// to use once the ARCH_RESOLVED event has been observed.
func (w *ResolverWorker) Resolver() *Resolver {
	return w.resolver
}

func (w *ResolverWorker) start() {
	go func() {
		glog.V(2).Infof("%v: resolving supported architectures", w.Name)
		w.resolver.Load()

		if len(w.resolver.Supported()) == 0 {
			w.Manager.Messages <- events.NewArchUnavailableMessage(events.ARCH_UNAVAILABLE, "architecture compatibility table unreadable")
			return
		}

		glog.Infof("%v: default architecture %v, supported %v", w.Name, w.resolver.Default(), w.resolver.Supported())
		w.Manager.Messages <- events.NewArchResolvedMessage(events.ARCH_RESOLVED, w.resolver.Default(), w.resolver.Supported())
	}()
}
