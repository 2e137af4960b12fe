package main

import (
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/golang/glog"
	"github.com/open-horizon/archd/api"
	"github.com/open-horizon/archd/arch"
	"github.com/open-horizon/archd/config"
	"github.com/open-horizon/archd/worker"
)

// archd is a small event driven daemon. On startup the config file is read in,
// then the workers are fired up: one resolves the supported architectures for
// this machine off the control path, the other serves the query API that the
// orchestrator uses to pick compatible artifacts.
func main() {
	configFile := flag.String("config", "/etc/archd/archd.config", "Config file location")

	flag.Parse()

	cfg, err := config.Read(*configFile)
	if err != nil {
		panic(err)
	}
	glog.V(2).Infof("Using config: %v", cfg)
	glog.V(2).Infof("GOMAXPROCS: %v", runtime.GOMAXPROCS(-1))

	// start control signal handler
	control := make(chan os.Signal, 1)
	signal.Notify(control, os.Interrupt)
	signal.Notify(control, syscall.SIGTERM)

	go func() {
		<-control
		glog.Infof("Closing up shop.")
		os.Exit(0)
	}()

	// start workers
	workers := worker.NewMessageHandlerRegistry()

	resolverWorker := arch.NewResolverWorker("ArchResolver", cfg)
	workers.Add("ArchResolver", resolverWorker)

	if cfg.APIListen != "" {
		workers.Add("API", api.NewAPIListener("API", cfg, resolverWorker.Resolver()))
	}

	// Get into the event processing loop until archd shuts itself down.
	workers.ProcessEventMessages()

	glog.Info("Main process terminating")
}
