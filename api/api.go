package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"sync/atomic"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/open-horizon/archd/arch"
	"github.com/open-horizon/archd/config"
	"github.com/open-horizon/archd/events"
	"github.com/open-horizon/archd/worker"
)

type API struct {
	worker.Manager // embedded field
	resolver       *arch.Resolver
	resolved       atomic.Bool // set once arch resolution has finished; the resolver must not be read before then
}

func NewAPIListener(name string, config *config.ArchdConfig, resolver *arch.Resolver) *API {
	messages := make(chan events.Message)

	listener := &API{
		Manager: worker.Manager{
			Config:   config,
			Messages: messages,
		},

		resolver: resolver,
	}

	listener.listen(config.APIListen)
	return listener
}

// Worker framework functions
func (a *API) Messages() chan events.Message {
	return a.Manager.Messages
}

func (a *API) NewEvent(ev events.Message) {
	switch ev.Event().Id {
	case events.ARCH_RESOLVED:
		glog.V(2).Infof("API serving resolved architectures: %v", ev.ShortString())
		a.resolved.Store(true)
	case events.ARCH_UNAVAILABLE:
		glog.Warningf("API serving with empty architecture state: %v", ev.ShortString())
		a.resolved.Store(true)
	}
}

// Resolution runs off the control path, so the listener may be up before the
// resolver is populated. Handlers must not read the resolver until the
// resolution event has arrived.
func (a *API) resolverReady(w http.ResponseWriter) bool {
	if a.resolved.Load() {
		return true
	}
	writeResponse(w, NewAPIError("architecture resolution has not finished yet"), http.StatusServiceUnavailable)
	return false
}

func (a *API) listen(apiListen string) {
	glog.Info("Starting archd API server")

	nocache := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Add("Pragma", "no-cache, no-store")
			w.Header().Add("Access-Control-Allow-Origin", "*")
			w.Header().Add("Access-Control-Allow-Headers", "X-Requested-With, content-type, Authorization")
			w.Header().Add("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.ServeHTTP(w, r)
		})
	}

	go func() {
		router := mux.NewRouter()

		router.HandleFunc("/architecture", a.architecture).Methods("GET", "OPTIONS")
		router.HandleFunc("/architecture/match", a.match).Methods("POST", "OPTIONS")
		router.HandleFunc("/architecture/supported", a.supported).Methods("POST", "OPTIONS")
		router.HandleFunc("/status", a.status).Methods("GET", "OPTIONS")

		if err := http.ListenAndServe(apiListen, nocache(router)); err != nil {
			glog.Fatalf("Failed to start archd API server. Error: %v", err)
		}
	}()
}

func (a *API) architecture(w http.ResponseWriter, r *http.Request) {

	switch r.Method {
	case "GET":
		if !a.resolverReady(w) {
			return
		}
		out := NewArchitectureInfo(a.resolver)
		writeResponse(w, out, http.StatusOK)
	case "OPTIONS":
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (a *API) match(w http.ResponseWriter, r *http.Request) {

	switch r.Method {
	case "POST":
		if !a.resolverReady(w) {
			return
		}

		input, ok := readArchListInput(w, r)
		if !ok {
			return
		}

		match, err := a.resolver.Match(input.Architectures)
		if err != nil {
			if _, isNotFound := err.(*arch.ArchNotFoundError); isNotFound {
				glog.V(2).Infof("No architecture match for %v", input.Architectures)
				writeResponse(w, NewAPIError(err.Error()), http.StatusNotFound)
				return
			}
			glog.Error(err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		writeResponse(w, &MatchOutput{Match: match}, http.StatusOK)
	case "OPTIONS":
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (a *API) supported(w http.ResponseWriter, r *http.Request) {

	switch r.Method {
	case "POST":
		if !a.resolverReady(w) {
			return
		}

		input, ok := readArchListInput(w, r)
		if !ok {
			return
		}

		out := &SupportedOutput{Supported: a.resolver.IsSupported(input.Architectures)}
		writeResponse(w, out, http.StatusOK)
	case "OPTIONS":
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (a *API) status(w http.ResponseWriter, r *http.Request) {

	switch r.Method {
	case "GET":
		// MachineType and NativeSupport only read fields that are immutable
		// after construction, so status is safe to serve while Load runs.
		out := NewInfo(a.resolver, a.resolved.Load())
		writeResponse(w, out, http.StatusOK)
	case "OPTIONS":
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func readArchListInput(w http.ResponseWriter, r *http.Request) (*ArchListInput, bool) {

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		glog.Errorf("Unable to read request body. Error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}

	input := ArchListInput{}
	if err := json.Unmarshal(body, &input); err != nil {
		glog.V(3).Infof("Rejecting unparseable input: %v", string(body))
		writeResponse(w, NewAPIError("Input body could not be deserialized as JSON"), http.StatusBadRequest)
		return nil, false
	}

	if len(input.Architectures) == 0 {
		writeResponse(w, NewAPIError("architectures must be a non-empty array of architecture tags"), http.StatusBadRequest)
		return nil, false
	}

	return &input, true
}

func writeResponse(w http.ResponseWriter, payload interface{}, successStatusCode int) {

	serial, err := json.Marshal(payload)
	if err != nil {
		glog.Error(err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(successStatusCode)

	if _, err := w.Write(serial); err != nil {
		glog.Error(err)
	}
}
