package encoding

import (
	"strconv"
	"strings"
	"sync"
)

// Registry owns a set of registered Encoding factories, looked up by
// canonical name, alias, or MIB enum. Registration is expected to complete
// before concurrent lookups begin; every method takes an internal lock, and
// Initialize populates the Default registry exactly once.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*Encoding
	byMIB   map[int]*Encoding
	ordered []*Encoding
}

// NewRegistry returns an empty registry. Most callers want Default.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Encoding),
		byMIB:  make(map[int]*Encoding),
	}
}

// RegisterFactory adds enc to the registry under its canonical name and all
// aliases (case-insensitively). Registration is idempotent by canonical
// name: re-registering the same name replaces the previous entry.
func (r *Registry) RegisterFactory(enc *Encoding) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(enc.Name)
	if old, ok := r.byName[key]; ok {
		r.removeLocked(old)
	}

	r.byName[key] = enc
	for _, alias := range enc.Aliases {
		r.byName[strings.ToLower(alias)] = enc
	}
	if enc.MIB != 0 {
		r.byMIB[enc.MIB] = enc
	}
	r.ordered = append(r.ordered, enc)
}

func (r *Registry) removeLocked(enc *Encoding) {
	for k, v := range r.byName {
		if v == enc {
			delete(r.byName, k)
		}
	}
	if enc.MIB != 0 {
		delete(r.byMIB, enc.MIB)
	}
	for i, v := range r.ordered {
		if v == enc {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}
}

// ForName looks up an Encoding by canonical name or alias, case-insensitively.
func (r *Registry) ForName(name string) (*Encoding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	enc, ok := r.byName[strings.ToLower(name)]
	return enc, ok
}

// ForMIB looks up an Encoding by its IANA MIBenum.
func (r *Registry) ForMIB(mib int) (*Encoding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	enc, ok := r.byMIB[mib]
	return enc, ok
}

// Encoder is a convenience that looks up name and, if found, returns a
// fresh Encoder instance for it.
func (r *Registry) Encoder(name string) (Encoder, bool) {
	enc, ok := r.ForName(name)
	if !ok {
		return nil, false
	}
	return enc.NewEncoder(), true
}

// Encodings returns every registered Encoding in registration order.
func (r *Registry) Encodings() []*Encoding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Encoding, len(r.ordered))
	copy(out, r.ordered)
	return out
}

var (
	defaultRegistry     = NewRegistry()
	defaultRegistryOnce sync.Once
	// installers is populated by subpackage init() functions (e.g.
	// encoding/japanese) via RegisterInstaller, giving the process-wide
	// registry an explicit, idempotent initialize step instead of relying
	// on static-constructor ordering.
	installersMu sync.Mutex
	installers   []func(*Registry)
)

// RegisterInstaller records a function that populates a Registry with a
// family of factories. Subpackages (e.g. encoding/japanese) call this from
// an init() function; Initialize later drives every registered installer
// exactly once against the process-wide Default registry.
func RegisterInstaller(install func(*Registry)) {
	installersMu.Lock()
	defer installersMu.Unlock()
	installers = append(installers, install)
}

// Initialize populates the process-wide Default registry from every
// installer registered so far. It is safe to call more than once; only the
// first call has effect.
func Initialize() {
	defaultRegistryOnce.Do(func() {
		installersMu.Lock()
		defer installersMu.Unlock()
		for _, install := range installers {
			install(defaultRegistry)
		}
	})
}

// Default returns the process-wide Registry, initializing it on first use.
func Default() *Registry {
	Initialize()
	return defaultRegistry
}

// Teardown discards all state in the process-wide Default registry and
// resets initialization so a subsequent Default() call reinstalls every
// registered installer. Intended for tests that need a clean singleton.
func Teardown() {
	defaultRegistry = NewRegistry()
	defaultRegistryOnce = sync.Once{}
}

// mibString formats a MIB enum for debug output, "-" for an unassigned one.
func mibString(mib int) string {
	if mib == 0 {
		return "-"
	}
	return strconv.Itoa(mib)
}
