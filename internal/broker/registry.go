package broker

import (
	"reflect"
	"sync"

	"github.com/databroker-go/databroker/internal/domain"
)

// Operation names used as registry keys.
const (
	opList   = "list"
	opItem   = "item"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

type registryKey struct {
	record reflect.Type
	op     string
}

// Registry is the injection surface for record-specific behavior. Handlers
// registered here take precedence over the generic implementations when a
// Broker is constructed; the same goes for sort and filter strategies.
//
// Registration normally happens once during wiring, before any Broker is
// built, but the registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	handlers  map[registryKey]any
	sorters   map[reflect.Type]Sorter
	filterers map[reflect.Type]Filterer
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers:  make(map[registryKey]any),
		sorters:   make(map[reflect.Type]Sorter),
		filterers: make(map[reflect.Type]Filterer),
	}
}

func recordType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// recordName returns T's type name for log attributes.
func recordName[T any]() string {
	return recordType[T]().Name()
}

func (r *Registry) putHandler(key registryKey, h any) {
	if h == nil {
		panic("broker: registered handler must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[key] = h
}

func (r *Registry) getHandler(key registryKey) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[key]
	return h, ok
}

// RegisterListHandler installs a record-specific list handler for T.
func RegisterListHandler[T domain.Record](r *Registry, h ListHandler[T]) {
	r.putHandler(registryKey{recordType[T](), opList}, h)
}

// RegisterItemHandler installs a record-specific item handler for T.
func RegisterItemHandler[T domain.Record](r *Registry, h ItemHandler[T]) {
	r.putHandler(registryKey{recordType[T](), opItem}, h)
}

// RegisterCreateHandler installs a record-specific create handler for T.
func RegisterCreateHandler[T domain.Record](r *Registry, h CreateHandler[T]) {
	r.putHandler(registryKey{recordType[T](), opCreate}, h)
}

// RegisterUpdateHandler installs a record-specific update handler for T.
func RegisterUpdateHandler[T domain.Record](r *Registry, h UpdateHandler[T]) {
	r.putHandler(registryKey{recordType[T](), opUpdate}, h)
}

// RegisterDeleteHandler installs a record-specific delete handler for T.
func RegisterDeleteHandler[T domain.Record](r *Registry, h DeleteHandler[T]) {
	r.putHandler(registryKey{recordType[T](), opDelete}, h)
}

// RegisterSorter installs a record-specific sort strategy for T.
func RegisterSorter[T domain.Record](r *Registry, s Sorter) {
	if s == nil {
		panic("broker: registered sorter must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sorters[recordType[T]()] = s
}

// RegisterFilterer installs a record-specific filter strategy for T.
func RegisterFilterer[T domain.Record](r *Registry, f Filterer) {
	if f == nil {
		panic("broker: registered filterer must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filterers[recordType[T]()] = f
}

// SorterFor resolves the sort strategy for T: a registered override when
// present, otherwise the default column sorter.
func SorterFor[T domain.Record](r *Registry) Sorter {
	if r != nil {
		r.mu.RLock()
		s, ok := r.sorters[recordType[T]()]
		r.mu.RUnlock()
		if ok {
			return s
		}
	}
	return NewColumnSorter[T]()
}

// FiltererFor resolves the filter strategy for T: a registered override when
// present, otherwise the default column filterer.
func FiltererFor[T domain.Record](r *Registry) Filterer {
	if r != nil {
		r.mu.RLock()
		f, ok := r.filterers[recordType[T]()]
		r.mu.RUnlock()
		if ok {
			return f
		}
	}
	return NewColumnFilterer[T]()
}

func resolveListHandler[T domain.Record](r *Registry, fallback ListHandler[T]) ListHandler[T] {
	if r != nil {
		if h, ok := r.getHandler(registryKey{recordType[T](), opList}); ok {
			return h.(ListHandler[T])
		}
	}
	return fallback
}

func resolveItemHandler[T domain.Record](r *Registry, fallback ItemHandler[T]) ItemHandler[T] {
	if r != nil {
		if h, ok := r.getHandler(registryKey{recordType[T](), opItem}); ok {
			return h.(ItemHandler[T])
		}
	}
	return fallback
}

func resolveCreateHandler[T domain.Record](r *Registry, fallback CreateHandler[T]) CreateHandler[T] {
	if r != nil {
		if h, ok := r.getHandler(registryKey{recordType[T](), opCreate}); ok {
			return h.(CreateHandler[T])
		}
	}
	return fallback
}

func resolveUpdateHandler[T domain.Record](r *Registry, fallback UpdateHandler[T]) UpdateHandler[T] {
	if r != nil {
		if h, ok := r.getHandler(registryKey{recordType[T](), opUpdate}); ok {
			return h.(UpdateHandler[T])
		}
	}
	return fallback
}

func resolveDeleteHandler[T domain.Record](r *Registry, fallback DeleteHandler[T]) DeleteHandler[T] {
	if r != nil {
		if h, ok := r.getHandler(registryKey{recordType[T](), opDelete}); ok {
			return h.(DeleteHandler[T])
		}
	}
	return fallback
}
