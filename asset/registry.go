// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package asset implements the refcounted (kind, id) asset registry:
// a kind-to-loader map plus a loaded-asset cache, grounded on the
// teacher's depot/aid pattern in assets.go and its stringHash-keyed
// asset identifiers, but restructured around string kinds and
// explicit loader/unloader callbacks the way the original Python
// RuntimeAssetRegistry does.
package asset

import (
	"fmt"
	"log/slog"
)

// ErrUnknownKind is returned by Load when no loader is registered for
// the requested kind.
var ErrUnknownKind = fmt.Errorf("asset: unknown kind")

// Loader produces an asset value for an id.
type Loader func(id string) (any, error)

// Unloader releases resources owned by a previously loaded value.
type Unloader func(value any)

// Handle identifies one (kind, id) asset independent of whether it
// happens to be cached.
type Handle struct {
	Kind string
	ID   string
}

type kindEntry struct {
	loader   Loader
	unloader Unloader
}

type loadedAsset struct {
	value    any
	refs     int
	unloader Unloader
}

// Registry is the refcounted (kind, id) -> {value, refs, unloader}
// asset cache, plus the kind -> (loader, unloader) registration map.
type Registry struct {
	log     *slog.Logger
	kinds   map[string]kindEntry
	loaded  map[Handle]*loadedAsset
}

// New returns an empty Registry.
func New(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{log: log, kinds: map[string]kindEntry{}, loaded: map[Handle]*loadedAsset{}}
}

// RegisterKind associates a loader (and optional unloader) with kind.
// An empty kind is rejected. Registering an already-registered kind is
// logged at warning level and the incumbent registration is kept —
// this is stricter than a silent overwrite but avoids disrupting
// assets already loaded under the old loader.
func (r *Registry) RegisterKind(kind string, loader Loader, unloader Unloader) error {
	if kind == "" {
		return fmt.Errorf("asset: kind must not be empty")
	}
	if loader == nil {
		return fmt.Errorf("asset: loader must not be nil")
	}
	if _, exists := r.kinds[kind]; exists {
		r.log.Warn("asset kind already registered, keeping incumbent", "kind", kind)
		return nil
	}
	r.kinds[kind] = kindEntry{loader: loader, unloader: unloader}
	return nil
}

// Load acquires a handle to (kind, id): if already cached, its
// refcount is incremented; otherwise the registered loader is
// invoked and the result cached with refs=1. Returns ErrUnknownKind
// if kind was never registered.
func (r *Registry) Load(kind, id string) (Handle, error) {
	h := Handle{Kind: kind, ID: id}
	if la, ok := r.loaded[h]; ok {
		la.refs++
		return h, nil
	}
	entry, ok := r.kinds[kind]
	if !ok {
		return Handle{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	value, err := entry.loader(id)
	if err != nil {
		return Handle{}, fmt.Errorf("asset: load %s/%s: %w", kind, id, err)
	}
	r.loaded[h] = &loadedAsset{value: value, refs: 1, unloader: entry.unloader}
	return h, nil
}

// Get returns the cached value for a handle, if still loaded.
func (r *Registry) Get(h Handle) (any, bool) {
	la, ok := r.loaded[h]
	if !ok {
		return nil, false
	}
	return la.value, true
}

// Release drops one reference from a loaded handle; at refs==0 its
// unloader (if any) runs exactly once and the entry is evicted.
// Releasing an unknown or already-fully-released handle is a no-op.
func (r *Registry) Release(h Handle) {
	la, ok := r.loaded[h]
	if !ok {
		return
	}
	la.refs--
	if la.refs > 0 {
		return
	}
	r.runUnloader(h, la)
	delete(r.loaded, h)
}

// Clear releases every loaded asset regardless of its refcount,
// running each unloader exactly once.
func (r *Registry) Clear() {
	for h, la := range r.loaded {
		r.runUnloader(h, la)
		delete(r.loaded, h)
	}
}

// runUnloader invokes la's unloader, if any, recovering a panic and
// logging it at warning level so Release and Clear always complete.
func (r *Registry) runUnloader(h Handle, la *loadedAsset) {
	if la.unloader == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Warn("asset unloader panicked", "kind", h.Kind, "id", h.ID, "recovered", rec)
		}
	}()
	la.unloader(la.value)
}

// RefCount reports the current reference count for a handle, or 0 if
// it is not loaded.
func (r *Registry) RefCount(h Handle) int {
	la, ok := r.loaded[h]
	if !ok {
		return 0
	}
	return la.refs
}
