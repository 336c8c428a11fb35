// Package datasource composes the remote client, the local mirror and the
// query engine into one generic accessor per entity type.
//
// Write policy: catalog writes are optimistic. Creates always land in the
// mirror with a locally synthesized id, updates fall back to a mirror merge
// when the upstream is unreachable, deletes remove from the mirror
// unconditionally. Reads degrade instead: a failed list serves an empty
// collection and a failed read reports absence, never an error.
package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gabpaderog/maxicoffee-admin/internal/mirror"
	"github.com/gabpaderog/maxicoffee-admin/internal/models"
	"github.com/gabpaderog/maxicoffee-admin/internal/query"
	"github.com/gabpaderog/maxicoffee-admin/internal/remote"
)

// ErrNotFound reports a fallback update whose target id is absent from the
// mirror. It is the only transport-adjacent condition surfaced to callers,
// so the UI can tell "nothing to update" from "update pending upstream".
var ErrNotFound = errors.New("entity not found")

// Page is one materialized view of a collection. TotalCount is the size of
// the filtered set before pagination.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
}

// Config wires one entity type into the generic data source.
type Config[T any] struct {
	// Resource is the upstream path, e.g. "/products".
	Resource string
	// MirrorKey is the local snapshot key, e.g. "products-store".
	MirrorKey string
	ID        func(T) int
	SetID     func(*T, int)
	// Field exposes the value behind a named grid column for filtering and
	// sorting.
	Field func(T, string) any
	// Validate maps a candidate record to field violations. Callers run it
	// before writes; Create and Update do not re-check.
	Validate func(T) models.FieldErrors
}

type DataSource[T any] struct {
	cfg    Config[T]
	remote *remote.Client
	mirror mirror.Store
	cache  *Cache[T]
}

func New[T any](rc *remote.Client, ms mirror.Store, cfg Config[T]) *DataSource[T] {
	return &DataSource[T]{
		cfg:    cfg,
		remote: rc,
		mirror: ms,
		cache:  NewCache[T](),
	}
}

func (ds *DataSource[T]) Resource() string  { return ds.cfg.Resource }
func (ds *DataSource[T]) MirrorKey() string { return ds.cfg.MirrorKey }

// Validate runs the entity's validation rule.
func (ds *DataSource[T]) Validate(v T) models.FieldErrors {
	if ds.cfg.Validate == nil {
		return nil
	}
	return ds.cfg.Validate(v)
}

// List serves one page of the collection. The upstream set is authoritative
// and replaces the mirror wholesale on a successful fetch; an unreachable
// upstream degrades to an empty collection rather than falling back to a
// stale mirror.
func (ds *DataSource[T]) List(ctx context.Context, spec query.Spec) (Page[T], error) {
	if page, ok := ds.cache.GetPage(spec); ok {
		return page, nil
	}

	var items []T
	if err := ds.remote.Get(ctx, ds.cfg.Resource, &items); err != nil {
		slog.Warn("Listing from upstream failed, serving empty collection", "resource", ds.cfg.Resource, "error", err)
		items = nil
	} else if err := ds.saveMirror(ctx, items); err != nil {
		slog.Error("Failed to refresh mirror after list", "key", ds.cfg.MirrorKey, "error", err)
	}

	pageItems, total := query.Evaluate(items, ds.cfg.Field, spec)
	page := Page[T]{Items: pageItems, TotalCount: total}
	ds.cache.PutPage(spec, page)
	return page, nil
}

// Read fetches a single entity from the upstream. There is no mirror
// fallback; a failed fetch reports absence.
func (ds *DataSource[T]) Read(ctx context.Context, id int) (T, bool, error) {
	if v, ok := ds.cache.GetOne(id); ok {
		return v, true, nil
	}
	var v T
	if err := ds.remote.GetOne(ctx, ds.cfg.Resource, id, &v); err != nil {
		slog.Warn("Reading from upstream failed", "resource", ds.cfg.Resource, "id", id, "error", err)
		var zero T
		return zero, false, nil
	}
	ds.cache.PutOne(id, v)
	return v, true, nil
}

// Create attempts the upstream create and, regardless of the outcome,
// appends a locally identified copy to the mirror so optimistic state
// exists even when the upstream write silently races. The returned value is
// the local representation.
func (ds *DataSource[T]) Create(ctx context.Context, v T) (T, error) {
	if err := ds.remote.Create(ctx, ds.cfg.Resource, v, nil); err != nil {
		slog.Warn("Upstream create failed, keeping local copy only", "resource", ds.cfg.Resource, "error", err)
	}

	items, err := ds.loadMirror(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	ds.cfg.SetID(&v, ds.nextID(items))
	items = append(items, v)
	if err := ds.saveMirror(ctx, items); err != nil {
		var zero T
		return zero, err
	}
	ds.cache.Invalidate()
	return v, nil
}

// Update patches the upstream first. On success the patch is merged into
// the mirror's copy and the upstream body is returned; on failure the patch
// is merged into the mirror directly, unless the id is missing there, which
// is ErrNotFound with the mirror left untouched.
func (ds *DataSource[T]) Update(ctx context.Context, id int, patch map[string]any) (T, error) {
	var zero T

	var remoteBody T
	remoteErr := ds.remote.PatchOne(ctx, ds.cfg.Resource, id, patch, &remoteBody)

	items, err := ds.loadMirror(ctx)
	if err != nil {
		return zero, err
	}
	idx := ds.indexOf(items, id)

	if remoteErr == nil {
		if idx >= 0 {
			merged, err := mergePatch(items[idx], patch)
			if err != nil {
				return zero, err
			}
			items[idx] = merged
			if err := ds.saveMirror(ctx, items); err != nil {
				slog.Error("Failed to mirror upstream update", "key", ds.cfg.MirrorKey, "id", id, "error", err)
			}
		}
		ds.cache.Invalidate()
		return remoteBody, nil
	}

	slog.Warn("Upstream update failed, merging into mirror", "resource", ds.cfg.Resource, "id", id, "error", remoteErr)
	if idx < 0 {
		return zero, fmt.Errorf("%s %d: %w", ds.cfg.MirrorKey, id, ErrNotFound)
	}
	merged, err := mergePatch(items[idx], patch)
	if err != nil {
		return zero, err
	}
	items[idx] = merged
	if err := ds.saveMirror(ctx, items); err != nil {
		return zero, err
	}
	ds.cache.Invalidate()
	return merged, nil
}

// Delete is best-effort against the upstream; the mirror removal is
// unconditional.
func (ds *DataSource[T]) Delete(ctx context.Context, id int) error {
	if err := ds.remote.Delete(ctx, ds.cfg.Resource, id); err != nil {
		slog.Warn("Upstream delete failed, removing from mirror anyway", "resource", ds.cfg.Resource, "id", id, "error", err)
	}

	items, err := ds.loadMirror(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, item := range items {
		if ds.cfg.ID(item) != id {
			kept = append(kept, item)
		}
	}
	if err := ds.saveMirror(ctx, kept); err != nil {
		return err
	}
	ds.cache.Invalidate()
	return nil
}

// InvalidateCache drops memoized pages and reads. Exposed for collaborators
// that mutate the collection outside the five CRUD operations, such as the
// fulfillment workflow's action endpoints.
func (ds *DataSource[T]) InvalidateCache() {
	ds.cache.Invalidate()
}

// Mirror returns the current local snapshot without touching the upstream.
// Used by the CLI to inspect the offline copy.
func (ds *DataSource[T]) Mirror(ctx context.Context) ([]T, error) {
	return ds.loadMirror(ctx)
}

func (ds *DataSource[T]) loadMirror(ctx context.Context) ([]T, error) {
	raw, ok, err := ds.mirror.Get(ctx, ds.cfg.MirrorKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode mirror %s: %w", ds.cfg.MirrorKey, err)
	}
	return items, nil
}

func (ds *DataSource[T]) saveMirror(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode mirror %s: %w", ds.cfg.MirrorKey, err)
	}
	return ds.mirror.Set(ctx, ds.cfg.MirrorKey, raw)
}

func (ds *DataSource[T]) indexOf(items []T, id int) int {
	for i, item := range items {
		if ds.cfg.ID(item) == id {
			return i
		}
	}
	return -1
}

// nextID synthesizes a local identifier: max existing id + 1, starting at 1
// on an empty collection.
func (ds *DataSource[T]) nextID(items []T) int {
	max := 0
	for _, item := range items {
		if id := ds.cfg.ID(item); id > max {
			max = id
		}
	}
	return max + 1
}

// mergePatch overlays a shallow field patch onto an entity via its JSON
// representation.
func mergePatch[T any](entity T, patch map[string]any) (T, error) {
	var zero T

	raw, err := json.Marshal(entity)
	if err != nil {
		return zero, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return zero, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return zero, err
	}
	return out, nil
}
