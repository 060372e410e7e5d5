package tiled

import (
	"cmp"
	"slices"
	"sort"
)

// Registry maps global tile ids to the tilesets that own them.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	refs []TilesetRef // sorted by FirstGID ascending
}

// NewRegistry copies refs and orders them by first global id. Document
// order is not guaranteed to match id order.
func NewRegistry(refs []TilesetRef) *Registry {
	sorted := slices.Clone(refs)
	slices.SortStableFunc(sorted, func(a, b TilesetRef) int {
		return cmp.Compare(a.FirstGID, b.FirstGID)
	})
	return &Registry{refs: sorted}
}

// Tilesets returns the references in ascending FirstGID order.
func (r *Registry) Tilesets() []TilesetRef {
	return r.refs
}

// Resolve finds the tileset owning gid and the local id within it.
func (r *Registry) Resolve(gid uint32) (TilesetRef, uint32, error) {
	if gid == 0 {
		return TilesetRef{}, 0, &UnresolvedTileError{GID: gid, Reason: "gid 0 is the empty tile"}
	}
	if len(r.refs) == 0 {
		return TilesetRef{}, 0, &UnresolvedTileError{GID: gid, Reason: "map has no tilesets"}
	}

	// First ref whose FirstGID exceeds gid; the owner sits just before it.
	i := sort.Search(len(r.refs), func(i int) bool {
		return r.refs[i].FirstGID > gid
	})
	if i == 0 {
		return TilesetRef{}, 0, &UnresolvedTileError{GID: gid, Reason: "below the first tileset"}
	}

	ref := r.refs[i-1]
	if ref.Tileset == nil {
		return TilesetRef{}, 0, &UnresolvedTileError{GID: gid, Reason: "tileset " + ref.Source + " not loaded"}
	}

	local := gid - ref.FirstGID
	if int64(local) >= int64(ref.Tileset.TileCount) {
		return TilesetRef{}, 0, &TileIndexOutOfRangeError{
			LocalID:   local,
			TileCount: ref.Tileset.TileCount,
			Tileset:   ref.Name(),
		}
	}
	return ref, local, nil
}

// ResolveCell resolves the id of a decoded cell, ignoring its flags.
func (r *Registry) ResolveCell(c Cell) (TilesetRef, uint32, error) {
	return r.Resolve(c.Index)
}
