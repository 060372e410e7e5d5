// Package tiled decodes Tiled tile-layer data and resolves global tile ids.
//
// The package covers the numeric core of a Tiled document: unpacking flip
// flags from raw cell values, decoding CSV and base64 (optionally
// compressed) layer payloads, assembling chunks of infinite maps, mapping
// global ids to tilesets, and computing atlas source rectangles. It also
// holds the in-memory document model populated by package tmx.
package tiled
