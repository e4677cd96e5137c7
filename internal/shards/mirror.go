package shards

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	. "github.com/cricklet/dobutsugo/internal/fingerprint"
	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/cricklet/dobutsugo/internal/tablebase"
)

var ErrMirrorExists = errors.New("tablebase mirror already exists")

// WriteMirror lays out a tablebase under root the way DirSource reads it.
// root must not exist yet.
func WriteMirror(root string, boundaries []Fingerprint, shards [][]byte) Error {
	if len(boundaries) != len(shards) {
		return Errorf("%v boundaries for %v shards", len(boundaries), len(shards))
	}
	if _, err := os.Stat(root); err == nil {
		return Errorf("%w: %v", ErrMirrorExists, root)
	}

	write := func(path string, contents []byte) Error {
		fullPath := filepath.Join(root, filepath.FromSlash(path))
		err := os.MkdirAll(filepath.Dir(fullPath), 0o755)
		if err != nil {
			return Wrap(err)
		}
		return Wrap(os.WriteFile(fullPath, contents, 0o644))
	}

	err := write(tablebase.BoundariesFile, tablebase.EncodeBoundaries(boundaries))
	if !IsNil(err) {
		return err
	}
	for j, shard := range shards {
		err := write(tablebase.ShardPath(j), shard)
		if !IsNil(err) {
			return err
		}
	}

	log.Debug().Str("root", root).Int("shards", len(shards)).Msg("wrote tablebase mirror")
	return NilError
}
