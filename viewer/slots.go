package viewer

import (
	"path/filepath"
	"strings"
)

// Slot identifies which kind of asset a file feeds.
type Slot int

const (
	// SlotNone means the file is not a supported asset.
	SlotNone Slot = iota

	// SlotModel holds the glTF head asset.
	SlotModel

	// SlotTrack holds the blendshape CSV track.
	SlotTrack

	// SlotAudio holds the WAV audio track.
	SlotAudio
)

func (s Slot) String() string {
	switch s {
	case SlotModel:
		return "model"
	case SlotTrack:
		return "track"
	case SlotAudio:
		return "audio"
	default:
		return "none"
	}
}

// SlotFor routes a file path to a slot by its extension, ignoring case.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Slot: the matching slot, or SlotNone for unsupported files
func SlotFor(path string) Slot {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return SlotModel
	case ".csv":
		return SlotTrack
	case ".wav":
		return SlotAudio
	default:
		return SlotNone
	}
}
