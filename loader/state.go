package loader

import (
	"fmt"

	"github.com/wippyai/scene-runtime/errors"
)

// State is the load progress of one asset. Assets only move forward, and
// Rejected is final.
type State uint8

const (
	StateUnloaded State = iota
	StateCodeRead
	StateRelocated
	StateValidated
	StateGlobalInitialized
	StateRejected
	// StateSkipped marks an empty record left by a failed write.
	StateSkipped
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateCodeRead:
		return "code-read"
	case StateRelocated:
		return "relocated"
	case StateValidated:
		return "validated"
	case StateGlobalInitialized:
		return "global-initialized"
	case StateRejected:
		return "rejected"
	case StateSkipped:
		return "skipped"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Asset kinds used in reports.
const (
	KindTexture = "texture"
	KindScene   = "scene"
)

// AssetStatus is the final state of one container record.
type AssetStatus struct {
	Err   error
	Kind  string
	Name  string
	Index int // record index in the container
	State State
	// Reached is the last state passed before the asset was rejected, or
	// State for assets that were not.
	Reached State
	// Loaded is the index among loaded assets of the same kind, or -1.
	Loaded int
}

// Report lists the outcome of every record in container order, textures
// first.
type Report struct {
	Assets []AssetStatus
}

// Count returns how many assets of kind ended in state.
func (r *Report) Count(kind string, state State) int {
	n := 0
	for _, a := range r.Assets {
		if a.Kind == kind && a.State == state {
			n++
		}
	}
	return n
}

// Rejected summarizes rejected assets, or returns nil when there are none.
func (r *Report) Rejected() *errors.RejectionsError {
	var rs []errors.Rejection
	for _, a := range r.Assets {
		if a.State == StateRejected {
			rs = append(rs, errors.Rejection{Err: a.Err, Asset: a.Name, Kind: a.Kind, Index: a.Index})
		}
	}
	return errors.NewRejectionsError(rs)
}
