// Package parcel ties normalization, validation and export together around
// an explicit workspace value holding the original and the redrawn parcel.
package parcel

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Phase of the compare/replace workflow.
type Phase int

const (
	// Empty means nothing has been drawn or uploaded yet.
	Empty Phase = iota
	// OriginalOnly holds a single geometry; it is what gets exported.
	OriginalOnly
	// CandidateDrafted holds a redraw next to the untouched original.
	CandidateDrafted
	// CandidateCommitted means the candidate has been exported in place of the original.
	CandidateCommitted
)

func (p Phase) String() string {
	switch p {
	case OriginalOnly:
		return "original-only"
	case CandidateDrafted:
		return "candidate-drafted"
	case CandidateCommitted:
		return "candidate-committed"
	default:
		return "empty"
	}
}

// Parcel is a polygon with the properties that travel with it into the export.
type Parcel struct {
	Geometry   orb.Polygon
	Properties geojson.Properties
}

// Workspace is the state carried between user actions. It is a plain value:
// every transition returns a new Workspace and leaves the receiver untouched.
type Workspace struct {
	Original  *Parcel
	Candidate *Parcel
	Phase     Phase
}

// Load replaces everything with an uploaded parcel.
func (w Workspace) Load(p Parcel) Workspace {
	return Workspace{Original: &p, Phase: OriginalOnly}
}

// Draw records a shape from the drawing surface. Without an original it
// becomes the original; otherwise it is drafted as a candidate and the
// original is kept as is.
func (w Workspace) Draw(p Parcel) Workspace {
	if w.Original == nil {
		return Workspace{Original: &p, Phase: OriginalOnly}
	}

	return Workspace{Original: w.Original, Candidate: &p, Phase: CandidateDrafted}
}

// Active returns the parcel an export would use, or nil when the workspace is empty.
func (w Workspace) Active() *Parcel {
	switch w.Phase {
	case CandidateDrafted, CandidateCommitted:
		return w.Candidate
	case OriginalOnly:
		return w.Original
	default:
		return nil
	}
}

// commit marks a drafted candidate as the exported geometry.
func (w Workspace) commit() Workspace {
	if w.Phase == CandidateDrafted {
		w.Phase = CandidateCommitted
	}
	return w
}
