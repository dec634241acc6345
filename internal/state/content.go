package state

// Phase is the loading lifecycle of one logical list.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseData
	PhaseLoadingMore
	PhaseEmpty
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseData:
		return "data"
	case PhaseLoadingMore:
		return "loadingMore"
	case PhaseEmpty:
		return "empty"
	case PhaseFailed:
		return "error"
	default:
		return "unknown"
	}
}

// Content is a phase plus the data that phase carries. The data is only
// meaningful in PhaseData and PhaseLoadingMore, the error only in PhaseFailed.
type Content[D any] struct {
	phase Phase
	data  D
	err   error
}

func Idle[D any]() Content[D]      { return Content[D]{phase: PhaseIdle} }
func Loading[D any]() Content[D]   { return Content[D]{phase: PhaseLoading} }
func Empty[D any]() Content[D]     { return Content[D]{phase: PhaseEmpty} }
func Loaded[D any](d D) Content[D] { return Content[D]{phase: PhaseData, data: d} }

// LoadingMore keeps the last good data visible while the next page loads.
func LoadingMore[D any](d D) Content[D] {
	return Content[D]{phase: PhaseLoadingMore, data: d}
}

// Failed records why loading stopped.
func Failed[D any](err error) Content[D] {
	return Content[D]{phase: PhaseFailed, err: err}
}

// Phase returns the current phase.
func (c Content[D]) Phase() Phase {
	return c.phase
}

// Data returns the carried data when the phase has any.
func (c Content[D]) Data() (D, bool) {
	if c.phase == PhaseData || c.phase == PhaseLoadingMore {
		return c.data, true
	}
	var zero D
	return zero, false
}

// MustData returns the carried data and panics when the phase has none.
// Renderers use it where another phase is unreachable.
func (c Content[D]) MustData() D {
	d, ok := c.Data()
	if !ok {
		panic("state: no data in phase " + c.phase.String())
	}
	return d
}

// Err returns the failure cause in PhaseFailed.
func (c Content[D]) Err() error {
	if c.phase != PhaseFailed {
		return nil
	}
	return c.err
}
