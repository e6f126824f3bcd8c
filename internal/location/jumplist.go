package location

import (
	"github.com/dshills/jumptrail/internal/history"
	"github.com/dshills/jumptrail/internal/logging"
)

// DefaultCapacity is the jump list size used when none is configured.
const DefaultCapacity = 50

// Jumplist is a bounded history of editor locations with a browse position.
// It is not safe for concurrent use.
type Jumplist struct {
	buf      *history.Buffer[Location]
	eval     history.Evaluator[Location]
	circular bool
	logger   *logging.Logger
}

// Option configures a Jumplist during creation.
type Option func(*Jumplist)

// WithCircular makes Back and Forward wrap around the list.
func WithCircular() Option {
	return func(j *Jumplist) {
		j.circular = true
	}
}

// WithLogger sets the logger used for eviction and de-duplication traces.
func WithLogger(l *logging.Logger) Option {
	return func(j *Jumplist) {
		if l != nil {
			j.logger = l
		}
	}
}

// NewJumplist creates a jump list holding at most capacity locations.
// A nil evaluator never drops earlier entries.
func NewJumplist(capacity int, eval history.Evaluator[Location], opts ...Option) *Jumplist {
	j := &Jumplist{
		eval:   eval,
		logger: logging.NullLogger,
	}
	for _, opt := range opts {
		opt(j)
	}
	if j.eval == nil {
		j.eval = history.Never[Location]()
	}
	j.logger = j.logger.WithComponent("jumplist")

	hopts := []history.Option[Location]{
		history.WithEvaluator[Location](history.EvaluatorFunc[Location](j.canReplace)),
	}
	if j.circular {
		hopts = append(hopts, history.WithCircular[Location]())
	}
	j.buf = history.New[Location](capacity, hopts...)
	return j
}

func (j *Jumplist) canReplace(incoming, existing Location) bool {
	if !j.eval.CanReplace(incoming, existing) {
		return false
	}
	j.logger.Debug("%s supersedes %s", incoming, existing)
	return true
}

// Record remembers loc as the newest location and returns the entry that
// was evicted to make room, if any. A nil loc deletes the newest entry
// instead and returns it.
func (j *Jumplist) Record(loc *Location) (Location, bool) {
	if loc == nil {
		return j.Drop()
	}

	evicted, ok := j.buf.InsertOrReplace(*loc)
	if ok {
		j.logger.Debug("evicted %s for %s", evicted, *loc)
	}
	return evicted, ok
}

// Amend overwrites the newest location in place and returns the previous
// value. A nil loc deletes the newest entry instead.
func (j *Jumplist) Amend(loc *Location) (Location, bool) {
	if loc == nil {
		return j.Drop()
	}
	return j.buf.ReplaceNewest(*loc)
}

// Drop deletes the newest location and returns it.
func (j *Jumplist) Drop() (Location, bool) {
	loc, ok := j.buf.DeleteNewest()
	if ok {
		j.logger.Debug("dropped %s", loc)
	}
	return loc, ok
}

// Back moves the browse position to the previous location and returns it.
func (j *Jumplist) Back() (Location, bool) {
	return j.buf.Browse().StepBackward()
}

// Forward moves the browse position to the next location and returns it.
func (j *Jumplist) Forward() (Location, bool) {
	return j.buf.Browse().StepForward()
}

// PeekBack returns what Back would return without moving.
func (j *Jumplist) PeekBack() (Location, bool) {
	return j.buf.Browse().PeekBackward()
}

// PeekForward returns what Forward would return without moving.
func (j *Jumplist) PeekForward() (Location, bool) {
	return j.buf.Browse().PeekForward()
}

// CanBack reports whether Back would move the browse position.
func (j *Jumplist) CanBack() bool {
	return j.buf.Browse().CanStepBackward()
}

// CanForward reports whether Forward would move the browse position.
func (j *Jumplist) CanForward() bool {
	return j.buf.Browse().CanStepForward()
}

// Current returns the location at the browse position.
func (j *Jumplist) Current() (Location, bool) {
	return j.buf.Browse().Current()
}

// Position returns the index of the browse position within Entries,
// or -1 if the list is empty.
func (j *Jumplist) Position() int {
	return j.buf.Browse().Position()
}

// Entries returns the recorded locations, oldest first.
func (j *Jumplist) Entries() []Location {
	return j.buf.Items()
}

// Len returns the number of recorded locations.
func (j *Jumplist) Len() int {
	return j.buf.Len()
}

// Cap returns the maximum number of recorded locations.
func (j *Jumplist) Cap() int {
	return j.buf.Cap()
}

// Healthy reports whether the underlying storage is free of holes.
func (j *Jumplist) Healthy() bool {
	return j.buf.IsHealthy()
}

// Buffer returns the underlying history buffer, for callers that need
// their own cursors.
func (j *Jumplist) Buffer() *history.Buffer[Location] {
	return j.buf
}
