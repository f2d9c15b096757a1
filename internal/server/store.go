package server

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentantai21042004/docsquad/internal/pipeline"
)

type runStatus string

const (
	statusQueued  runStatus = "queued"
	statusRunning runStatus = "running"
	statusDone    runStatus = "done"
	statusFailed  runStatus = "failed"
)

// runState is one upload handled by the server. It is kept in memory only.
type runState struct {
	mu       sync.Mutex
	id       string
	fileName string
	context  string
	status   runStatus
	errMsg   string
	document string
	created  time.Time
	finished time.Time

	events  []pipeline.Event
	changed chan struct{}
}

// runView is the JSON shape of a run.
type runView struct {
	ID       string           `json:"id"`
	FileName string           `json:"file_name"`
	Context  string           `json:"context,omitempty"`
	Status   runStatus        `json:"status"`
	Error    string           `json:"error,omitempty"`
	Document string           `json:"document,omitempty"`
	Events   []pipeline.Event `json:"events"`
	Created  time.Time        `json:"created"`
	Finished *time.Time       `json:"finished,omitempty"`
}

func newRunState(id, fileName, userContext string) *runState {
	return &runState{
		id:       id,
		fileName: fileName,
		context:  userContext,
		status:   statusQueued,
		created:  time.Now().UTC(),
		changed:  make(chan struct{}),
	}
}

// Report implements pipeline.Sink.
func (r *runState) Report(_ context.Context, ev pipeline.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	r.notifyLocked()
}

func (r *runState) setStatus(status runStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
	r.notifyLocked()
}

func (r *runState) finish(document string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = time.Now().UTC()
	if err != nil {
		r.status = statusFailed
		r.errMsg = userError(err)
	} else {
		r.status = statusDone
		r.document = document
	}
	r.notifyLocked()
}

func (r *runState) notifyLocked() {
	close(r.changed)
	r.changed = make(chan struct{})
}

// since returns the events after the first n, whether the run has ended, and
// a channel closed on the next change.
func (r *runState) since(n int) ([]pipeline.Event, bool, <-chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []pipeline.Event
	if n < len(r.events) {
		out = append(out, r.events[n:]...)
	}
	return out, r.status == statusDone || r.status == statusFailed, r.changed
}

func (r *runState) view() runView {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := runView{
		ID:       r.id,
		FileName: r.fileName,
		Context:  r.context,
		Status:   r.status,
		Error:    r.errMsg,
		Document: r.document,
		Events:   append([]pipeline.Event{}, r.events...),
		Created:  r.created,
	}
	if !r.finished.IsZero() {
		f := r.finished
		v.Finished = &f
	}
	return v
}

type runStore struct {
	mu   sync.RWMutex
	runs map[string]*runState
}

func newRunStore() *runStore {
	return &runStore{runs: make(map[string]*runState)}
}

func (s *runStore) add(r *runState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.id] = r
}

func (s *runStore) get(id string) (*runState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	return r, ok
}
