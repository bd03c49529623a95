package subprocess

import (
	"fmt"
	"sync"

	"github.com/dataflowgraph/sgn/core"
)

// Segment is a named byte buffer registered with a Supervisor, the
// goroutine-native analogue of the dict subprocess.py's SubProcess.to_shm
// returns ({"name", "shm", **kwargs}). Goroutines already share the process
// address space, so there is no separate shared-memory syscall to make:
// Segment exists to preserve the naming/roster/cleanup contract (register
// once, look up by name from any worker, unlink on Supervisor.Stop) without
// pretending Go needs an OS-level primitive for it.
type Segment struct {
	Name string
	Buf  []byte
	Meta map[string]any
}

type shmRoster struct {
	mu       sync.Mutex
	segments map[string]*Segment
}

func newShmRoster() *shmRoster {
	return &shmRoster{segments: map[string]*Segment{}}
}

// register creates a new named segment, copying data into an
// independently-owned buffer. It fails if name is already registered,
// matching to_shm's FileExistsError behavior.
func (r *shmRoster) register(name string, data []byte, meta map[string]any) (*Segment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.segments[name]; exists {
		return nil, &core.PipelineError{Stage: core.StageSubprocess,
			Err: fmt.Errorf("subprocess: shared segment %q already exists", name)}
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	seg := &Segment{Name: name, Buf: buf, Meta: meta}
	r.segments[name] = seg
	return seg, nil
}

// lookup returns the named segment, or nil if it isn't registered.
func (r *shmRoster) lookup(name string) *Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.segments[name]
}

// unlinkAll drops every registered segment, matching SubProcess.__exit__'s
// shm_list cleanup.
func (r *shmRoster) unlinkAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = map[string]*Segment{}
}
