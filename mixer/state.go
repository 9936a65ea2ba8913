package mixer

import (
	"sync"

	"github.com/dan-sobolev-varathon/zk-stark-mixer/core/types"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/crypto"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/log"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/metrics"
	"github.com/dan-sobolev-varathon/zk-stark-mixer/zkvm"
)

// State is the mixer's single owned aggregate: the commitment tree, the
// nullifier set, and per-account history. It is conceptually a
// process-wide value, exclusively mutated by the action handlers in
// actions.go and read by the query handlers in query.go.
//
// The tree and nullifier set carry their own internal locking (they must
// remain independently consistent across Withdraw's suspension point, see
// actions.go); mu protects only the history map and its account ordering.
type State struct {
	mu           sync.Mutex
	history      map[types.Account][]HistoryEntry
	accountOrder []types.Account

	tree       *crypto.Tree
	nullifiers *crypto.NullifierSet

	imageID  zkvm.ImageID
	executor zkvm.Executor

	logger  *log.Logger
	metrics *metrics.Registry
}

// New returns an empty mixer state bound to the given guest image id and
// zkVM executor, metered against the process-wide default metrics registry.
func New(imageID zkvm.ImageID, executor zkvm.Executor) *State {
	return NewWithRegistry(imageID, executor, metrics.DefaultRegistry)
}

// NewWithRegistry is New, but metered against reg instead of the
// process-wide default registry -- useful for tests that want an isolated
// set of counters/gauges.
func NewWithRegistry(imageID zkvm.ImageID, executor zkvm.Executor, reg *metrics.Registry) *State {
	return &State{
		history:    make(map[types.Account][]HistoryEntry),
		tree:       crypto.NewTree(),
		nullifiers: crypto.NewNullifierSet(),
		imageID:    imageID,
		executor:   executor,
		logger:     log.Module("mixer"),
		metrics:    reg,
	}
}

// appendHistory records entry under account, registering the account in
// accountOrder on its first appearance. Caller must hold s.mu.
func (s *State) appendHistory(account types.Account, entry HistoryEntry) {
	if _, ok := s.history[account]; !ok {
		s.accountOrder = append(s.accountOrder, account)
	}
	s.history[account] = append(s.history[account], entry)
}

// historyFrom returns a copy of account's history from offset onward, or
// nil if the offset is beyond the end. Caller must hold s.mu for the
// duration of the call (Query takes it).
func (s *State) historyFrom(account types.Account, from uint64) []HistoryEntry {
	full := s.history[account]
	if from >= uint64(len(full)) {
		return nil
	}
	out := make([]HistoryEntry, len(full)-int(from))
	copy(out, full[from:])
	return out
}
