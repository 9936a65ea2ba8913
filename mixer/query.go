package mixer

import "github.com/dan-sobolev-varathon/zk-stark-mixer/core/types"

// Query is the tagged union of read-only state queries §4.5 exposes, each
// paginated by an offset so a single reply stays bounded in size.
type (
	// QueryLeaves asks for the full current leaf sequence.
	QueryLeaves struct{}

	// QueryWithdrawn asks for nullifiers from offset From onward.
	QueryWithdrawn struct {
		From uint64
	}

	// QueryWithdrawnAll asks for every nullifier ever inserted.
	QueryWithdrawnAll struct{}

	// QueryHistoryOneFrom asks for one account's history from an offset.
	QueryHistoryOneFrom struct {
		User types.Account
		From uint64
	}

	// QueryHistoryFrom asks for several accounts' histories, each from
	// its own offset.
	QueryHistoryFrom struct {
		Users []UserFrom
	}

	// QueryHistoryAll asks for every account's full history.
	QueryHistoryAll struct{}
)

// QueryResult is the tagged union of replies matching Query's variants.
type (
	// ResultLeaves answers QueryLeaves.
	ResultLeaves struct {
		Leaves [][32]byte
	}

	// ResultWithdrawn answers QueryWithdrawn.
	ResultWithdrawn struct {
		Nullifiers [][32]byte
	}

	// ResultWithdrawnAll answers QueryWithdrawnAll.
	ResultWithdrawnAll struct {
		Nullifiers [][32]byte
	}

	// ResultHistoryOneFrom answers QueryHistoryOneFrom.
	ResultHistoryOneFrom struct {
		History []HistoryEntry
	}

	// ResultHistoryFrom answers QueryHistoryFrom.
	ResultHistoryFrom struct {
		Histories []UserHistory
	}

	// ResultHistoryAll answers QueryHistoryAll.
	ResultHistoryAll struct {
		Histories []UserHistory
	}
)

// Query dispatches q against the state and returns its matching result.
func (s *State) Query(q interface{}) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch v := q.(type) {
	case QueryLeaves:
		return ResultLeaves{Leaves: s.tree.Leaves()}

	case QueryWithdrawn:
		return ResultWithdrawn{Nullifiers: s.nullifiers.From(v.From)}

	case QueryWithdrawnAll:
		return ResultWithdrawnAll{Nullifiers: s.nullifiers.All()}

	case QueryHistoryOneFrom:
		return ResultHistoryOneFrom{History: s.historyFrom(v.User, v.From)}

	case QueryHistoryFrom:
		out := make([]UserHistory, 0, len(v.Users))
		for _, uf := range v.Users {
			out = append(out, UserHistory{User: uf.User, History: s.historyFrom(uf.User, uf.From)})
		}
		return ResultHistoryFrom{Histories: out}

	case QueryHistoryAll:
		out := make([]UserHistory, 0, len(s.accountOrder))
		for _, acct := range s.accountOrder {
			out = append(out, UserHistory{User: acct, History: s.historyFrom(acct, 0)})
		}
		return ResultHistoryAll{Histories: out}

	default:
		return nil
	}
}
