package gpss

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSim() *Simulation {
	return &Simulation{logger: noopLogger{}}
}

func TestBlock_QueueDepart(t *testing.T) {
	sim := newTestSim()
	sim.queues = []queueCounter{{name: "q"}}
	qBlock := &block{kind: BlockQueue, queueIndex: 0, next: 1}
	dBlock := &block{kind: BlockDepart, queueIndex: 0, next: noBlock}
	sim.blocks = []*block{qBlock, dBlock}
	qBlock.self, dBlock.self = 0, 1

	next, ok := qBlock.advance(sim, Transaction{})
	require.True(t, ok)
	require.Equal(t, BlockRef(1), next)
	require.Equal(t, 1, sim.queues[0].current)

	next, ok = dBlock.advance(sim, Transaction{})
	require.True(t, ok)
	require.Equal(t, noBlock, next)
	require.Equal(t, 0, sim.queues[0].current)
}

func TestBlock_DepartOnEmptyQueuePanics(t *testing.T) {
	sim := newTestSim()
	sim.queues = []queueCounter{{name: "q"}}
	b := &block{kind: BlockDepart, queueIndex: 0, name: "q"}
	require.PanicsWithValue(t, &EmptyQueueError{Queue: "q"}, func() {
		b.advance(sim, Transaction{})
	})
}

func TestBlock_GateParksWhileClosed(t *testing.T) {
	sim := newTestSim()
	gate := &block{kind: BlockGate, next: noBlock, expr: Val(false)}

	next, ok := gate.advance(sim, Transaction{ID: 1, Priority: 1})
	require.False(t, ok)
	require.Equal(t, noBlock, next)
	require.Len(t, gate.waiters, 1)

	next, ok = gate.advance(sim, Transaction{ID: 2, Priority: 5})
	require.False(t, ok)
	require.Len(t, gate.waiters, 2)
}

func TestBlock_GateAdmitsWhenOpenAndNoHigherWaiter(t *testing.T) {
	sim := newTestSim()
	gate := &block{kind: BlockGate, next: 1, expr: Val(true)}
	next, ok := gate.advance(sim, Transaction{ID: 1, Priority: 1})
	require.True(t, ok)
	require.Equal(t, BlockRef(1), next)
	require.Empty(t, gate.waiters)
}

func TestBlock_RefreshGateReleasesHighestPriority(t *testing.T) {
	gate := &block{kind: BlockGate, expr: Val(false)}
	sim := newTestSim()
	_, ok := gate.advance(sim, Transaction{ID: 1, Priority: 1})
	require.False(t, ok)
	_, ok = gate.advance(sim, Transaction{ID: 2, Priority: 5})
	require.False(t, ok)

	gate.expr = Val(true)
	txn, released := gate.refreshGate()
	require.True(t, released)
	require.Equal(t, uint64(2), txn.ID, "highest priority waiter releases first")

	txn, released = gate.refreshGate()
	require.True(t, released)
	require.Equal(t, uint64(1), txn.ID)

	_, released = gate.refreshGate()
	require.False(t, released, "no waiters left")
}

// TestBlock_GateFIFOAmongEqualPriority covers the documented tie-break
// (DESIGN.md §Open-Question-(c)): among waiters of equal priority, the
// earliest-parked one releases first.
func TestBlock_GateFIFOAmongEqualPriority(t *testing.T) {
	sim := newTestSim()
	gate := &block{kind: BlockGate, expr: Val(false)}
	_, ok := gate.advance(sim, Transaction{ID: 1, Priority: 3})
	require.False(t, ok)
	_, ok = gate.advance(sim, Transaction{ID: 2, Priority: 3})
	require.False(t, ok)
	_, ok = gate.advance(sim, Transaction{ID: 3, Priority: 3})
	require.False(t, ok)

	gate.expr = Val(true)
	txn, released := gate.refreshGate()
	require.True(t, released)
	require.Equal(t, uint64(1), txn.ID, "first-parked waiter of equal priority releases first")

	txn, released = gate.refreshGate()
	require.True(t, released)
	require.Equal(t, uint64(2), txn.ID)

	txn, released = gate.refreshGate()
	require.True(t, released)
	require.Equal(t, uint64(3), txn.ID)
}

// TestBlock_LeaveHandOffResumesAtEnterNext is a regression test: a
// storage hand-off must resume the released waiter at the Enter block's
// *next* (it has already been admitted — current is unchanged by the
// hand-off, spec §4.4), not by re-entering the Enter block itself. Doing
// the latter finds the storage still full and parks the waiter right
// back where it started.
func TestBlock_LeaveHandOffResumesAtEnterNext(t *testing.T) {
	sim := newTestSim()
	sim.storages = []*storage{newStorage("s", 1)}

	enterBlock := &block{kind: BlockEnter, storageIndex: 0, next: 1}
	afterEnter := &block{kind: BlockTerminate}
	leaveBlock := &block{kind: BlockLeave, storageIndex: 0, next: noBlock}
	sim.blocks = []*block{enterBlock, afterEnter, leaveBlock}
	enterBlock.self, afterEnter.self, leaveBlock.self = 0, 1, 2

	// First transaction occupies the only slot.
	next, ok := enterBlock.advance(sim, Transaction{ID: 1})
	require.True(t, ok)
	require.Equal(t, BlockRef(1), next)
	require.Equal(t, 1, sim.storages[0].current)

	// Second transaction parks on the Enter block's waiters.
	next, ok = enterBlock.advance(sim, Transaction{ID: 2})
	require.False(t, ok)
	require.Equal(t, noBlock, next)
	require.Len(t, sim.storages[0].waiters, 1)

	// Leave hands the slot to the parked waiter without decrementing
	// current, and must push it onto the reactivation FIFO bound for
	// the Enter block's *next*, not the Enter block. Leave itself
	// always falls through to its own next.
	next, ok = leaveBlock.advance(sim, Transaction{ID: 3})
	require.True(t, ok)
	require.Equal(t, noBlock, next)
	require.Equal(t, 1, sim.storages[0].current, "hand-off leaves occupancy unchanged")

	require.Len(t, sim.reactivation, 1)
	require.Equal(t, BlockRef(1), sim.reactivation[0].block, "released waiter must resume at Enter's next, not at Enter itself")
	require.Equal(t, uint64(2), sim.reactivation[0].txn.ID)
}

func TestBlock_TransferImmExprProb(t *testing.T) {
	sim := newTestSim()
	sim.labels = []label{{name: "L", target: 7}}

	imm := &block{kind: BlockTransferImm, altLabel: 0}
	next, ok := imm.advance(sim, Transaction{})
	require.True(t, ok)
	require.Equal(t, BlockRef(7), next)

	exprFalse := &block{kind: BlockTransferExpr, altLabel: 0, next: 3, expr: Val(false)}
	next, ok = exprFalse.advance(sim, Transaction{})
	require.True(t, ok)
	require.Equal(t, BlockRef(3), next, "false expr falls through to next")

	exprTrue := &block{kind: BlockTransferExpr, altLabel: 0, next: 3, expr: Val(true)}
	next, ok = exprTrue.advance(sim, Transaction{})
	require.True(t, ok)
	require.Equal(t, BlockRef(7), next, "true expr jumps to the label")

	probAlways := &block{kind: BlockTransferProb, altLabel: 0, next: 3, prob: 1.0, prng: newProbRNG(1, 2)}
	next, ok = probAlways.advance(sim, Transaction{})
	require.True(t, ok)
	require.Equal(t, BlockRef(7), next)

	probNever := &block{kind: BlockTransferProb, altLabel: 0, next: 3, prob: 0.0, prng: newProbRNG(1, 2)}
	next, ok = probNever.advance(sim, Transaction{})
	require.True(t, ok)
	require.Equal(t, BlockRef(3), next)
}

func TestBlock_DebugFallsThrough(t *testing.T) {
	sim := newTestSim()
	var traced string
	sim.logger = &recordingLogger{onDebugf: func(msg string) { traced = msg }}
	b := &block{kind: BlockDebug, next: 4, msg: "hello"}
	next, ok := b.advance(sim, Transaction{ID: 9})
	require.True(t, ok)
	require.Equal(t, BlockRef(4), next)
	require.Equal(t, "hello", traced)
}

type recordingLogger struct {
	onDebugf func(msg string)
}

func (r *recordingLogger) Debugf(_ float64, _ uint64, msg string) {
	if r.onDebugf != nil {
		r.onDebugf(msg)
	}
}
func (r *recordingLogger) Noticef(string, ...any) {}
func (r *recordingLogger) Errorf(string, ...any)  {}
