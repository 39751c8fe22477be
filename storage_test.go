package gpss

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage_EnterAdmitsUntilFull(t *testing.T) {
	s := newStorage("s", 2)
	require.True(t, s.isAvailable())
	admitted := s.enter(Transaction{ID: 1}, 0)
	require.True(t, admitted)
	admitted = s.enter(Transaction{ID: 2}, 0)
	require.True(t, admitted)
	require.True(t, s.isFull())

	admitted = s.enter(Transaction{ID: 3, Priority: 1}, 0)
	require.False(t, admitted, "third entry must park, storage is at capacity")
	require.Len(t, s.waiters, 1)
}

// TestStorage_LeaveHandsOffToHighestPriorityWaiter covers §8 scenario 3:
// capacity-1 storage, two waiters (priority 2 and 1); Leave must hand the
// slot to priority 2 without changing current, leaving priority 1 parked.
func TestStorage_LeaveHandsOffToHighestPriorityWaiter(t *testing.T) {
	s := newStorage("s", 1)
	require.True(t, s.enter(Transaction{ID: 1, Priority: 0}, 0))
	require.False(t, s.enter(Transaction{ID: 2, Priority: 2}, 1))
	require.False(t, s.enter(Transaction{ID: 3, Priority: 1}, 2))

	waiter, handedOff := s.leave()
	require.True(t, handedOff)
	require.Equal(t, uint64(2), waiter.txn.ID, "higher-priority waiter (2) must be handed the slot first")
	require.Equal(t, 1, s.current, "occupancy is unchanged by a hand-off")
	require.Len(t, s.waiters, 1)
	require.Equal(t, uint64(3), s.waiters[0].txn.ID)
}

// TestStorage_LeaveFIFOAmongEqualPriority covers the documented tie-break
// (DESIGN.md §Open-Question-(c)): among waiters of equal priority, the
// earliest-parked one is handed the slot first.
func TestStorage_LeaveFIFOAmongEqualPriority(t *testing.T) {
	s := newStorage("s", 1)
	require.True(t, s.enter(Transaction{ID: 1, Priority: 1}, 0))
	require.False(t, s.enter(Transaction{ID: 2, Priority: 1}, 1))
	require.False(t, s.enter(Transaction{ID: 3, Priority: 1}, 2))
	require.False(t, s.enter(Transaction{ID: 4, Priority: 1}, 3))

	waiter, handedOff := s.leave()
	require.True(t, handedOff)
	require.Equal(t, uint64(2), waiter.txn.ID, "first-parked waiter of equal priority must be handed the slot first")
	require.Equal(t, 1, s.current, "occupancy is unchanged by a hand-off")

	waiter, handedOff = s.leave()
	require.True(t, handedOff)
	require.Equal(t, uint64(3), waiter.txn.ID, "next-earliest waiter of equal priority is handed the slot next")
}

func TestStorage_LeaveFreesSlotWhenNoWaiters(t *testing.T) {
	s := newStorage("s", 1)
	require.True(t, s.enter(Transaction{ID: 1}, 0))
	waiter, handedOff := s.leave()
	require.False(t, handedOff)
	require.Zero(t, waiter)
	require.Equal(t, 0, s.current)
	require.True(t, s.isEmpty())
}

func TestStorage_LeaveOnEmptyPanics(t *testing.T) {
	s := newStorage("s", 1)
	require.Panics(t, func() { s.leave() })
}

func TestStorage_CurrentNeverExceedsCapacityAndWaitersEmptyWhileAvailable(t *testing.T) {
	s := newStorage("s", 3)
	for i := uint64(0); i < 5; i++ {
		s.enter(Transaction{ID: i, Priority: uint32(i)}, 0)
		require.LessOrEqual(t, s.current, s.capacity)
		if s.current < s.capacity {
			require.Empty(t, s.waiters)
		}
	}
}

func TestStorageStat_ObserveAndFinalize(t *testing.T) {
	var st storageStat
	st.observe(0, 2, 1.0) // idle for 1 unit
	st.observe(2, 2, 1.0) // full for 1 unit
	st.observe(1, 2, 2.0) // half for 2 units

	mean, idleFrac, fullFrac := st.finalize(4.0)
	require.InDelta(t, (0*1.0+2*1.0+1*2.0)/4.0, mean, 1e-9)
	require.InDelta(t, 0.25, idleFrac, 1e-9)
	require.InDelta(t, 0.25, fullFrac, 1e-9)
	require.Equal(t, 2, st.max)
}
