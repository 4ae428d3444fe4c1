package pgas

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBarrierReleasesAllArrivals(t *testing.T) {
	const n = 5
	b := NewBarrier(n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			b.Wait()
		}()
	}
	wg.Wait()
}

func TestBarrierIsReusableAcrossGenerations(t *testing.T) {
	const n = 3
	b := NewBarrier(n)
	for gen := 0; gen < 3; gen++ {
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				b.Wait()
			}()
		}
		wg.Wait()
	}
}

func TestRemoteArrayGetPutRange(t *testing.T) {
	a := NewRemoteArray[int](0, 8)
	a.PutRange(2, []int{10, 20, 30})
	require.Equal(t, []int{10, 20, 30}, a.GetRange(2, 3))
	require.Equal(t, 0, a.Owner())
	require.Equal(t, 8, a.Len())
}

func TestAtomicDomainCompareExchange(t *testing.T) {
	cells := NewRemoteCellArray(1, 4)
	ad := NewAtomicDomain()

	require.True(t, ad.CompareExchange(cells.At(0), 0, 1))
	require.False(t, ad.CompareExchange(cells.At(0), 0, 1))
	require.EqualValues(t, 1, ad.Load(cells.At(0)))
}

func TestAtomicDomainFetchAddReturnsPreviousValue(t *testing.T) {
	counter := NewRemoteCounter(0)
	ad := NewAtomicDomain()

	require.EqualValues(t, 0, ad.FetchAdd(counter.Cell(), 5))
	require.EqualValues(t, 5, ad.FetchAdd(counter.Cell(), 3))
	require.EqualValues(t, 8, ad.LoadUint64(counter.Cell()))
}

func TestTeamBroadcastAndRank(t *testing.T) {
	team := NewTeam(3)
	handles := Broadcast(team, "shared")
	require.Len(t, handles, 3)
	for _, h := range handles {
		require.Equal(t, "shared", h)
	}

	r := team.Rank(1)
	require.Equal(t, 1, r.Me())
	require.Equal(t, 3, r.N())
	require.Panics(t, func() { team.Rank(3) })
}
