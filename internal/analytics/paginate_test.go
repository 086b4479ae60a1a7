package analytics

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socops/ticket-analytics/internal/domain"
)

func TestPaginateCoversEveryRecord(t *testing.T) {
	for _, n := range []int{0, 1, 7, 25, 26, 100} {
		tickets := make([]domain.Ticket, n)
		for i := range tickets {
			tickets[i] = newTicket(fmt.Sprintf("T-%d", i))
		}
		v := viewOf(tickets...)
		for _, size := range []int{1, 3, 25, 1000} {
			first, err := Paginate(v, 1, size)
			require.NoError(t, err)
			assert.Equal(t, (n+size-1)/size, first.TotalPages, "n=%d size=%d", n, size)
			assert.Equal(t, n, first.TotalCount)

			seen := 0
			for page := 1; page <= first.TotalPages; page++ {
				p, err := Paginate(v, page, size)
				require.NoError(t, err)
				seen += p.Items.Len()
			}
			assert.Equal(t, n, seen, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginateBeyondRangeIsEmpty(t *testing.T) {
	v := viewOf(newTicket("T-1"), newTicket("T-2"), newTicket("T-3"))
	p, err := Paginate(v, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Items.Len())
	assert.Equal(t, 3, p.TotalCount)
	assert.Equal(t, 2, p.TotalPages)
}

func TestPaginateHugeArgumentsDoNotWrap(t *testing.T) {
	v := viewOf(newTicket("T-1"), newTicket("T-2"), newTicket("T-3"))

	p, err := Paginate(v, 1<<62+1, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Items.Len())
	assert.Equal(t, 1, p.TotalPages)

	p, err = Paginate(v, 1, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, []string{"T-1", "T-2", "T-3"}, keysOf(p.Items))
	assert.Equal(t, 1, p.TotalPages)

	p, err = Paginate(v, math.MaxInt, math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Items.Len())
}

func TestPaginateSlicesInOrder(t *testing.T) {
	v := viewOf(newTicket("T-1"), newTicket("T-2"), newTicket("T-3"))
	p, err := Paginate(v, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"T-3"}, keysOf(p.Items))
}

func TestPaginateRejectsBadArguments(t *testing.T) {
	v := viewOf(newTicket("T-1"))

	_, err := Paginate(v, 1, 0)
	require.ErrorIs(t, err, ErrInvalidPageSize)

	_, err = Paginate(v, 1, -5)
	require.ErrorIs(t, err, ErrInvalidPageSize)

	_, err = Paginate(v, 0, 10)
	require.ErrorIs(t, err, ErrInvalidPage)
}
