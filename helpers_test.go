package vector

import (
	"slices"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

// item is an element whose lifetime is tracked by lifecycle.
type item struct {
	val  int
	live bool
}

// lifecycle counts element hooks and fails the n-th call of a hook on demand.
// alive is the number of items created and not yet destroyed; a leak or a
// double destroy shows up as alive != Len().
type lifecycle struct {
	alive int

	news, copies, moves, assigns, destroys int

	failNew, failCopy, failMove, failAssign int

	nothrowMove bool
	noCopy      bool
}

func (l *lifecycle) traits() *Traits[item] {
	return &Traits[item]{
		New: func() (item, error) {
			l.news++
			if l.news == l.failNew {
				return item{}, errInjected
			}
			l.alive++
			return item{live: true}, nil
		},
		Copy: func(src *item) (item, error) {
			l.copies++
			if l.copies == l.failCopy {
				return item{}, errInjected
			}
			l.alive++
			return item{val: src.val, live: true}, nil
		},
		Move: func(src *item) (item, error) {
			l.moves++
			if l.moves == l.failMove {
				return item{}, errInjected
			}
			v := *src
			*src = item{}
			return v, nil
		},
		Assign: func(dst, src *item) error {
			l.assigns++
			if l.assigns == l.failAssign {
				return errInjected
			}
			dst.val = src.val
			return nil
		},
		Destroy: func(v *item) {
			if v.live {
				l.destroys++
				l.alive--
			}
		},
		NothrowMove: l.nothrowMove,
		NoCopy:      l.noCopy,
	}
}

// itemsOf builds a vector of items holding vals with capacity len(vals).
func itemsOf(t *testing.T, l *lifecycle, vals ...int) *Vector[item] {
	t.Helper()
	v := New(l.traits())
	require.NoError(t, v.Reserve(len(vals)))
	for _, x := range vals {
		_, err := v.EmplaceBack(func() (item, error) {
			l.alive++
			return item{val: x, live: true}, nil
		})
		require.NoError(t, err)
	}
	return v
}

func itemVals(v *Vector[item]) []int {
	out := make([]int, 0, v.Len())
	for x := range v.Values() {
		out = append(out, x.val)
	}
	return out
}

func intsOf(t *testing.T, vals ...int) *Vector[int] {
	t.Helper()
	v := New[int](nil)
	for _, x := range vals {
		require.NoError(t, v.PushBack(x))
	}
	return v
}

func ints(v *Vector[int]) []int {
	return slices.Collect(v.Values())
}

// requireIntact checks that v holds want and that no item leaked or was
// destroyed twice.
func requireIntact(t *testing.T, l *lifecycle, v *Vector[item], want ...int) {
	t.Helper()
	if len(want) == 0 {
		require.Empty(t, itemVals(v))
	} else {
		require.Equal(t, want, itemVals(v))
	}
	require.Equal(t, v.Len(), l.alive, "live items must match Len()")
}
