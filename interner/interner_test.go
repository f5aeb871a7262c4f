package interner

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntern(t *testing.T) {
	in := New()
	a := in.Intern("foo")
	b := in.Intern("bar")
	c := in.Intern("foo")
	require.Equal(t, a, c)
	require.NotEqual(t, a, b)
	require.NotEqual(t, Invalid, a)
	require.Equal(t, "foo", in.Resolve(a))
	require.Equal(t, "bar", in.Resolve(b))
	require.Equal(t, 2, in.Count())
}

func TestLookup(t *testing.T) {
	in := New()
	_, ok := in.Lookup("missing")
	require.False(t, ok)
	sym := in.Intern("x")
	got, ok := in.Lookup("x")
	require.True(t, ok)
	require.Equal(t, sym, got)
}

func TestResolveInvalid(t *testing.T) {
	in := New()
	require.Equal(t, "", in.Resolve(Invalid))
	require.Equal(t, "", in.Resolve(Symbol(42)))
}

func TestConcurrentIntern(t *testing.T) {
	in := New()
	var wg sync.WaitGroup
	names := []string{"a", "b", "c", "d"}
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				for _, n := range names {
					in.Intern(n)
				}
			}
		}()
	}
	wg.Wait()
	require.Equal(t, len(names), in.Count())
}
