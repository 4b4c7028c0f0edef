package borrown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fullName struct {
	First, Last string
}

func (n fullName) View() string {
	return n.First + " " + n.Last
}

// path presents its segments through a pointer receiver.
type path struct {
	segments []string
}

func (p *path) View() []string {
	return p.segments
}

// box is a minimal pointer-like wrapper.
type box struct {
	p *int
}

func (b box) Deref() int {
	return *b.p
}

func TestAsRef(t *testing.T) {
	n := fullName{First: "Ada", Last: "Lovelace"}

	borrowed := Borrowed(&n)
	owned := Owned(n)
	assert.Equal(t, "Ada Lovelace", AsRef[string](&borrowed))
	assert.Equal(t, "Ada Lovelace", AsRef[string](&owned))

	p := path{segments: []string{"usr", "local"}}
	pm := Borrowed(&p)
	assert.Equal(t, []string{"usr", "local"}, AsRef[[]string](&pm))
	assert.True(t, pm.IsBorrowed())
}

func TestDeref(t *testing.T) {
	x := 9
	b := box{p: &x}

	borrowed := Borrowed(&b)
	owned := Owned(b)
	assert.Equal(t, 9, Deref[int](&borrowed))
	assert.Equal(t, 9, Deref[int](&owned))
}
