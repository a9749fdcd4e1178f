package rope

import (
	"errors"
	"math"
	"testing"
)

func mustNew(t *testing.T, length, x, y int) *Chain {
	t.Helper()
	c, err := New(length, x, y)
	if err != nil {
		t.Fatalf("new(%d,%d,%d): %v", length, x, y, err)
	}
	return c
}

func assertSegments(t *testing.T, c *Chain, want ...GridPoint) {
	t.Helper()
	got := c.Segments()
	if len(got) != len(want) {
		t.Fatalf("segments: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d: got %v want %v (all %v)", i, got[i], want[i], got)
		}
	}
}

func TestNew_AllSegmentsAtOrigin(t *testing.T) {
	for _, n := range []int{1, 2, 5, 64} {
		c := mustNew(t, n, 3, -7)
		if c.Len() != n {
			t.Fatalf("len: got %d want %d", c.Len(), n)
		}
		for i, s := range c.Segments() {
			if s != (GridPoint{X: 3, Y: -7}) {
				t.Fatalf("segment %d: got %v", i, s)
			}
		}
	}
}

func TestNew_RejectsInvalidArguments(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := New(n, 0, 0); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("New(%d): got %v want ErrInvalidArgument", n, err)
		}
	}
	cases := [][3]float64{
		{1.5, 0, 0},
		{0, 0, 0},
		{3, 0.25, 0},
		{3, 0, -2.5},
		{math.NaN(), 0, 0},
		{math.Inf(1), 0, 0},
		{MaxSegments + 1, 0, 0},
		{math.MaxInt32, 0, 0},
	}
	for _, a := range cases {
		c, err := NewFromNumbers(a[0], a[1], a[2])
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("NewFromNumbers(%v): got %v want ErrInvalidArgument", a, err)
		}
		if c != nil {
			t.Fatalf("NewFromNumbers(%v): expected no chain", a)
		}
	}
	c, err := NewFromNumbers(4, -2, 9)
	if err != nil {
		t.Fatalf("NewFromNumbers integral: %v", err)
	}
	if c.Len() != 4 || c.Head() != (GridPoint{X: -2, Y: 9}) {
		t.Fatalf("unexpected chain: %v", c.Segments())
	}
}

func TestMove_HeadDirections(t *testing.T) {
	cases := []struct {
		dir  string
		want GridPoint
	}{
		{"up", GridPoint{0, 1}},
		{"down", GridPoint{0, -1}},
		{"left", GridPoint{-1, 0}},
		{"right", GridPoint{1, 0}},
		{"upleft", GridPoint{-1, 1}},
		{"upright", GridPoint{1, 1}},
		{"downleft", GridPoint{-1, -1}},
		{"downright", GridPoint{1, -1}},
		{"none", GridPoint{0, 0}},
		{"", GridPoint{0, 0}},
	}
	for _, tc := range cases {
		c := mustNew(t, 1, 0, 0)
		c.Move(ParseDirection(tc.dir))
		assertSegments(t, c, tc.want)
	}
}

func TestMove_TrailingSegmentsStayWithinOne(t *testing.T) {
	c := mustNew(t, 3, 0, 0)
	c.Move(DirRight)
	assertSegments(t, c, GridPoint{1, 0}, GridPoint{0, 0}, GridPoint{0, 0})
}

func TestMove_FollowLagsOneStep(t *testing.T) {
	c := mustNew(t, 3, 0, 0)
	for i := 0; i < 3; i++ {
		c.Move(DirRight)
	}
	assertSegments(t, c, GridPoint{3, 0}, GridPoint{2, 0}, GridPoint{1, 0})
}

func TestMove_FollowStepsDiagonallyBySign(t *testing.T) {
	c := mustNew(t, 2, 0, 0)
	c.Move(DirRight)
	c.Move(DirUp)
	// 头部 (1,1) 与 (0,0) 相邻，不动
	assertSegments(t, c, GridPoint{1, 1}, GridPoint{0, 0})
	c.Move(DirUp)
	// 偏移 (1,2)，按符号斜走一步
	assertSegments(t, c, GridPoint{1, 2}, GridPoint{1, 1})
}

func TestMove_AdjacencyHoldsAfterEveryMove(t *testing.T) {
	c := mustNew(t, 8, 0, 0)
	path := []Direction{DirRight, DirRight, DirUpRight, DirUp, DirUp, DirLeft, DirDownLeft, DirDown, DirDown, DirNone, DirDownRight, DirRight}
	for round := 0; round < 4; round++ {
		for _, d := range path {
			c.Move(d)
			segs := c.Segments()
			for i := 1; i < len(segs); i++ {
				if segs[i-1].Chebyshev(segs[i]) > 1 {
					t.Fatalf("after %v: segments %d,%d not adjacent: %v", d, i-1, i, segs)
				}
			}
		}
	}
}

func TestAddRemoveNode(t *testing.T) {
	c := mustNew(t, 1, 0, 0)
	c.RemoveNode()
	if c.Len() != 1 {
		t.Fatalf("remove at floor: got len %d want 1", c.Len())
	}

	c.Move(DirRight)
	c.AddNode()
	assertSegments(t, c, GridPoint{1, 0}, GridPoint{1, 0})

	c.Move(DirRight)
	c.Move(DirRight)
	c.AddNode()
	assertSegments(t, c, GridPoint{3, 0}, GridPoint{2, 0}, GridPoint{2, 0})

	c.RemoveNode()
	assertSegments(t, c, GridPoint{3, 0}, GridPoint{2, 0})
}

func TestSegments_ReturnsCopy(t *testing.T) {
	c := mustNew(t, 2, 0, 0)
	segs := c.Segments()
	segs[0] = GridPoint{X: 99, Y: 99}
	if c.Head() != (GridPoint{}) {
		t.Fatalf("chain mutated through Segments view: %v", c.Head())
	}
}
