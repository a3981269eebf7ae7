package draft_test

import (
	"testing"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/draft"
)

func table() []int {
	packs := make([]int, draft.NumSeats)
	for i := range packs {
		packs[i] = i
	}
	return packs
}

func TestRotateLeft(t *testing.T) {
	got := draft.Rotate(table(), draft.Left)
	for i, p := range got {
		if want := (i - 1 + draft.NumSeats) % draft.NumSeats; p != want {
			t.Errorf("seat %d holds pack %d, want %d", i, p, want)
		}
	}
}

func TestRotateRightInvertsLeft(t *testing.T) {
	got := draft.Rotate(draft.Rotate(table(), draft.Left), draft.Right)
	for i, p := range got {
		if p != i {
			t.Errorf("seat %d holds pack %d after left+right", i, p)
		}
	}
}

func TestRotateTwiceEachWayRestores(t *testing.T) {
	packs := table()
	packs = draft.Rotate(packs, draft.Left)
	packs = draft.Rotate(packs, draft.Left)
	if packs[0] != draft.NumSeats-2 {
		t.Errorf("seat 0 holds pack %d after two lefts", packs[0])
	}
	packs = draft.Rotate(packs, draft.Right)
	packs = draft.Rotate(packs, draft.Right)
	for i, p := range packs {
		if p != i {
			t.Errorf("seat %d holds pack %d, want %d", i, p, i)
		}
	}
}

func TestDirectionFor(t *testing.T) {
	tests := map[int]draft.Direction{1: draft.Left, 2: draft.Right, 3: draft.Left}
	for round, want := range tests {
		if got := draft.DirectionFor(round); got != want {
			t.Errorf("round %d passes %s, want %s", round, got, want)
		}
	}
}
