package ledger

import (
	"reflect"
	"testing"
)

func TestStore_Empty(t *testing.T) {
	t.Parallel()

	s := NewStore()

	if s.Has("X") {
		t.Fatalf("fresh store should have no accounts")
	}
	if got := len(s.History()); got != 0 {
		t.Fatalf("fresh store history: want 0 entries, got %d", got)
	}
	if _, ok := s.AccountOperations("X"); ok {
		t.Fatalf("fresh store should have no index entry for X")
	}
}

func TestStore_AddAccountAndBalance(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddAccount("X")

	if !s.Has("X") {
		t.Fatalf("X should exist after AddAccount")
	}
	if got := s.Balance("X"); got != 0 {
		t.Fatalf("new account balance: want 0, got %d", got)
	}

	s.SetBalance("X", 42)

	if got := s.Balance("X"); got != 42 {
		t.Fatalf("balance after SetBalance: want 42, got %d", got)
	}
}

func TestStore_AppendHistory_SequentialIDs(t *testing.T) {
	t.Parallel()

	s := NewStore()

	ops := []Operation{
		CreateAccount("X"),
		Increase("X", 10),
		Decrease("X", 5),
	}

	for want, op := range ops {
		got := s.AppendHistory(op)
		if got != want {
			t.Fatalf("operation id: want %d, got %d", want, got)
		}
	}

	if !reflect.DeepEqual(s.History(), ops) {
		t.Fatalf("history mismatch: want %v, got %v", ops, s.History())
	}
}

func TestStore_HistoryIsACopy(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AppendHistory(CreateAccount("X"))

	snap := s.History()
	snap[0] = Increase("Y", 99)

	if got := s.History()[0]; got != CreateAccount("X") {
		t.Fatalf("mutating the snapshot leaked into the store: got %v", got)
	}
}

func TestStore_AccountOperations(t *testing.T) {
	t.Parallel()

	s := NewStore()

	id0 := s.AppendHistory(CreateAccount("X"))
	s.IndexOperation("X", id0)

	id1 := s.AppendHistory(CreateAccount("Y"))
	s.IndexOperation("Y", id1)

	id2 := s.AppendHistory(Transfer("X", "Y", 5))
	s.IndexOperation("X", id2)
	s.IndexOperation("Y", id2)

	xOps, ok := s.AccountOperations("X")
	if !ok {
		t.Fatalf("X should have an index entry")
	}

	want := []Operation{CreateAccount("X"), Transfer("X", "Y", 5)}
	if !reflect.DeepEqual(xOps, want) {
		t.Fatalf("X operations: want %v, got %v", want, xOps)
	}

	yOps, _ := s.AccountOperations("Y")
	if yOps[1] != (Transfer("X", "Y", 5)) {
		t.Fatalf("transfer should be indexed under both sides, Y got %v", yOps)
	}

	if _, ok := s.AccountOperations("Z"); ok {
		t.Fatalf("Z was never indexed, want ok=false")
	}
}
