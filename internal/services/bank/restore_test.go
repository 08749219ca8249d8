package bank

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ledgerbank/bankd/internal/ledger"
)

func TestRestore_ReproducesStateAndHistory(t *testing.T) {
	t.Parallel()

	src := New()
	mustCreate(t, src, "X")
	mustCreate(t, src, "Y")
	mustIncrease(t, src, "X", 10)

	_, err := src.Transfer("X", "Y", 5)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	_, err = src.Decrease("Y", 2)
	if err != nil {
		t.Fatalf("decrease: %v", err)
	}

	dst := New()

	err = dst.Restore(src.GetHistory())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if !reflect.DeepEqual(dst.GetHistory(), src.GetHistory()) {
		t.Fatalf("restored history differs:\nwant %v\ngot  %v", src.GetHistory(), dst.GetHistory())
	}

	for _, account := range []string{"X", "Y"} {
		want := balance(t, src, account)
		got := balance(t, dst, account)
		if got != want {
			t.Fatalf("restored balance of %q: want %d, got %d", account, want, got)
		}
	}
}

func TestRestore_EmptyHistory(t *testing.T) {
	t.Parallel()

	s := New()

	err := s.Restore(nil)
	if err != nil {
		t.Fatalf("restoring nothing: %v", err)
	}
	if got := len(s.GetHistory()); got != 0 {
		t.Fatalf("history after empty restore: want 0, got %d", got)
	}
}

func TestRestore_AbortsOnFirstInvalidOperation(t *testing.T) {
	t.Parallel()

	s := New()

	// the decrease overdraws, so it must be rejected by the validating path
	ops := []ledger.Operation{
		ledger.CreateAccount("X"),
		ledger.Increase("X", 10),
		ledger.Decrease("X", 20),
		ledger.Increase("X", 1),
	}

	err := s.Restore(ops)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}

	// the applied prefix stays, nothing after the failing step runs
	if got := len(s.GetHistory()); got != 2 {
		t.Fatalf("history after aborted restore: want 2 entries, got %d", got)
	}
	if got := balance(t, s, "X"); got != 10 {
		t.Fatalf("balance after aborted restore: want 10, got %d", got)
	}
}

func TestRestore_UnknownKindRejected(t *testing.T) {
	t.Parallel()

	s := New()

	err := s.Restore([]ledger.Operation{{Kind: "set_balance", Account: "X", Amount: 1}})
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("want ErrInvalidOperation, got %v", err)
	}
	if got := len(s.GetHistory()); got != 0 {
		t.Fatalf("rejected restore grew history: got %d entries", got)
	}
}

func TestRestore_IntoNonEmptyLedger(t *testing.T) {
	t.Parallel()

	s := New()
	mustCreate(t, s, "X")

	// a captured create for an account that already exists is rejected by
	// the normal validating path
	err := s.Restore([]ledger.Operation{ledger.CreateAccount("X")})
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("want ErrAccountExists, got %v", err)
	}

	// disjoint history replays fine on top of existing state
	err = s.Restore([]ledger.Operation{
		ledger.CreateAccount("Y"),
		ledger.Increase("Y", 3),
	})
	if err != nil {
		t.Fatalf("restore disjoint history: %v", err)
	}
	if got := balance(t, s, "Y"); got != 3 {
		t.Fatalf("Y balance: want 3, got %d", got)
	}
}
