package calcerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     Kind
	}{
		{"structural", Structural("matrix", "must be square"), ErrStructural, KindStructural},
		{"domain", Domain("salary", "must be > 0, got %s", "0"), ErrDomain, KindDomain},
		{"arithmetic", Arithmetic("bep", "must not be zero"), ErrArithmetic, KindArithmetic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("expected errors.Is(%v, %v)", tt.err, tt.sentinel)
			}
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, got)
			}
			if !IsInput(tt.err) {
				t.Error("expected input error")
			}
		})
	}
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	err := fmt.Errorf("calculate weights: %w", Domain("matrix[0][1]", "must be positive"))
	if !errors.Is(err, ErrDomain) {
		t.Error("expected wrapped domain error to match ErrDomain")
	}
	if errors.Is(err, ErrStructural) {
		t.Error("domain error must not match ErrStructural")
	}
	if KindOf(err) != KindDomain {
		t.Errorf("expected KindDomain, got %v", KindOf(err))
	}
}

func TestErrorMessage(t *testing.T) {
	err := Domain("revenue", "must not be negative, got %s", "-1")
	if err.Error() != "revenue: must not be negative, got -1" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	err = Structural("", "matrix must not be empty")
	if err.Error() != "matrix must not be empty" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestKindOfForeignError(t *testing.T) {
	if KindOf(errors.New("boom")) != 0 {
		t.Error("expected zero kind for non-input error")
	}
	if IsInput(nil) {
		t.Error("nil is not an input error")
	}
}

func TestKindString(t *testing.T) {
	if KindDomain.String() != "domain" || KindStructural.String() != "structural" ||
		KindArithmetic.String() != "arithmetic" || Kind(0).String() != "unknown" {
		t.Error("unexpected kind names")
	}
}
