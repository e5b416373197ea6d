package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrStillLocked,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrStillLocked,
			b:      Wrapf(Wrap(ErrStillLocked, "deposit 3"), "withdrawal"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrTransferFailed,
			b:      Wrap(ErrInsufficientAmount, "pull"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not an error": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"stdlib is not a root error": {
			a:      ErrHuman,
			b:      fmt.Errorf("stdlib"),
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestCode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want uint32
	}{
		"nil":          {err: nil, want: 0},
		"root":         {err: ErrStillLocked, want: 19},
		"wrapped root": {err: Wrap(ErrInvalidBeneficiary, "lock"), want: 17},
		"stdlib":       {err: stdlib.New("boom"), want: CodeInternal},
		"wrapped stdlib": {
			err:  Wrap(stdlib.New("boom"), "disk"),
			want: CodeInternal,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Code(tc.err); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.Code(), "another not found")
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("all is lost")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
	if !strings.Contains(err.Error(), "all is lost") {
		t.Fatalf("panic message lost: %q", err)
	}
}

func TestWrapAttachesStackOnce(t *testing.T) {
	err := Wrap(Wrap(ErrNotFound, "inner"), "outer")
	if stackTrace(err) == nil {
		t.Fatal("stack trace not attached")
	}
	if got, want := err.Error(), "outer: inner: not found"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if Wrap(nil, "nothing") != nil {
		t.Fatal("wrapping nil must return nil")
	}
}
