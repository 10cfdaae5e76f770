package assert

import (
	"testing"

	"github.com/iov-one/htlc/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
		"different error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrExpired,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var nilErr error
	var nilPtr *int

	cases := map[string]struct {
		Value    interface{}
		WantFail bool
	}{
		"nil":           {Value: nil},
		"nil error":     {Value: nilErr},
		"nil pointer":   {Value: nilPtr},
		"non nil error": {Value: errors.ErrEmpty, WantFail: true},
		"number":        {Value: 0, WantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			Nil(mock, tc.Value)
			if failed := mock.failcalls > 0; failed != tc.WantFail {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestPanics(t *testing.T) {
	mock := &tmock{TB: t}
	Panics(mock, func() { panic("boom") })
	if mock.failcalls != 0 {
		t.Fatal("panic not detected")
	}

	Panics(mock, func() {})
	if mock.failcalls != 1 {
		t.Fatal("missing panic not reported")
	}
}

// tmock mocks testing.TB and only counts failure calls. It ignores all other
// input.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Error(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Errorf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}
