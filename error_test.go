package dbconnect

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	cause := fmt.Errorf("connection reset by peer")
	cases := []struct {
		name      string
		err       error
		code      ErrorCode
		isWrite   bool
		isRead    bool
	}{
		{"nil", nil, Unknown, false, false},
		{"plain", cause, Unknown, false, false},
		{"write", NewError(RemoteWriteError, "user1", cause), RemoteWriteError, true, false},
		{"read", NewError(RemoteReadError, "user1", cause), RemoteReadError, false, true},
		{"wrapped read", fmt.Errorf("outer: %w", NewError(RemoteReadError, "k", cause)), RemoteReadError, false, true},
		{"decode", NewError(DecodeError, "k", cause), DecodeError, false, false},
	}
	for _, tt := range cases {
		if got := CodeOf(tt.err); got != tt.code {
			t.Errorf("%s: CodeOf got %v want %v", tt.name, got, tt.code)
		}
		if got := IsRemoteWriteError(tt.err); got != tt.isWrite {
			t.Errorf("%s: IsRemoteWriteError got %v want %v", tt.name, got, tt.isWrite)
		}
		if got := IsRemoteReadError(tt.err); got != tt.isRead {
			t.Errorf("%s: IsRemoteReadError got %v want %v", tt.name, got, tt.isRead)
		}
	}
}

func TestErrorUnwrapAndMessage(t *testing.T) {
	cause := errors.New("i/o timeout")
	err := NewError(RemoteWriteError, "mykey", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected Error to unwrap to its cause")
	}
	msg := err.Error()
	for _, want := range []string{"RemoteWriteError", "mykey", "i/o timeout"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestIsNil(t *testing.T) {
	var p *Error
	var m map[string]int
	var e error
	cases := []struct {
		v    any
		want bool
	}{
		{nil, true},
		{p, true},
		{m, true},
		{e, true},
		{&Error{}, false},
		{Error{}, false},
		{3, false},
	}
	for i, c := range cases {
		if got := IsNil(c.v); got != c.want {
			t.Errorf("case %d: IsNil(%#v) got %v want %v", i, c.v, got, c.want)
		}
	}
}
