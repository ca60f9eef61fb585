package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("row not found")
	err := NotFound("user_not_found", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause is not reachable via errors.Is")
	}
	if err.Error() == "" {
		t.Error("error string is empty")
	}
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusInternalServerError},
		{name: "plain", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "not_found", err: NotFound("x", errors.New("missing")), want: http.StatusNotFound},
		{name: "bad_request", err: BadRequest("y", errors.New("invalid")), want: http.StatusBadRequest},
		{name: "custom", err: New(http.StatusConflict, "z", errors.New("dup")), want: http.StatusConflict},
		{
			name: "wrapped",
			err:  fmt.Errorf("outer: %w", NotFound("inner", errors.New("gone"))),
			want: http.StatusNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.err); got != tc.want {
				t.Errorf("StatusOf = %d, want %d", got, tc.want)
			}
		})
	}
}
