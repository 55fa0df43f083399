package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapFail(t *testing.T) {
	type testcase struct {
		name string
		err  error
		what string
		want string
	}

	tests := [...]testcase{
		{
			name: "nil stays nil",
			err:  nil,
			what: "read preferences",
		},
		{
			name: "prefixed",
			err:  Error("boom"),
			what: "read preferences",
			want: "can't read preferences: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapFail(tt.err, tt.what)
			if tt.want == "" {
				require.NoError(t, got)
				return
			}
			require.EqualError(t, got, tt.want)
		})
	}
}

func TestWrapFailfKeepsCause(t *testing.T) {
	err := WrapFailf(fs.ErrNotExist, "open %q", "preferences.toml")
	require.EqualError(t, err, `can't open "preferences.toml": file does not exist`)
	require.True(t, Is(err, fs.ErrNotExist))
}

func TestFailf(t *testing.T) {
	require.EqualError(t, Failf("register %s", "Audio"), "can't register Audio")
}

func TestCollapse(t *testing.T) {
	require.NoError(t, Collapse(nil))
	require.NoError(t, Collapse([]error{nil, nil}))

	a, b := Error("a"), Error("b")
	joined := Collapse([]error{a, nil, b})
	require.True(t, Is(joined, a))
	require.True(t, Is(joined, b))
}
