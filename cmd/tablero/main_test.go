package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "plain task id",
			in:   []string{"tablero", "task-abc"},
			want: []string{"tablero", "tasks", "show", "task-abc"},
		},
		{
			name: "flags before id",
			in:   []string{"tablero", "--dir", "/tmp/x", "task-abc"},
			want: []string{"tablero", "--dir", "/tmp/x", "tasks", "show", "task-abc"},
		},
		{
			name: "bool flag before id",
			in:   []string{"tablero", "--pretty", "task-abc"},
			want: []string{"tablero", "--pretty", "tasks", "show", "task-abc"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"tablero", "tasks", "list"},
			want: []string{"tablero", "tasks", "list"},
		},
		{
			name: "non-task positional untouched",
			in:   []string{"tablero", "stats"},
			want: []string{"tablero", "stats"},
		},
		{
			name: "after double dash",
			in:   []string{"tablero", "--", "task-abc"},
			want: []string{"tablero", "--", "tasks", "show", "task-abc"},
		},
		{
			name: "bare prefix not an id",
			in:   []string{"tablero", "task-"},
			want: []string{"tablero", "task-"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rewriteDirectTaskLookupArgs(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
