package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectNodeLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"chatweaver"},
			want: []string{"chatweaver"},
		},
		{
			name: "direct node id first token",
			in:   []string{"chatweaver", "node-abc123"},
			want: []string{"chatweaver", "nodes", "show", "node-abc123"},
		},
		{
			name: "direct node id after value flag",
			in:   []string{"chatweaver", "--dir", "./tmp-test-ws", "node-abc123"},
			want: []string{"chatweaver", "--dir", "./tmp-test-ws", "nodes", "show", "node-abc123"},
		},
		{
			name: "direct node id after short value flag",
			in:   []string{"chatweaver", "-w", "ws-1", "node-abc123"},
			want: []string{"chatweaver", "-w", "ws-1", "nodes", "show", "node-abc123"},
		},
		{
			name: "direct node id after equals flag",
			in:   []string{"chatweaver", "--dir=./tmp-test-ws", "node-abc123"},
			want: []string{"chatweaver", "--dir=./tmp-test-ws", "nodes", "show", "node-abc123"},
		},
		{
			name: "direct node id after bool flag",
			in:   []string{"chatweaver", "--pretty", "node-abc123"},
			want: []string{"chatweaver", "--pretty", "nodes", "show", "node-abc123"},
		},
		{
			name: "direct node id after double dash",
			in:   []string{"chatweaver", "--dir", "./tmp-test-ws", "--", "node-abc123"},
			want: []string{"chatweaver", "--dir", "./tmp-test-ws", "--", "nodes", "show", "node-abc123"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"chatweaver", "nodes", "show", "node-abc123"},
			want: []string{"chatweaver", "nodes", "show", "node-abc123"},
		},
		{
			name: "bare prefix not rewritten",
			in:   []string{"chatweaver", "node-"},
			want: []string{"chatweaver", "node-"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"chatweaver", "wat"},
			want: []string{"chatweaver", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectNodeLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectNodeLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
