package cli

import (
	"os"
	"testing"

	"github.com/ardnew/tmplgen/log"
)

func TestLogConfig_Scan(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	tests := []struct {
		name   string
		args   []string
		want   logConfig
		preset logConfig
	}{
		{
			name: "separate values",
			args: []string{"render", "--log-level", "debug", "--log-format", "text", "page.txt"},
			want: logConfig{Level: "debug", Format: "text"},
		},
		{
			name: "assigned values",
			args: []string{"--log-level=trace", "--log-format=json"},
			want: logConfig{Level: "trace", Format: "json"},
		},
		{
			name: "value looks like a flag",
			args: []string{"--log-level", "--values", "v.yaml"},
			want: logConfig{Level: ""},
		},
		{
			name:   "switches",
			args:   []string{"--log-caller", "--no-log-pretty"},
			want:   logConfig{Caller: true, Pretty: false},
			preset: logConfig{Pretty: true},
		},
		{
			name:   "assigned switches",
			args:   []string{"--log-caller=false", "--no-log-pretty=false", "--log-pretty=bogus"},
			want:   logConfig{Caller: false, Pretty: true},
			preset: logConfig{Caller: true},
		},
		{
			name: "end of flags",
			args: []string{"eval", "--", "--log-level=error"},
			want: logConfig{},
		},
		{
			name: "other flags",
			args: []string{"--logs", "--log", "-I", "dir"},
			want: logConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.preset
			f.scan(tt.args)

			if f != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, f, tt.want)
			}
		})
	}
}
