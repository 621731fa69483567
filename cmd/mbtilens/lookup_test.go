package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tinytelemetry/mbtilens/internal/catalog"
	"github.com/tinytelemetry/mbtilens/internal/model"
)

func TestPrintResolution(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	s := model.DefaultStrings()

	tests := []struct {
		name    string
		raw     string
		mode    model.DisplayMode
		want    []string
		notWant string
	}{
		{
			name: "known code shows code heading",
			raw:  "infp",
			mode: model.DisplayCode,
			want: []string{"INFP\n", c.Resolve("INFP").Record.Description, "color: " + c.Resolve("INFP").Record.Color},
		},
		{
			name: "celebrate mode shows phrase",
			raw:  "ENTJ",
			mode: model.DisplayCelebrate,
			want: []string{s.CelebrateTitle + "\n"},
		},
		{
			name: "unknown code falls back to default",
			raw:  "zzzz",
			mode: model.DisplayCode,
			want: []string{"ZZZZ\n", c.Resolve("").Record.Description, "ZZZZ is not a known type"},
		},
		{
			name:    "explicit default is not flagged",
			raw:     "default",
			mode:    model.DisplayCode,
			notWant: "not a known type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			printResolution(&buf, c.Resolve(tt.raw), s, tt.mode)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Fatalf("output %q missing %q", out, w)
				}
			}
			if tt.notWant != "" && strings.Contains(out, tt.notWant) {
				t.Fatalf("output %q should not contain %q", out, tt.notWant)
			}
		})
	}
}

func TestValidateCode(t *testing.T) {
	t.Parallel()

	validate := validateCode("empty!")
	for _, in := range []string{"", "   ", "\t"} {
		err := validate(in)
		if err == nil || err.Error() != "empty!" {
			t.Fatalf("validate(%q) = %v, want empty-input error", in, err)
		}
	}
	if err := validate(" infp "); err != nil {
		t.Fatalf("validate(%q) = %v, want nil", " infp ", err)
	}
}
