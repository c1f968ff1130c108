package format

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name string
		in   uint64
		want string
	}{
		{"zero", 0, "0 B"},
		{"below a kibibyte", 512, "512 B"},
		{"exact kibibyte", 1024, "1.0 KiB"},
		{"mebibytes", 1536 * 1024, "1.5 MiB"},
		{"gibibytes", 2 << 30, "2.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytes(tt.in); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
