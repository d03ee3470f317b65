package main

import "testing"

func TestParseFloorRange(t *testing.T) {
	tests := []struct {
		input     string
		count     int
		wantStart int
		wantEnd   int
		wantErr   bool
	}{
		{"0-2", 3, 0, 2, false},
		{"1", 3, 1, 1, false},
		{" 0 - 1 ", 3, 0, 1, false},
		{"2-2", 3, 2, 2, false},
		{"0-3", 3, 0, 0, true},
		{"3", 3, 0, 0, true},
		{"2-1", 3, 0, 0, true},
		{"-1", 3, 0, 0, true},
		{"a-2", 3, 0, 0, true},
		{"0-b", 3, 0, 0, true},
		{"", 3, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start, end, err := parseFloorRange(tt.input, tt.count)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFloorRange(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && (start != tt.wantStart || end != tt.wantEnd) {
				t.Errorf("parseFloorRange(%q) = %d-%d, want %d-%d", tt.input, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
