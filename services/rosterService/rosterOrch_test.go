package rosterService

import "testing"

func TestCanDemandBoundary(t *testing.T) {
	tests := []struct {
		name     string
		demands  int
		limit    int
		expected bool
	}{
		{name: "no demands taken", demands: 0, limit: 3, expected: true},
		{name: "one below the limit", demands: 2, limit: 3, expected: true},
		{name: "at the limit", demands: 3, limit: 3, expected: false},
		{name: "over the limit", demands: 4, limit: 3, expected: false},
		{name: "limit of one allows the first", demands: 0, limit: 1, expected: true},
		{name: "limit of one refuses the second", demands: 1, limit: 1, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDemand(tt.demands, tt.limit); got != tt.expected {
				t.Errorf("CanDemand(%d, %d) = %v, expected %v", tt.demands, tt.limit, got, tt.expected)
			}
		})
	}
}
