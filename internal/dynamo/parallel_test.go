package dynamo

import (
	"runtime"
	"testing"
)

func TestEffectiveWorkers(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		workers int
		want    int
	}{
		{"fewer bodies than workers", 4, 8, 4},
		{"more bodies than workers", 100, 3, 3},
		{"single worker", 10, 1, 1},
		{"empty galaxy", 0, 8, 1},
		{"all cpus capped", 1, 0, 1},
		{"all cpus", 1 << 20, 0, runtime.NumCPU()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveWorkers(tt.n, tt.workers); got != tt.want {
				t.Errorf("EffectiveWorkers(%d, %d) = %d, want %d", tt.n, tt.workers, got, tt.want)
			}
		})
	}
}
