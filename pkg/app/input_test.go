package app

import "testing"

func TestTouchAction(t *testing.T) {
	tests := []struct {
		name        string
		justPressed int
		active      int
		want        pointerAction
	}{
		{"no touch", 0, 0, pointerNone},
		{"finger held", 0, 1, pointerNone},
		{"single tap", 1, 1, pointerPrimary},
		{"second finger lands", 1, 2, pointerSecondary},
		{"two fingers land together", 2, 2, pointerSecondary},
		{"two fingers held", 0, 2, pointerNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := touchAction(tt.justPressed, tt.active); got != tt.want {
				t.Errorf("touchAction(%d, %d) = %d, want %d", tt.justPressed, tt.active, got, tt.want)
			}
		})
	}
}
