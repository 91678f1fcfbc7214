package hanja

import "testing"

func TestReady(t *testing.T) {
	if err := Ready(); err != nil {
		t.Fatalf("Converter failed to load: %v", err)
	}
}

func TestToSimplified(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"華山派", "华山派"},
		{"南宮世家", "南宫世家"},
		{"天魔劍", "天魔剑"},
		{"少林寺", "少林寺"},
	}

	for _, tt := range tests {
		if got := ToSimplified(tt.in); got != tt.want {
			t.Errorf("ToSimplified(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
