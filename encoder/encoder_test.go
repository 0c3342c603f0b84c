package encoder

import "testing"

func TestNewSessionRejectsBadDimensions(t *testing.T) {
	if _, err := NewSession(Options{Width: 0, Height: 480, OutputFile: "out.mp4"}); err == nil {
		t.Fatalf("NewSession accepted zero width")
	}
	if _, err := NewSession(Options{Width: 640, Height: -1, OutputFile: "out.mp4"}); err == nil {
		t.Fatalf("NewSession accepted negative height")
	}
}
