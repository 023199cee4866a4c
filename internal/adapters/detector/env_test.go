package detector_test

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/rewind/internal/adapters/detector"
)

func TestDetectEnvironment_CI(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("CI="+tt.value, func(t *testing.T) {
			t.Setenv("CI", tt.value)
			assert.Equal(t, tt.want, detector.DetectEnvironment().CI)
		})
	}
}

func TestResolveProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	tests := []struct {
		name string
		env  detector.Environment
		mode detector.ColorMode
		want termenv.Profile
	}{
		{"never wins over tty", detector.Environment{TTY: true}, detector.ColorNever, termenv.Ascii},
		{"always without tty", detector.Environment{}, detector.ColorAlways, termenv.ANSI256},
		{"auto in ci", detector.Environment{CI: true}, detector.ColorAuto, termenv.ANSI},
		{"auto piped", detector.Environment{}, detector.ColorAuto, termenv.Ascii},
		{"unknown mode behaves like auto", detector.Environment{CI: true}, "sometimes", termenv.ANSI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ResolveProfile(tt.env, tt.mode))
		})
	}
}

func TestResolveProfile_NoColorInCI(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, detector.ResolveProfile(detector.Environment{CI: true}, detector.ColorAuto))
}
