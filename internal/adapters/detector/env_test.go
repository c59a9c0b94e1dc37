package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/reqsync/internal/adapters/detector"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		isTTY    bool
		ci       string
		expected detector.OutputMode
	}{
		{name: "terminal", isTTY: true, expected: detector.ModePretty},
		{name: "CI=true forces plain mode", isTTY: true, ci: "true", expected: detector.ModePlain},
		{name: "CI=1 forces plain mode", isTTY: true, ci: "1", expected: detector.ModePlain},
		{name: "CI=false keeps pretty mode", isTTY: true, ci: "false", expected: detector.ModePretty},
		{name: "pipe", isTTY: false, expected: detector.ModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, detector.Detect(tt.isTTY, tt.ci))
		})
	}
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")

	assert.Equal(t, detector.ModePlain, detector.DetectEnvironment())
}

func TestResolveMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		userFlag     string
		expected     detector.OutputMode
	}{
		{"auto respects detection (pretty)", detector.ModePretty, "auto", detector.ModePretty},
		{"auto respects detection (plain)", detector.ModePlain, "auto", detector.ModePlain},
		{"empty respects detection", detector.ModePlain, "", detector.ModePlain},
		{"pretty overrides", detector.ModePlain, "pretty", detector.ModePretty},
		{"plain overrides", detector.ModePretty, "plain", detector.ModePlain},
		{"ci is an alias of plain", detector.ModePretty, "ci", detector.ModePlain},
		{"json overrides", detector.ModePretty, "json", detector.ModeJSON},
		{"unknown falls back to detection", detector.ModePretty, "fancy", detector.ModePretty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.autoDetected, tt.userFlag))
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "json", detector.ModeJSON.String())
	assert.Equal(t, "auto", detector.ModeAuto.String())
}
