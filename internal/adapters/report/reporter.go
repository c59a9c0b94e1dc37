package report

import (
	"io"

	"go.trai.ch/reqsync/internal/adapters/detector"
	"go.trai.ch/reqsync/internal/core/ports"
	"go.trai.ch/reqsync/internal/ui/output"
)

// New returns the reporter for mode writing to w.
// ModeAuto is resolved from the environment first.
func New(mode detector.OutputMode, w io.Writer) ports.Reporter {
	if mode == detector.ModeAuto {
		mode = detector.DetectEnvironment()
	}

	switch mode {
	case detector.ModeJSON:
		return NewJSON(w)
	case detector.ModePretty:
		return NewText(w, output.ColorProfile())
	default:
		return NewText(w, output.ColorProfileANSI())
	}
}
