package detector

// Detect exposes detect for testing.
func Detect(isTTY bool, ci string) OutputMode {
	return detect(isTTY, ci)
}
