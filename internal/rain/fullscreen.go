//go:build !windows

package rain

// newFullscreenDetector picks the platform probe for a foreground
// fullscreen application. Only Windows exposes a cheap foreground-window
// query; everywhere else the probe reports false and CPU gating alone
// drives suspension.
func newFullscreenDetector() FullscreenDetector {
	return UnsupportedFullscreen{}
}
