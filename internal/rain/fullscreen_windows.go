//go:build windows

package rain

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procGetWindowLongW      = user32.NewProc("GetWindowLongW")
	procMonitorFromWindow   = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
)

const (
	wsCaption    uint32 = 0x00C00000
	wsThickFrame uint32 = 0x00040000

	monitorNearest = 2 // MONITOR_DEFAULTTONEAREST

	// GWL_STYLE (-16) passed as a uintptr argument.
	gwlStyle = ^uintptr(15)

	// A window has to span at least this fraction of its monitor in both
	// dimensions to count as fullscreen.
	fullscreenCoverage = 0.9
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

type monitorInfo struct {
	Size    uint32
	Monitor winRect
	Work    winRect
	Flags   uint32
}

// WindowsFullscreen probes the foreground window: a borderless window
// covering (almost) its whole monitor is treated as a fullscreen app.
type WindowsFullscreen struct{}

func newFullscreenDetector() FullscreenDetector {
	return WindowsFullscreen{}
}

func (WindowsFullscreen) FullscreenActive() (bool, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return false, nil
	}

	var wr winRect
	if ret, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&wr))); ret == 0 {
		return false, err
	}

	mon, _, _ := procMonitorFromWindow.Call(hwnd, monitorNearest)
	if mon == 0 {
		return false, nil
	}
	var mi monitorInfo
	mi.Size = uint32(unsafe.Sizeof(mi))
	if ret, _, err := procGetMonitorInfoW.Call(mon, uintptr(unsafe.Pointer(&mi))); ret == 0 {
		return false, err
	}

	if !coversMonitor(wr, mi.Monitor, fullscreenCoverage) {
		return false, nil
	}
	style, _, _ := procGetWindowLongW.Call(hwnd, gwlStyle)
	return borderlessStyle(uint32(style)), nil
}

// coversMonitor reports whether the window spans at least frac of the
// monitor in both dimensions.
func coversMonitor(w, m winRect, frac float64) bool {
	ww := float64(w.Right - w.Left)
	wh := float64(w.Bottom - w.Top)
	mw := float64(m.Right - m.Left)
	mh := float64(m.Bottom - m.Top)
	if mw <= 0 || mh <= 0 {
		return false
	}
	return ww >= mw*frac && wh >= mh*frac
}

// borderlessStyle reports whether the style lacks a caption bar or sizing
// frame, the shape games and exclusive-fullscreen apps present.
func borderlessStyle(style uint32) bool {
	return style&wsCaption == 0 || style&wsThickFrame == 0
}
