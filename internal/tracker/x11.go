package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// X11 reads the active window through EWMH and ICCCM properties.
type X11 struct {
	xu *xgbutil.XUtil
}

// NewX11 connects to the X server named by $DISPLAY.
func NewX11() (*X11, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connecting to X server: %w", err)
	}
	return &X11{xu: xu}, nil
}

// FocusedWindow implements Detector.
func (x *X11) FocusedWindow(_ context.Context) (*Window, error) {
	active, err := ewmh.ActiveWindowGet(x.xu)
	if err != nil {
		return nil, fmt.Errorf("reading _NET_ACTIVE_WINDOW: %w", err)
	}
	if active == 0 {
		return nil, nil
	}

	w := &Window{}

	// WM_CLASS is (instance, class); the class part is the stable id.
	if class, err := icccm.WmClassGet(x.xu, active); err == nil && class != nil {
		w.AppID = strings.TrimSpace(class.Class)
		if w.AppID == "" {
			w.AppID = strings.TrimSpace(class.Instance)
		}
	}

	if name, err := ewmh.WmNameGet(x.xu, active); err == nil && name != "" {
		w.Title = name
	} else if name, err := icccm.WmNameGet(x.xu, active); err == nil {
		w.Title = name
	}

	if pid, err := ewmh.WmPidGet(x.xu, active); err == nil {
		w.PID = int(pid)
	}

	if w.AppID == "" && w.PID <= 0 {
		return nil, nil
	}
	return w, nil
}

// Name implements Detector.
func (x *X11) Name() string { return "x11" }

// Close implements Detector.
func (x *X11) Close() error {
	x.xu.Conn().Close()
	return nil
}
