package ui

import (
	"bytes"
	"context"
	"image"
	imgcolor "image/color"
	"image/png"
	"time"

	"github.com/getlantern/systray"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/revanthlol/focusd/internal/dashboard"
	"github.com/revanthlol/focusd/internal/usage"
)

const trayRefresh = 5 * time.Second

func (a *App) trayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tray",
		Short: "Track in the background with a system tray icon",
		Long: `Run the tracker and show today's focused time in the system tray.
Quit from the tray menu or with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trk, det, _, err := a.newTracker()
			if err != nil {
				return err
			}
			defer func() { _ = det.Close() }()

			svc, err := a.service()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			go func() {
				if err := trk.Run(ctx); err != nil {
					a.logger.Error().Err(err).Msg("tracker stopped")
				}
			}()

			t := &tray{source: svc, logger: a.logger.With().Str("component", "tray").Logger()}
			systray.Run(func() { t.ready(ctx, cancel) }, cancel)
			return nil
		},
	}
}

// tray keeps the tray title in step with today's total.
type tray struct {
	source dashboard.Source
	logger zerolog.Logger
	today  *systray.MenuItem
}

func (t *tray) ready(ctx context.Context, cancel context.CancelFunc) {
	systray.SetIcon(trayIcon())
	systray.SetTitle("focusd")
	systray.SetTooltip("focusd: screen time tracker")

	t.today = systray.AddMenuItem("Today: --", "Focused time today")
	t.today.Disable()
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Stop tracking and quit")

	go func() {
		ticker := time.NewTicker(trayRefresh)
		defer ticker.Stop()

		t.refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				systray.Quit()
				return
			case <-mQuit.ClickedCh:
				cancel()
				systray.Quit()
				return
			case <-ticker.C:
				t.refresh(ctx)
			}
		}
	}()
}

func (t *tray) refresh(ctx context.Context) {
	d, err := t.source.Fetch(ctx, usage.Request{View: usage.ViewToday})
	if err != nil {
		t.logger.Warn().Err(err).Msg("refreshing tray title")
		return
	}
	title := trayTitle(d)
	systray.SetTitle(title)
	t.today.SetTitle("Today: " + title)
}

// trayTitle is the short total shown next to the icon.
func trayTitle(d *usage.Dashboard) string {
	if d == nil {
		return "--"
	}
	return usage.FormatDurationShort(d.TotalSeconds)
}

// trayIcon draws a ring with a centre dot as a PNG.
func trayIcon() []byte {
	const size = 22
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	fg := imgcolor.NRGBA{R: 0x89, G: 0xb4, B: 0xfa, A: 0xff}
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			d2 := dx*dx + dy*dy
			if d2 <= c*c && d2 >= (c-4)*(c-4) || d2 <= 9 {
				img.Set(x, y, fg)
			}
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
