// Command wallora runs the wallpaper bridge behind a local method channel
// and keeps a tray icon while it is up.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"github.com/hexaghost/wallora/config"
	"github.com/hexaghost/wallora/pkg/api"
	"github.com/hexaghost/wallora/pkg/channel"
	"github.com/hexaghost/wallora/pkg/wallpaper"
	"github.com/hexaghost/wallora/util/log"
)

func main() {
	ok, err := acquireLock()
	if err != nil {
		log.Fatalf("Failed to acquire single-instance lock: %v", err)
	}
	if !ok {
		log.Printf("Another instance of %s is already running.", config.AppName)
		return
	}
	defer releaseLock()

	a := app.NewWithID(config.AppID)
	cfg := config.NewAppConfig(a.Preferences())

	setter := wallpaper.NewSetter(wallpaper.DefaultOS(), wallpaper.WithLegacyMode(cfg.GetLegacyMode()))
	log.Printf("%s %s using %s wallpaper mode", config.AppName, config.AppVersion, setter.Mode())

	server := api.NewServer(channel.NewDispatcher(setter), api.Options{
		Addr:           cfg.Addr(),
		RequestsPerSec: cfg.GetRequestsPerSec(),
		Burst:          cfg.GetBurst(),
	})

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Channel server stopped: %v", err)
		}
	}()

	if desk, ok := a.(desktop.App); ok {
		m := fyne.NewMenu(config.AppName,
			fyne.NewMenuItem(fmt.Sprintf("Listening on %s", server.Addr()), nil),
			fyne.NewMenuItem(fmt.Sprintf("Mode: %s", setter.Mode()), nil),
		)
		for _, item := range m.Items {
			item.Disabled = true
		}
		desk.SetSystemTrayMenu(m)
		desk.SetSystemTrayIcon(theme.ComputerIcon())
	} else {
		log.Println("Tray icon not supported on this platform")
	}

	a.Lifecycle().SetOnStopped(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			log.Printf("Failed to stop channel server: %v", err)
		}
	})

	a.Run()
}
