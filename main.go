// Package main provides the entry point for the Robomap editor.
package main

import (
	"context"
	"log"

	fyneapp "fyne.io/fyne/v2/app"

	"robomap/internal/apiclient"
	"robomap/internal/app"
	"robomap/internal/telemetry"
	"robomap/ui/mainwindow"
	"robomap/ui/prefs"
)

const (
	appTitle   = "Robomap"
	appVersion = "0.1.0"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, appVersion)

	appPrefs := prefs.Load()
	client := apiclient.New(appPrefs.ServerURL)
	session := app.NewSession(client)

	fyneApp := fyneapp.New()
	win := mainwindow.New(fyneApp, session, client, appPrefs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startTelemetry(ctx, appPrefs.TelemetryURL)

	win.Window().SetOnClosed(func() {
		if err := appPrefs.Save(); err != nil {
			log.Printf("save preferences: %v", err)
		}
	})

	win.Show()
	fyneApp.Run()
}

// startTelemetry subscribes to the robot pose feed in the background.
// The editor works fully offline; the feed only drives the connection
// indicator and pose logging.
func startTelemetry(ctx context.Context, url string) {
	if url == "" {
		return
	}

	client := telemetry.New(url, "pose", "map")
	client.OnStateChange(func(connected bool) {
		log.Printf("telemetry: connected=%v", connected)
	})
	client.OnMessage(func(msg telemetry.Message) {
		if msg.Type == "map" {
			log.Printf("telemetry: map update received")
		}
	})
	go client.Run(ctx)
}
