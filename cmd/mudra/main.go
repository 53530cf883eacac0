package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/command"
	"github.com/ayusman/mudra/internal/dispatch"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "", "SQLite database path (default ~/.mudra/mudra.db)")
	cameraID := flag.Int("camera", 0, "camera device ID")
	sinkURL := flag.String("sink", "http://127.0.0.1:8080/api/gesture/event", "command sink endpoint")
	motionThresh := flag.Float64("motion", 1.0, "motion detection threshold (percent of changed pixels)")
	idleFPS := flag.Int("idle-fps", app.DefaultIdleFPS, "capture FPS while no motion is detected")
	activeFPS := flag.Int("active-fps", app.DefaultActiveFPS, "capture FPS during active detection")
	retentionDays := flag.Int("retention-days", 30, "days to keep logged events (0 disables cleanup)")
	headless := flag.Bool("headless", false, "run without the system tray")
	flag.Parse()

	fmt.Println("Mudra - Hand Gesture Recognition")

	// Initialize the store
	path := *dbPath
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}

		dbDir := filepath.Join(homeDir, ".mudra")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		path = filepath.Join(dbDir, "mudra.db")
	}

	st, err := store.New(path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	stopCleanup := st.StartCleanup(store.CleanupInterval, time.Duration(*retentionDays)*24*time.Hour)
	defer stopCleanup()

	// Load the persisted recognition config, falling back to defaults.
	cfg := gesture.DefaultConfig()
	if err := st.Settings().GetJSON(store.SettingRecognition, &cfg); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Failed to load recognition config: %v", err)
		}
		cfg = gesture.DefaultConfig()
	}
	settings := gesture.NewSettings(cfg.Normalized())

	// Load the persisted gesture mapping, falling back to the built-in table.
	mapper := command.NewMapper()
	mapping := map[string]string{}
	if err := st.Settings().GetJSON(store.SettingMapping, &mapping); err == nil && len(mapping) > 0 {
		mapper.SetMapping(mapping)
	}

	client := dispatch.NewClient(*sinkURL, settings.Snapshot().MinEmissionInterval())

	application := app.New(app.Config{
		Settings:     settings,
		Dispatch:     client,
		CameraID:     *cameraID,
		MotionThresh: *motionThresh,
		IdleFPS:      *idleFPS,
		ActiveFPS:    *activeFPS,
	})

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    application.Camera(),
		Settings:  settings,
		Mapper:    mapper,
		Dispatch:  client,
		Feed:      application,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := application.Start(); err != nil {
		log.Printf("Failed to start detection pipeline: %v", err)
	} else {
		application.SetEnabled(true)
	}
	defer application.Stop()

	if *headless {
		select {}
	}

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		application.SetEnabled(enabled)
		if enabled {
			mapper.Start()
		} else {
			mapper.Stop()
		}
		t.SetMode(mapper.Snapshot().Mode)
	})

	// Mirror the live feed into the tray's last-gesture display.
	results, cancel := application.Subscribe()
	defer cancel()
	go func() {
		for res := range results {
			if res.Admitted {
				t.SetLastGesture(string(res.Stable))
			}
		}
	}()

	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
