package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/geocontent/backend/docs"
	"github.com/geocontent/backend/lib"
	"github.com/geocontent/backend/lib/api"
	"github.com/geocontent/backend/lib/cli"
	"github.com/geocontent/backend/lib/content"
	settings2 "github.com/geocontent/backend/lib/settings"
	"github.com/geocontent/backend/lib/utils"
	"github.com/gofiber/fiber/v2"
)

// @title Geo Content API
// @version 1.0
// @description Versioned, moderated geo content: tags, waypoints, media and static pages.
// @description Every edit is appended to a revision chain and becomes visible after approval.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:9001
// @BasePath /
func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			if _, err := settings2.ReadConfig(""); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if err := settings2.RunConfigCommand(os.Stdout, os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		case "client":
			logger := utils.SetupLogger("warn")
			if err := cli.RunFromCLI(context.Background(), logger, os.Stdout, os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}

	bootLogger := utils.SetupLogger("info")
	settings, err := settings2.InitSettings(bootLogger)
	if err != nil {
		bootLogger.Fatalw("Error loading settings", "error", err)
		return
	}
	setupLogger := utils.SetupLogger(settings.LogLevel)
	defer setupLogger.Sync()

	setupLogger.Info("Starting Geo Content backend...")
	setupLogger.Info("Your Geo Content version is " + settings.GitVersion)

	dataStore, err := utils.GetDB(*settings, setupLogger)
	if err != nil {
		setupLogger.Fatal("Error connecting to database: " + err.Error())
		return
	}
	defer dataStore.Close()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	api.InitAPI(&lib.InitStore{
		C:                 app,
		RetrievedSettings: settings,
		Store:             dataStore,
		Validator:         content.NewValidator(),
		Logger:            setupLogger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		setupLogger.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			setupLogger.Errorw("Error during shutdown", "error", err)
		}
	}()

	fiberString := fmt.Sprintf("%s:%s", settings.IP, settings.Port)
	setupLogger.Info("Starting API on " + fiberString)
	if err := app.Listen(fiberString); err != nil {
		setupLogger.Errorw("Server stopped", "error", err)
	}
}
