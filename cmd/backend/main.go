package main

import (
	"imagehost/internal/app/config"
	"imagehost/internal/pkg"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("App start")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	app, err := pkg.NewApp(cfg)
	if err != nil {
		logrus.Fatalf("Failed to init app: %v", err)
	}

	app.RunApp()
	logrus.Info("App terminated")
}
