package main

import (
	"github.com/sirupsen/logrus"

	"trackboard/internal/config"
	"trackboard/internal/server"
)

func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		logrus.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
