package main

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fedcompute-project/fedcompute/cmd/fedcompute"
	_ "github.com/fedcompute-project/fedcompute/pkg/logger"
)

// Values for version are injected by the build.
var (
	VERSION = ""
)

func main() {
	start := time.Now()
	log.Trace().Msgf("Top of execution - %s", start.UTC())
	fedcompute.Execute(VERSION)
	log.Trace().Msgf("Execution finished - %s", time.Since(start))
}
