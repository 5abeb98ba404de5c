package main

import (
	"context"
	"os"

	"github.com/jwebster45206/dialogue-engine/internal/config"
	"github.com/jwebster45206/dialogue-engine/internal/logger"
	"github.com/jwebster45206/dialogue-engine/internal/storage"
	"github.com/jwebster45206/dialogue-engine/internal/worlds"
	"github.com/jwebster45206/dialogue-engine/pkg/dialogue"
	"github.com/jwebster45206/dialogue-engine/pkg/goals"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	var w *world.World
	var err error
	if cfg.WorldFile != "" {
		w, err = worlds.LoadFile(cfg.WorldFile)
		if err != nil {
			log.Error("Failed to load world file", "path", cfg.WorldFile, "error", err)
			os.Exit(1)
		}
	} else {
		w = worlds.Farm()
	}

	var store storage.Storage
	if cfg.Persist {
		rs := storage.NewRedisStorage(cfg.RedisAddr, log)
		if err := rs.WaitForConnection(context.Background()); err != nil {
			log.Error("Redis unavailable", "error", err)
			os.Exit(1)
		}
		defer rs.Close()
		store = rs
	}

	gen := dialogue.NewGenerator(w, cfg.Seed, log)
	gen.RevealWorld()
	sampler := newSampler(w, cfg.Seed)

	log.Info("Starting simulation",
		"dialogues", cfg.NumDialogues,
		"players", len(w.Players),
		"seed", cfg.Seed)

	failures := 0
	for i := 0; i < cfg.NumDialogues; i++ {
		req, user, agents := sampler.next()
		if req == nil {
			continue
		}
		start := gen.Context().Len()
		d := dialogue.New(gen, req, user, agents...)
		result := d.Run(false)

		dlog := logger.WithDialogueID(log, d.ID.String())
		lines := transcript(gen, start)
		if result != goals.Success {
			failures++
			dlog.Error("Dialogue did not reach its goal",
				"request", req.String(),
				"result", int(result))
			for _, line := range lines {
				dlog.Error(line)
			}
		}
		if store != nil {
			t := &storage.Transcript{
				ID:      d.ID,
				Request: req.String(),
				Result:  int(result),
				Lines:   lines,
			}
			if err := store.SaveTranscript(context.Background(), t); err != nil {
				logger.WithError(dlog, err).Error("Failed to persist transcript")
			}
		}
		if gen.Context().Len() >= cfg.FlushAfter {
			gen.Flush()
			gen.RevealWorld()
		}
	}

	log.Info("Simulation finished",
		"dialogues", cfg.NumDialogues,
		"failures", failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func transcript(gen *dialogue.Generator, from int) []string {
	stmts := gen.Context().From(from)
	lines := make([]string, 0, len(stmts))
	for _, st := range stmts {
		lines = append(lines, st.String())
	}
	return lines
}
