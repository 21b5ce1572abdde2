package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"starrec/internal/config"
	"starrec/internal/notify"
	"starrec/internal/replay"
	"starrec/internal/store"
	"starrec/internal/tracker"
)

// app bundles the wired-up components every command needs.
type app struct {
	cfg   *config.Config
	store *store.Store
	svc   *tracker.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}

	svc := tracker.NewService(st, decoderFrom(cfg), cfg.MyNames)
	return &app{cfg: cfg, store: st, svc: svc}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
}

func (a *app) settleDelay() time.Duration {
	return time.Duration(a.cfg.SettleSeconds) * time.Second
}

func decoderFrom(cfg *config.Config) replay.Decoder {
	fields := strings.Fields(cfg.DecoderCmd)
	if len(fields) == 0 {
		// Decode attempts will fail and be skipped until set-decoder is run.
		return replay.NewExecDecoder("")
	}
	return replay.NewExecDecoder(fields[0], fields[1:]...)
}

// newReplayCallback builds the watcher callback: ingest the replay, look up
// the record against the opponent, print the detailed form and toast the
// short one.
func (a *app) newReplayCallback(ctx context.Context) func(path string) {
	return func(path string) {
		g, err := a.svc.Ingest(ctx, path)
		if err != nil {
			slog.Error("ingest failed", "path", path, "error", err)
			return
		}
		if g == nil {
			return
		}

		opponent, err := a.svc.OpponentOf(ctx, g)
		if err != nil || opponent == "" {
			return
		}

		rec, err := a.svc.Record(ctx, opponent)
		if err != nil {
			slog.Error("record lookup failed", "opponent", opponent, "error", err)
			return
		}

		fmt.Printf("\n%s\n\n", tracker.FormatRecord(rec))

		if a.cfg.NotifyOnNewGame {
			notify.Notify("StarRecord", tracker.FormatRecordShort(rec))
		}
	}
}
