package cmd

import (
	"context"
	"log/slog"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/config"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/media"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/ui"
)

// LocalHotelID scopes records created while running without a backend.
const LocalHotelID = "local"

// DashboardEnv wires a loaded config into the dashboard. With local set, or
// a nil cfg, the dashboard runs against in-memory stores only and cfg
// contributes just its UI preferences. The media uploader is only set when
// ELVIRA_S3_BUCKET is configured.
func DashboardEnv(ctx context.Context, cfg *config.Config, local bool, logger *slog.Logger) ui.Env {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	env := ui.Env{HotelID: LocalHotelID, Logger: logger}
	if cfg == nil {
		return env
	}
	env.VimKeys = cfg.VimKeys
	if local {
		return env
	}

	env.Client = NewClient(cfg)
	env.HotelID = cfg.HotelID
	env.Sync = cfg.SyncPolicy()

	if mc := media.ConfigFromEnv(); mc.Bucket != "" {
		up, err := media.NewS3(ctx, mc)
		if err != nil {
			logger.Warn("media uploads disabled", "error", err)
		} else {
			env.Uploader = up
		}
	}
	return env
}
