package root

import (
	"context"
	"errors"
	"log/slog"

	"github.com/deepak75500/welledapp-freelance/internal/api"
	"github.com/deepak75500/welledapp-freelance/internal/authflow"
	"github.com/deepak75500/welledapp-freelance/internal/config"
	"github.com/deepak75500/welledapp-freelance/internal/daily"
	"github.com/deepak75500/welledapp-freelance/internal/leaderboard"
	"github.com/deepak75500/welledapp-freelance/internal/logging"
	"github.com/deepak75500/welledapp-freelance/internal/session"
	"github.com/deepak75500/welledapp-freelance/internal/storage"
	"github.com/deepak75500/welledapp-freelance/internal/tui"
)

var errNotLoggedIn = errors.New("not logged in (run `welled login`)")

// clientApp is everything a client command needs, wired once per invocation.
type clientApp struct {
	cfg     *config.Config
	log     *slog.Logger
	kv      *storage.KVRepo
	guard   *storage.ConfirmationRepo
	client  *api.Client
	session *session.Store
	auth    *authflow.Flow
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagAPI != "" {
		cfg.APIURL = flagAPI
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	return cfg, nil
}

// openClientApp opens the local store, builds the API client and restores
// the persisted session.
func openClientApp(ctx context.Context) (*clientApp, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, logCloser, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		return nil, nil, err
	}

	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
		_ = logCloser.Close()
	}

	client := api.New(cfg.APIURL, api.WithTimeout(cfg.RequestTimeout), api.WithLogger(log))
	kv := storage.NewKVRepo(db)
	sess := session.New(kv, client, log)
	client.SetTokenSource(sess.Token)
	sess.Restore(ctx)

	return &clientApp{
		cfg:     cfg,
		log:     log,
		kv:      kv,
		guard:   storage.NewConfirmationRepo(db),
		client:  client,
		session: sess,
		auth:    authflow.New(client, sess),
	}, cleanup, nil
}

func (a *clientApp) requireUser() (*api.User, error) {
	u := a.session.User()
	if u == nil {
		return nil, errNotLoggedIn
	}
	return u, nil
}

// newDaily builds a controller for one-shot CLI use. Banners are not
// auto-dismissed within a command's lifetime.
func (a *clientApp) newDaily() *daily.Controller {
	return daily.New(a.client, a.session, a.kv, a.guard, daily.Options{
		DayCheckInterval: a.cfg.DayCheckInterval,
		BannerDuration:   a.cfg.BannerDuration,
		Logger:           a.log,
	})
}

func (a *clientApp) tuiDeps() tui.Deps {
	return tui.Deps{
		Session:  a.session,
		Auth:     a.auth,
		Client:   a.client,
		Roster:   leaderboard.NewView(a.client, a.log),
		NewDaily: a.newDaily,
		Log:      a.log,
	}
}
