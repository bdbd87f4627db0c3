package main

import (
	"context"
	"flag"
	"strings"

	gh "github.com/missBerg/eir-open/internal/adapters/ingest/github"
	"github.com/missBerg/eir-open/internal/platform/config"
	"github.com/missBerg/eir-open/internal/platform/logger"
	"github.com/missBerg/eir-open/internal/platform/snapstore"

	ingdom "github.com/missBerg/eir-open/internal/services/api/ingest/domain"
	ingestmod "github.com/missBerg/eir-open/internal/services/api/ingest/module"
	ingsvc "github.com/missBerg/eir-open/internal/services/api/ingest/service"
	regsvc "github.com/missBerg/eir-open/internal/services/api/registry/service"
)

func main() {
	var (
		reposFlag = flag.String("repos", "", "comma separated owner/repo list, overrides INGEST_REPOS")
		refFlag   = flag.String("ref", "", "git ref to sweep, default main")
	)
	flag.Parse()

	root := config.New()
	storeCfg := root.Prefix("STORE_")

	l := logger.Get()

	snap := snapstore.Open(snapstore.FromConf(storeCfg))
	l.Info().Str("backend", snap.Kind()).Msg("snapshot store ready")

	cfg := ingestmod.FromConfig(root)
	ghc := gh.NewClient(gh.Options{
		APIBase:   cfg.APIBase,
		RawBase:   cfg.RawBase,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Token:     cfg.Token,
	})

	registry := regsvc.New(snap)
	svc := ingsvc.New(ghc, registry, cfg.Repos)

	in := ingdom.SyncInput{Ref: *refFlag}
	if s := strings.TrimSpace(*reposFlag); s != "" {
		for _, r := range strings.Split(s, ",") {
			if r = strings.TrimSpace(r); r != "" {
				in.Repos = append(in.Repos, r)
			}
		}
	}

	out, err := svc.Sync(context.Background(), in)
	if err != nil {
		l.Panic().Err(err).Msg("sync failed")
	}
	for _, s := range out.Summary {
		l.Info().Str("repo", s.Repo).Int("ingested", s.Ingested).Msg("repo synced")
	}
	l.Info().Str("ref", out.Ref).Int("repos", len(out.Summary)).Msg("sync complete")
}
