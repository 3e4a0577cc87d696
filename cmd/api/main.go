package main

import (
	"log"

	"github.com/jhandryJ/UIDEportes-backend/internal/db"
	"github.com/jhandryJ/UIDEportes-backend/internal/platform/config"
	phttp "github.com/jhandryJ/UIDEportes-backend/internal/platform/http"
	"github.com/jhandryJ/UIDEportes-backend/internal/platform/notify"

	authhttp "github.com/jhandryJ/UIDEportes-backend/internal/modules/auth/http"
	payhttp "github.com/jhandryJ/UIDEportes-backend/internal/modules/payments/http"
	teamhttp "github.com/jhandryJ/UIDEportes-backend/internal/modules/teams/http"
	tourhttp "github.com/jhandryJ/UIDEportes-backend/internal/modules/tournaments/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbpool := db.MustOpen(cfg.PGDSN)
	defer dbpool.Close()

	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	authModule := authhttp.NewModulePG(dbpool, cfg.JWTSecret, cfg.AccessTTL, mailer)
	teamModule := teamhttp.NewModulePG(dbpool, cfg.JWTSecret)
	// the team store is the single membership source for every policy engine
	tourModule := tourhttp.NewModulePG(dbpool, teamModule.Repo(), cfg.JWTSecret)
	payModule := payhttp.NewModulePG(dbpool, teamModule.Repo(), cfg.JWTSecret)

	app := phttp.NewServer(phttp.Options{AppName: "uideportes-api"},
		authModule, teamModule, tourModule, payModule)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
