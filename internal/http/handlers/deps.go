package handlers

import (
	"offerkit/internal/config"
	"offerkit/internal/repos"
	"offerkit/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	OfferHandler  *OfferHandler
	WizardHandler *WizardHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	offerRepo := repos.NewOfferRepo(db)
	offerSvc := services.NewOfferService(offerRepo)
	sink := services.FileCopySink{Dir: cfg.ExportDir}

	return &Deps{
		OfferHandler:  &OfferHandler{Offers: offerSvc, Sink: sink},
		WizardHandler: &WizardHandler{Offers: offerSvc},
	}
}
