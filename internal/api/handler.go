package api

import (
	"github.com/Chloelee05/ElevateTM/internal/broadcast"
	"github.com/Chloelee05/ElevateTM/internal/engine"
	"github.com/Chloelee05/ElevateTM/internal/game"
	"github.com/Chloelee05/ElevateTM/internal/storage"
)

// ContestHandler groups all contest-related HTTP handlers.
type ContestHandler struct {
	repo     storage.Repository
	rules    game.Rules
	catalog  game.Catalog
	provider engine.DecisionProvider
	hub      *broadcast.Hub
}

// NewContestHandler creates a ContestHandler wired with the repository, the
// loaded rules/catalog, the opponent decision provider and the WS hub.
func NewContestHandler(repo storage.Repository, rules game.Rules, catalog game.Catalog, provider engine.DecisionProvider, hub *broadcast.Hub) *ContestHandler {
	return &ContestHandler{repo: repo, rules: rules, catalog: catalog, provider: provider, hub: hub}
}
