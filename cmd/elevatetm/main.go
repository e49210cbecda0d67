package main

import (
	"github.com/Chloelee05/ElevateTM/internal/api"
	"github.com/Chloelee05/ElevateTM/internal/broadcast"
	"github.com/Chloelee05/ElevateTM/internal/config"
	"github.com/Chloelee05/ElevateTM/internal/constants"
	"github.com/Chloelee05/ElevateTM/internal/logging"
	"github.com/Chloelee05/ElevateTM/internal/opponent"
	"github.com/Chloelee05/ElevateTM/internal/version"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := config.ParseEnv()
	if err != nil {
		logging.Fatal("Failed to parse environment", err, nil)
	}

	cfg := loadConfigOrExit(env.ConfigPath)
	if cfg.DecisionPromptTemplate != "" {
		opponent.SetDecisionPromptTemplate(cfg.DecisionPromptTemplate)
	}

	repo := createRepositoryOrExit(env.DBPath)
	provider := opponent.NewDefault()

	hub := broadcast.NewHub()
	go hub.Run()

	handler := api.NewContestHandler(repo, cfg.Rules, cfg.Catalog, provider, hub)

	// Background sweeper: auto-confirm rounds whose confirm deadline passed.
	startDeadlineSweeper(repo, cfg.Rules, cfg.Catalog, provider, hub)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteActions, handler.ListActions)
		apiRoutes.GET(constants.RouteVersion, api.GetVersion)

		apiRoutes.POST(constants.RouteContests, handler.CreateContest)
		apiRoutes.GET(constants.RouteContests, handler.ListContests)
		apiRoutes.GET(constants.RouteContestByID, handler.GetContest)
		apiRoutes.POST(constants.RouteContestStart, handler.StartRound)
		apiRoutes.POST(constants.RouteContestBid, handler.SubmitBid)
		apiRoutes.POST(constants.RouteContestAction, handler.SubmitAction)
		apiRoutes.POST(constants.RouteContestConfirm, handler.ConfirmRound)
		apiRoutes.GET(constants.RouteContestReport, handler.GetReport)
		apiRoutes.GET(constants.RouteContestWS, handler.WatchContest)
	}

	router.GET(constants.RouteMetrics, gin.WrapH(metricsHandler()))
	router.GET(constants.RouteHealthz, func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": version.Version})
	})

	addr := cfg.ServerAddress
	if env.Address != "" {
		addr = env.Address
	}
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr, "version": version.Version})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
