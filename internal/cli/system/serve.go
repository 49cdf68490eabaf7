package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
	"github.com/aleksanderbl29/meal-planner/internal/logger"
	"github.com/aleksanderbl29/meal-planner/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address." default:"${listen_addr}" env:"MEALPLANNER_ADDR"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	gin.SetMode(gin.ReleaseMode)

	if ctx.Config.RequireAuth && ctx.JWT == nil {
		logger.Warn("Authentication required but no JWT secret configured, every meal request will be rejected")
	}

	srv := server.New(server.Options{
		Planner:     ctx.Planner,
		JWT:         ctx.JWT,
		RequireAuth: ctx.Config.RequireAuth,
		StoreName:   ctx.Store.Name(),
	})

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(ctx.Writer(), "Serving meal planner API on %s (store: %s)\n", c.Addr, ctx.Store.Name())
	return srv.Run(sigCtx, c.Addr)
}
