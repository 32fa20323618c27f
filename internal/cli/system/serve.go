package system

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/constants"
	"github.com/julianstephens/lectern/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:"${serve_addr}"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	if err := ctx.Lock("serve"); err != nil {
		return err
	}
	defer ctx.Unlock()

	addr := c.Addr
	if addr == "" {
		addr = constants.DefaultServeAddr
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving lectern API on http://%s (Ctrl+C to stop)\n", addr)
	return server.New(sess).Listen(sigCtx, addr)
}
