package main

import (
	"context"
	"log"

	"github.com/brendoncarroll/stdctx/logctx"
	"go.uber.org/zap"

	"github.com/openredfish/dellicius/dqcmd"
)

func main() {
	ctx := context.Background()
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	ctx = logctx.NewContext(ctx, l)
	cmd := dqcmd.NewCmd(ctx)
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
