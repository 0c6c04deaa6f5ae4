package cmd

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/vishalbelsare/graql/cmd/graql/internal/repl"
	glog "github.com/vishalbelsare/graql/internal/glog"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session for typing and re-printing query text",
	RunE: func(c *cobra.Command, args []string) error {
		sid := fmt.Sprintf("%08x", rand.Uint32())
		ctx := glog.WithSessionID(context.Background(), sid)
		repl.Run(ctx)
		return nil
	},
}
