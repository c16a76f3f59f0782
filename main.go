package main

import (
	"os"

	"github.com/jpillora/overseer"

	"github.com/adarchive/adlib-gateway/cmd"

	_ "github.com/adarchive/adlib-gateway/http/api/route"
)

// main starts the application, wrapping the serve command with overseer
// for zero-downtime restarts.
func main() {
	if len(os.Args) >= 2 && os.Args[1] == "serve" {
		overseer.Run(overseer.Config{
			Program: func(state overseer.State) {
				cmd.Execute()
			},
			Address:          ":3000",
			RestartSignal:    overseer.SIGUSR2,
			TerminateTimeout: 30,
		})
		return
	}
	cmd.Execute()
}
