package main

import (
	"os"

	"github.com/xhess/bodie/app"
	"github.com/xhess/bodie/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		report.Quit(err)
	}
}
