package main

import (
	_ "time/tzdata"

	"github.com/cmlabs-hris/ops-backend-go/internal/cli"
)

func main() {
	cli.Execute()
}
