package main

import (
	"github.com/RenierDuminy/CTFDA-scoring/internal/cli"
)

func main() {
	cli.Execute()
}
