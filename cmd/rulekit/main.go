package main

import (
	"github.com/rulekit/rulekit/cmd/rulekit/internal"
)

func main() {
	internal.Execute()
}
