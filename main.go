package main

import "github.com/reyada-homecare/payments/cmd"

func main() {
	cmd.Execute()
}
