package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/gantry/pkg/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the builtin scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range scenario.BuiltinNames() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}
