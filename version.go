package main

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with buildflag if built in pipeline and not using go install
var BuildVersion = ""

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and the versions of all dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion()
		},
	}
}

func printVersion() error {
	hasPrintedVersion := false
	if BuildVersion != "" {
		hasPrintedVersion = true
		fmt.Println("version: " + BuildVersion)
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("failed to read build info")
	}
	if !hasPrintedVersion {
		fmt.Println("version: " + bi.Main.Version)
	}
	for _, dep := range bi.Deps {
		fmt.Printf("%s %s\n", dep.Path, dep.Version)
	}
	return nil
}
