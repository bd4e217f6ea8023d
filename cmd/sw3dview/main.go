// Command sw3dview is a terminal viewer and snapshot tool built on the
// sw3d rasterizer: load a glTF mesh, orbit it with a camera, and either
// render it live to the terminal or dump frames to PNG.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "sw3dview",
		Short: "View and snapshot glTF meshes through the sw3d software rasterizer",
	}

	root.AddCommand(newViewCmd())
	root.AddCommand(newSnapshotCmd())

	if err := fang.Execute(context.Background(), root); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
