package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/vtx/vtxfile"
)

func newPackCmd(root *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pack <component.wasm>",
		Short: "Wrap a WebAssembly component in a VTX container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			dst := out
			if dst == "" {
				dst = vtxfile.PackedName(src)
			}
			if err := vtxfile.Pack(src, dst); err != nil {
				return err
			}
			root.log.Info("packed", zap.String("src", src), zap.String("dst", dst))
			fmt.Fprintln(cmd.OutOrStdout(), dst)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: input with .vtx extension)")
	return cmd
}

func newUnpackCmd(root *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "unpack <file.vtx>",
		Short: "Extract the component from a VTX container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			dst := out
			if dst == "" {
				dst = vtxfile.UnpackedName(src)
			}
			if err := vtxfile.Unpack(src, dst); err != nil {
				return err
			}
			root.log.Info("unpacked", zap.String("src", src), zap.String("dst", dst))
			fmt.Fprintln(cmd.OutOrStdout(), dst)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: input with .wasm extension)")
	return cmd
}
