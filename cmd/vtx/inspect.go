package main

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/vtx/vtxfile"
)

var errInspectFailed = errors.New("one or more files are not valid vtx containers")

func newInspectCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.vtx>...",
		Short: "Print header and payload details of VTX files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				ver, payload, err := vtxfile.ReadFile(path)
				if err != nil {
					root.log.Error("inspect failed", zap.String("path", path), zap.Error(err))
					cmd.PrintErrln(err)
					failed = true
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tversion=%d\tpayload=%s\txxh64=%016x\n",
					path, ver, humanize.IBytes(uint64(len(payload))), xxhash.Sum64(payload))
			}
			if failed {
				return errInspectFailed
			}
			return nil
		},
	}
}
