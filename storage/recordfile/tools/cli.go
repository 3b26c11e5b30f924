package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "recordfile_tools",
		Usage: "build, inspect and search sorted record files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "comparator",
				Value: "uint64",
				Usage: "key ordering: uint64, int64, bytes, bytes:N, optionally suffixed with -desc",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "construct",
				Usage:     "append \"key: satellite\" lines from stdin",
				ArgsUsage: "record_file",
				Action:    constructRecordFile,
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:  "satellite-size",
						Value: 8,
						Usage: "bytes of satellite payload per record, used when creating",
					},
				},
			},
			{
				Name:      "visualize",
				ArgsUsage: "record_file",
				Action:    visualizeRecordFile,
			},
			{
				Name:      "search",
				Usage:     "print the lower and upper bound of each key",
				ArgsUsage: "record_file key [key ...]",
				Action:    searchRecordFile,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "batched",
						Usage: "resolve all keys, which must be sorted, in one batched search",
					},
				},
			},
			{
				Name:      "merge",
				ArgsUsage: "dest_file src_file [src_file ...]",
				Action:    mergeRecordFiles,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
