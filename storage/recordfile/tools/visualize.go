package main

import (
	"context"
	"fmt"

	"github.com/navijation/dtsearch/storage/record"
	"github.com/navijation/dtsearch/storage/recordfile"
	"github.com/navijation/dtsearch/util"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

func visualizeRecordFile(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("usage: visualize record_file")
	}

	path := cmd.Args().First()
	if exists, err := util.FileExists(path); err != nil {
		return err
	} else if !exists {
		return errors.Errorf("%q does not exist", path)
	}

	file, err := openRecordFile(cmd, path, util.None[record.Layout]())
	if err != nil {
		return err
	}
	defer file.Close()

	return visualizeRecordFileHelper(cmd, &file)
}

func visualizeRecordFileHelper(cmd *cli.Command, file *recordfile.RecordFile) error {
	header := file.Header()
	fmt.Printf(
		"Header\n"+
			"  ID: %s\n"+
			"  Version: %d\n"+
			"  Layout: %s (extent %d)\n"+
			"  Records: %d\n"+
			"  Size: %d\n\n",
		util.UUIDFromBytes(header.ID).String(),
		header.Version,
		header.Layout,
		header.Layout.Extent(),
		header.NumRecords,
		header.FileSize(),
	)

	buffer, err := file.Load()
	if err != nil {
		return errors.Wrap(err, "failed to read records")
	}

	fmt.Printf("Records:\n")
	for i := range buffer.Len() {
		fmt.Printf("  - #%d: %s -> %q\n", i, formatKey(cmd, buffer.Key(i)), buffer.Satellite(i))
	}

	return nil
}
