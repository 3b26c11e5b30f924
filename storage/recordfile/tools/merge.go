package main

import (
	"context"

	"github.com/navijation/dtsearch/storage/record"
	"github.com/navijation/dtsearch/storage/recordfile"
	"github.com/navijation/dtsearch/util"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

func mergeRecordFiles(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return errors.New("usage: merge dest_file src_file [src_file ...]")
	}

	var srcFiles []*recordfile.RecordFile
	for _, path := range cmd.Args().Tail() {
		src, err := openRecordFile(cmd, path, util.None[record.Layout]())
		if err != nil {
			return err
		}
		defer src.Close()
		srcFiles = append(srcFiles, &src)
	}

	// a new destination takes the layout of the first source
	destPath := cmd.Args().First()
	file, err := openRecordFile(cmd, destPath, util.Some(srcFiles[0].Layout()))
	if err != nil {
		return err
	}
	defer file.Close()

	if err := file.MergeFiles(recordfile.MergeArgs{
		Srcs: srcFiles,
	}); err != nil {
		return err
	}

	return visualizeRecordFileHelper(cmd, &file)
}
