package main

import (
	"context"
	"fmt"

	"github.com/navijation/dtsearch/storage/record"
	"github.com/navijation/dtsearch/util"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

func searchRecordFile(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return errors.New("usage: search record_file key [key ...]")
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

	keys := record.NewBuilder(record.KeyLayout(keySize))
	for _, raw := range cmd.Args().Tail() {
		key, err := parseKey(cmd, raw)
		if err != nil {
			return err
		}
		if err := keys.Append(key, nil); err != nil {
			return err
		}
	}
	targets := keys.Buffer()

	if cmd.Bool("batched") {
		indices, err := file.LowerBoundList(targets)
		if err != nil {
			return err
		}
		for i, index := range indices {
			fmt.Printf("%s: lower=%d\n", formatKey(cmd, targets.At(i)), index)
		}
		return nil
	}

	for i := range targets.Len() {
		key := targets.At(i)
		found, low, err := file.LowerBound(key)
		if err != nil {
			return err
		}
		_, high, err := file.UpperBound(key)
		if err != nil {
			return err
		}
		fmt.Printf("%s: found=%t lower=%d upper=%d\n", formatKey(cmd, key), found, low, high)
	}
	return nil
}
