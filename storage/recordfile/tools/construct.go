package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/navijation/dtsearch/storage/record"
	"github.com/navijation/dtsearch/util"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

func constructRecordFile(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("usage: construct record_file")
	}

	path := cmd.Args().First()

	// an existing file keeps the layout recorded in its header
	layout := util.None[record.Layout]()
	if exists, err := util.FileExists(path); err != nil {
		return err
	} else if !exists {
		layout = util.Some(record.Layout{
			KeySize:       keySize,
			SatelliteSize: int(cmd.Uint("satellite-size")),
		})
	}

	file, err := openRecordFile(cmd, path, layout)
	if err != nil {
		return err
	}
	defer file.Close()

	builder := record.NewBuilder(file.Layout())
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rawKey, satellite, _ := strings.Cut(line, ":")
		key, err := parseKey(cmd, rawKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Entry must be in \"key: satellite\" format: %s\n", err)
			continue
		}
		if err := builder.Append(key, []byte(strings.TrimSpace(satellite))); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := file.AppendBuffer(builder.Buffer()); err != nil {
		return errors.Wrapf(err, "failed to append to %q", path)
	}

	fmt.Printf("Appended %d records to %q\n", builder.Len(), path)
	return nil
}
