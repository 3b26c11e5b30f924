package main

import (
	"strconv"
	"strings"

	"github.com/navijation/dtsearch/compare"
	"github.com/navijation/dtsearch/storage/record"
	"github.com/navijation/dtsearch/storage/recordfile"
	"github.com/navijation/dtsearch/util"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

const keySize = record.Word64Size

// openRecordFile opens path, creating it with layout when it does not exist yet.
func openRecordFile(
	cmd *cli.Command, path string, layout util.Optional[record.Layout],
) (out recordfile.RecordFile, _ error) {
	exists, err := util.FileExists(path)
	if err != nil {
		return out, err
	}

	comparator, err := compare.ByName(cmd.String("comparator"), keySize)
	if err != nil {
		return out, err
	}

	out, err = recordfile.Open(recordfile.OpenArgs{
		Path:       path,
		Create:     !exists,
		Version:    1,
		Layout:     layout,
		Comparator: util.Some(comparator),
	})
	if err != nil {
		return out, errors.Wrapf(err, "failed to open %q", path)
	}
	return out, nil
}

func parseKey(cmd *cli.Command, raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(cmd.String("comparator"), "int64") {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad key %q", raw)
		}
		return record.Int64Key(v), nil
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "bad key %q", raw)
	}
	return record.Uint64Key(v), nil
}

func formatKey(cmd *cli.Command, key []byte) string {
	if strings.HasPrefix(cmd.String("comparator"), "int64") {
		return strconv.FormatInt(record.Int64FromKey(key), 10)
	}
	return strconv.FormatUint(record.Uint64FromKey(key), 10)
}
