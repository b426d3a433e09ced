package cli

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"battlecats-savior/ds"
)

const hexDumpWidth = 16

// HexDump renders bs as offset-prefixed rows of hexDumpWidth bytes each.
func HexDump(bs []byte) string {
	offsets := ds.MakeRange(0, len(bs), hexDumpWidth)
	chunks := ds.MakeChunks(bs, hexDumpWidth)

	var sb strings.Builder
	for i, chunk := range chunks {
		cells := lo.Map(chunk, func(b byte, _ int) string {
			return fmt.Sprintf("%02x", b)
		})
		cells = append(cells, ds.Repeat(hexDumpWidth-len(chunk), "  ")...)
		fmt.Fprintf(&sb, "%08x  %s  %s\n", offsets[i], strings.Join(cells, " "), printable(chunk))
	}
	return sb.String()
}

func printable(chunk []byte) string {
	return string(lo.Map(chunk, func(b byte, _ int) byte {
		if b < 0x20 || b > 0x7e {
			return '.'
		}
		return b
	}))
}
