package compose

import (
	"github.com/framegrace/cellframe/cell"
	"github.com/framegrace/cellframe/wire"
)

// DrawPackedBuffer pastes a row-major run of wire cell records into dst at
// (posX,posY). The run is laid out in rows of termW cells and clipped
// against the supplied termW×termH terminal dimensions as well as dst's
// bounds. A run that is not a whole number of records is rejected.
func DrawPackedBuffer(dst *cell.Buffer, data []byte, posX, posY, termW, termH int) error {
	n, err := wire.RecordCount(data)
	if err != nil {
		return err
	}
	if dst == nil || termW <= 0 || termH <= 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		col := i % termW
		row := i / termW
		if row >= termH {
			break
		}
		c := wire.RecordAt(data, i)
		dst.SetCell(posX+col, posY+row, c.Rune, c.Fg, c.Bg, c.Attrs)
	}
	return nil
}
