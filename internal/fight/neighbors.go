package fight

// gatherNeighbors writes the owners of the in-bounds Moore neighbours of
// (x, y) into out and returns how many there are: 3 at corners, 5 along
// edges and 8 inside. The cell itself is never a candidate and the grid does
// not wrap.
func gatherNeighbors(cells []uint32, w, h, x, y int, out *[8]uint32) int {
	idx := y*w + x
	if x > 0 && y > 0 && x < w-1 && y < h-1 {
		up := idx - w
		down := idx + w
		out[0] = cells[up-1]
		out[1] = cells[up]
		out[2] = cells[up+1]
		out[3] = cells[idx-1]
		out[4] = cells[idx+1]
		out[5] = cells[down-1]
		out[6] = cells[down]
		out[7] = cells[down+1]
		return 8
	}

	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= h {
			continue
		}
		row := ny * w
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= w {
				continue
			}
			out[n] = cells[row+nx]
			n++
		}
	}
	return n
}

// neighborCount returns how many Moore neighbours (x, y) has on a w*h grid.
func neighborCount(w, h, x, y int) int {
	cols := 3
	if x == 0 || x == w-1 {
		cols = 2
	}
	rows := 3
	if y == 0 || y == h-1 {
		rows = 2
	}
	return cols*rows - 1
}
