package connector

import (
	"sort"

	"github.com/codalotl/splitdiff/internal/viewmodel"
)

// BlockType is the change type of a Block.
type BlockType uint8

const (
	BlockAdded    BlockType = iota // rows exist only on the right
	BlockRemoved                   // rows exist only on the left
	BlockModified                  // removed rows paired with added rows
)

func (t BlockType) String() string {
	switch t {
	case BlockAdded:
		return "added"
	case BlockRemoved:
		return "removed"
	case BlockModified:
		return "modified"
	}
	return "unknown"
}

// Block is a maximal run of rows sharing one change type. StartIndex and EndIndex are inclusive row indices.
type Block struct {
	Type       BlockType
	StartIndex int
	EndIndex   int
}

// Len returns the number of rows in b.
func (b Block) Len() int {
	return b.EndIndex - b.StartIndex + 1
}

// BuildBlocks groups rows into change blocks.
//
// The first pass finds Removed and Modified blocks, starting at every row whose left side is Removed. The second pass finds Added blocks among rows the
// first pass did not claim. Blocks are returned in discovery order: all first-pass blocks, then all second-pass blocks. Use SortBlocks for row order.
func BuildBlocks(rows []viewmodel.Row) []Block {
	var blocks []Block
	claimed := make([]bool, len(rows))

	for i := 0; i < len(rows); {
		r := rows[i]
		if r.Left.Kind != viewmodel.KindRemoved {
			i++
			continue
		}

		typ := BlockRemoved
		if r.Right.Kind == viewmodel.KindAdded {
			typ = BlockModified
		}
		end := i
		for end+1 < len(rows) && continuesBlock(typ, rows[end+1]) {
			end++
		}
		for idx := i; idx <= end; idx++ {
			if rows[idx].Right.Kind != viewmodel.KindAdded || rows[idx].Left.Kind == viewmodel.KindRemoved {
				claimed[idx] = true
			}
		}

		blocks = append(blocks, Block{Type: typ, StartIndex: i, EndIndex: end})
		i = end + 1
	}

	isAdded := func(idx int) bool {
		return !claimed[idx] && rows[idx].Left.Kind == viewmodel.KindBlank && rows[idx].Right.Kind == viewmodel.KindAdded
	}
	for i := 0; i < len(rows); {
		if !isAdded(i) {
			i++
			continue
		}
		end := i
		for end+1 < len(rows) && isAdded(end+1) {
			end++
		}
		blocks = append(blocks, Block{Type: BlockAdded, StartIndex: i, EndIndex: end})
		i = end + 1
	}

	return blocks
}

// continuesBlock reports whether r extends a first-pass block of type typ.
func continuesBlock(typ BlockType, r viewmodel.Row) bool {
	if r.Left.Kind != viewmodel.KindRemoved {
		return false
	}
	switch typ {
	case BlockModified:
		return r.Right.Kind == viewmodel.KindAdded
	case BlockRemoved:
		return r.Right.Kind == viewmodel.KindBlank
	}
	return false
}

// SortBlocks sorts blocks in place by StartIndex.
func SortBlocks(blocks []Block) {
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].StartIndex < blocks[j].StartIndex })
}
