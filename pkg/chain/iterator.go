package chain

import "github.com/tcfw/powledger/pkg/block"

// Iterator walks a chain snapshot from genesis to tip.
//
//	for it := c.Iter(); it.Next(); {
//		b := it.Block()
//	}
type Iterator struct {
	blocks []*block.Block
	i      int
}

func (it *Iterator) Next() bool {
	if it.i+1 >= len(it.blocks) {
		it.i = len(it.blocks)
		return false
	}

	it.i++
	return true
}

// Block returns the current block; nil before the first Next or after
// the last.
func (it *Iterator) Block() *block.Block {
	if it.i < 0 || it.i >= len(it.blocks) {
		return nil
	}

	return it.blocks[it.i]
}

// Index is the height of the current block.
func (it *Iterator) Index() int {
	return it.i
}
