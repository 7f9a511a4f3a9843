// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket provides a logical key space over a kv store by key prefixing.
type Bucket string

type bucketGetPutter struct {
	b   Bucket
	src GetPutter
}

// NewGetPutter creates a bucket get-putter from the source get-putter.
func (b Bucket) NewGetPutter(src GetPutter) GetPutter {
	return &bucketGetPutter{b, src}
}

func (b Bucket) makeKey(key []byte) []byte {
	return append([]byte(b), key...)
}

// NewRange creates the range covering the whole bucket.
func (b Bucket) NewRange() Range {
	return Range{
		From: []byte(b),
		To:   prefixSuccessor([]byte(b)),
	}
}

func (g *bucketGetPutter) Get(key []byte) ([]byte, error) {
	return g.src.Get(g.b.makeKey(key))
}

func (g *bucketGetPutter) Has(key []byte) (bool, error) {
	return g.src.Has(g.b.makeKey(key))
}

func (g *bucketGetPutter) IsNotFound(err error) bool {
	return g.src.IsNotFound(err)
}

func (g *bucketGetPutter) Put(key, value []byte) error {
	return g.src.Put(g.b.makeKey(key), value)
}

func (g *bucketGetPutter) Delete(key []byte) error {
	return g.src.Delete(g.b.makeKey(key))
}

func (g *bucketGetPutter) NewBatch() Batch {
	return &bucketBatch{g.b, g.src.NewBatch()}
}

func (g *bucketGetPutter) NewIterator(r Range) Iterator {
	from := g.b.makeKey(r.From)
	var to []byte
	if r.To != nil {
		to = g.b.makeKey(r.To)
	} else {
		to = prefixSuccessor([]byte(g.b))
	}
	return &bucketIterator{g.src.NewIterator(Range{From: from, To: to}), len(g.b)}
}

type bucketBatch struct {
	b     Bucket
	batch Batch
}

func (b *bucketBatch) Put(key, value []byte) error {
	return b.batch.Put(b.b.makeKey(key), value)
}

func (b *bucketBatch) Delete(key []byte) error {
	return b.batch.Delete(b.b.makeKey(key))
}

func (b *bucketBatch) NewBatch() Batch { return &bucketBatch{b.b, b.batch.NewBatch()} }
func (b *bucketBatch) Len() int        { return b.batch.Len() }
func (b *bucketBatch) Write() error    { return b.batch.Write() }

type bucketIterator struct {
	Iterator
	prefixLen int
}

func (i *bucketIterator) Key() []byte {
	return i.Iterator.Key()[i.prefixLen:]
}

// prefixSuccessor returns the smallest key greater than all keys carrying
// the prefix, or nil if the prefix is all 0xff.
func prefixSuccessor(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xff {
			succ := make([]byte, i+1)
			copy(succ, prefix)
			succ[i]++
			return succ
		}
	}
	return nil
}
