// SPDX-License-Identifier: EPL-2.0

package audio

// chain is a Source built from an upstream Source and a Transformer.
type chain struct {
	src Source
	t   Transformer
}

// Chain composes src with t into a new Source. Each Read pulls src once,
// feeds the result to t and returns what t produces. A pull that yields
// nothing without ending the stream is passed through untouched so the
// caller retries.
func Chain(src Source, t Transformer) Source {
	return &chain{src: src, t: t}
}

func (c *chain) Read() (*Chunk, Signal, error) {
	chunk, sig, err := c.src.Read()
	if err != nil {
		return nil, Signal{}, err
	}

	if sig.Pending() {
		return nil, sig, nil
	}

	if err := c.t.Write(chunk, sig); err != nil {
		return nil, Signal{}, err
	}

	return c.t.Read()
}

// Pipe chains src through every transformer in order, so that
// Pipe(src, a, b) == Chain(Chain(src, a), b).
func Pipe(src Source, ts ...Transformer) Source {
	for _, t := range ts {
		src = Chain(src, t)
	}
	return src
}

// joined runs two transformers back to back.
type joined struct {
	a    Transformer
	tail chain
}

// Join composes two transformers into one. Chain(src, Join(a, b)) issues
// exactly the calls Chain(Chain(src, a), b) does, so the two groupings are
// interchangeable.
func Join(a, b Transformer) Transformer {
	return &joined{a: a, tail: chain{src: a, t: b}}
}

func (j *joined) Write(c *Chunk, s Signal) error {
	return j.a.Write(c, s)
}

func (j *joined) Read() (*Chunk, Signal, error) {
	return j.tail.Read()
}
