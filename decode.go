package nbt

import (
	"slices"

	"github.com/delaneyj/toolbelt"
)

type decoder struct {
	r     Reader
	opts  *options
	depth int
}

var decoderPool = toolbelt.New(func() *decoder { return &decoder{} })

func getDecoder(data []byte, opts *options) *decoder {
	d := decoderPool.Get()
	d.r.reset(data)
	d.opts = opts
	d.depth = 0
	return d
}

func putDecoder(d *decoder) {
	d.r.reset(nil)
	d.opts = nil
	decoderPool.Put(d)
}

// enter is called at every list and compound before any of its bytes are read.
func (d *decoder) enter() error {
	d.depth++
	if d.opts.maxDepth > 0 && d.depth > d.opts.maxDepth {
		return &OffsetError{Err: ErrMaxDepth, Offset: d.r.off}
	}
	return nil
}

func (d *decoder) leave() { d.depth-- }

// readTag reads a tag byte and rejects values outside 0..12.
func (d *decoder) readTag() (Tag, error) {
	off := d.r.off
	b, err := d.r.ReadU8()
	if err != nil {
		return TagEnd, err
	}
	t := Tag(b)
	if t != TagEnd && !t.Valid() {
		d.r.off = off
		return TagEnd, &TagError{Err: ErrInvalidTag, Tag: t, Offset: off}
	}
	return t, nil
}

// readCount reads an int32 element count for a list or array.
func (d *decoder) readCount() (int, error) {
	off := d.r.off
	n, err := d.r.ReadI32()
	if err != nil {
		return 0, err
	}
	if n < 0 || (d.opts.maxElements > 0 && int(n) > d.opts.maxElements) {
		d.r.off = off
		return 0, &OffsetError{Err: ErrInvalidLength, Offset: off, Span: 4}
	}
	return int(n), nil
}

func decodeList(d *decoder) (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer d.leave()

	// The element tag of an empty list is arbitrary and only checked once
	// there are elements to decode.
	tagOff := d.r.off
	b, err := d.r.ReadU8()
	if err != nil {
		return Value{}, err
	}
	n, err := d.readCount()
	if err != nil {
		return Value{}, err
	}
	if n == 0 {
		return List(), nil
	}
	elem := Tag(b)
	if !elem.Valid() {
		return Value{}, &TagError{Err: ErrInvalidTag, Tag: elem, Offset: tagOff}
	}
	c := &payloadCodecs[elem]
	if n > d.r.Remaining()/c.minSize {
		return Value{}, eofAt(d.r.off, n*c.minSize)
	}
	values := make([]Value, n)
	for i := range values {
		v, err := c.decode(d)
		if err != nil {
			return Value{}, err
		}
		values[i] = v
	}
	return List(values...), nil
}

func decodeCompound(d *decoder) (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer d.leave()

	entries := getEntrySlice()
	defer func() { putEntrySlice(entries) }()
	for {
		t, err := d.readTag()
		if err != nil {
			return Value{}, err
		}
		if t == TagEnd {
			if len(entries) == 0 {
				return Compound(), nil
			}
			return Compound(slices.Clone(entries)...), nil
		}
		name, err := d.r.ReadPrefixedString()
		if err != nil {
			return Value{}, err
		}
		v, err := payloadCodecs[t].decode(d)
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, Entry{Name: name, Value: v})
	}
}

// decodeDocument reads the root tag, the dialect's root framing, and the root
// compound. It returns the number of bytes consumed.
func decodeDocument(d *decoder, framing RootFraming) (Document, int, error) {
	b, err := d.r.ReadU8()
	if err != nil {
		return Document{}, 0, err
	}
	if Tag(b) != TagCompound {
		return Document{}, 0, &TagError{Err: ErrRootNotCompound, Tag: Tag(b), Offset: 0}
	}
	name, err := framing.ReadRootName(&d.r)
	if err != nil {
		return Document{}, 0, err
	}
	root, err := decodeCompound(d)
	if err != nil {
		return Document{}, 0, err
	}
	return Document{Name: name, Root: root}, d.r.off, nil
}
