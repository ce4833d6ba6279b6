package nbt

type encoder struct {
	w     *Writer
	opts  *options
	depth int
}

func (e *encoder) enter() error {
	e.depth++
	if e.opts.maxDepth > 0 && e.depth > e.opts.maxDepth {
		return ErrMaxDepth
	}
	return nil
}

func (e *encoder) leave() { e.depth-- }

func encodeList(e *encoder, v Value) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if len(v.List) == 0 {
		e.w.WriteU8(uint8(TagEnd))
		e.w.WriteI32(0)
		return nil
	}
	if err := checkCount(len(v.List)); err != nil {
		return err
	}
	elem := v.List[0].Tag
	if !elem.Valid() {
		return &TagError{Err: ErrInvalidTag, Tag: elem, Offset: -1}
	}
	for i := 1; i < len(v.List); i++ {
		if got := v.List[i].Tag; got != elem {
			return &ListError{Expected: elem, Got: got, Index: i}
		}
	}
	c := &payloadCodecs[elem]
	e.w.WriteU8(uint8(elem))
	e.w.WriteI32(int32(len(v.List)))
	for _, item := range v.List {
		if err := c.encode(e, item); err != nil {
			return err
		}
	}
	return nil
}

func encodeCompound(e *encoder, v Value) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	for _, entry := range v.Entries {
		t := entry.Value.Tag
		if !t.Valid() {
			return &TagError{Err: ErrInvalidTag, Tag: t, Offset: -1}
		}
		if err := checkString(entry.Name); err != nil {
			return err
		}
		e.w.WriteU8(uint8(t))
		e.w.WriteString(entry.Name)
		if err := payloadCodecs[t].encode(e, entry.Value); err != nil {
			return err
		}
	}
	e.w.WriteU8(uint8(TagEnd))
	return nil
}

func encodeDocument(e *encoder, framing RootFraming, doc Document) error {
	if doc.Root.Tag != TagCompound {
		return &TagError{Err: ErrRootNotCompound, Tag: doc.Root.Tag, Offset: -1}
	}
	e.w.WriteU8(uint8(TagCompound))
	if err := framing.WriteRootName(e.w, doc.Name); err != nil {
		return err
	}
	return encodeCompound(e, doc.Root)
}
