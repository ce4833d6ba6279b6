package nbt

import (
	"fmt"
	"strings"
)

// RootFraming is the only point where dialects differ: how the name of the
// root compound is carried after the root tag.
type RootFraming interface {
	ReadRootName(r *Reader) (string, error)
	WriteRootName(w *Writer, name string) error
}

// NamedRoot is the classic framing: the root tag is followed by a
// length-prefixed name, as in Java Edition files.
type NamedRoot struct{}

func (NamedRoot) ReadRootName(r *Reader) (string, error) {
	return r.ReadPrefixedString()
}

func (NamedRoot) WriteRootName(w *Writer, name string) error {
	if err := checkString(name); err != nil {
		return err
	}
	w.WriteString(name)
	return nil
}

// AnonymousRoot is the network framing introduced with protocol 764: the root
// tag is followed directly by the root compound's entries.
type AnonymousRoot struct{}

func (AnonymousRoot) ReadRootName(*Reader) (string, error) { return "", nil }

func (AnonymousRoot) WriteRootName(*Writer, string) error { return nil }

// Codec decodes and encodes documents for one root framing.
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	framing RootFraming
	opts    options
}

// NewCodec returns a Codec using framing and opts.
func NewCodec(framing RootFraming, opts ...Option) *Codec {
	c := &Codec{framing: framing, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// With returns a copy of c with additional options applied.
func (c *Codec) With(opts ...Option) *Codec {
	out := &Codec{framing: c.framing, opts: c.opts}
	for _, opt := range opts {
		opt(&out.opts)
	}
	return out
}

// Framing returns the codec's root framing.
func (c *Codec) Framing() RootFraming { return c.framing }

// MaxDepth returns the configured nesting limit (<= 0 means unlimited).
func (c *Codec) MaxDepth() int { return c.opts.maxDepth }

// Decode decodes a complete document. Bytes after the root compound fail with
// ErrTrailingData unless the codec was built WithAllowTrailing.
func (c *Codec) Decode(data []byte) (Document, error) {
	doc, n, err := c.DecodePrefix(data)
	if err != nil {
		return Document{}, err
	}
	if n != len(data) && !c.opts.allowTrailing {
		return Document{}, &OffsetError{Err: ErrTrailingData, Offset: n, Span: len(data) - n}
	}
	return doc, nil
}

// DecodePrefix decodes the document at the start of data and returns the
// number of bytes it occupied.
func (c *Codec) DecodePrefix(data []byte) (Document, int, error) {
	d := getDecoder(data, &c.opts)
	defer putDecoder(d)
	return decodeDocument(d, c.framing)
}

// Encode encodes doc and returns a newly allocated buffer.
func (c *Codec) Encode(doc Document) ([]byte, error) {
	return c.AppendEncode(nil, doc)
}

// AppendEncode appends the encoding of doc to dst. On error dst is returned
// unchanged.
func (c *Codec) AppendEncode(dst []byte, doc Document) ([]byte, error) {
	w := NewWriter()
	defer w.Release()
	e := encoder{w: w, opts: &c.opts}
	if err := encodeDocument(&e, c.framing, doc); err != nil {
		return dst, err
	}
	return append(dst, w.buf.Bytes()...), nil
}

var (
	// Classic uses NamedRoot framing.
	Classic = NewCodec(NamedRoot{})
	// Network uses AnonymousRoot framing.
	Network = NewCodec(AnonymousRoot{})
)

// Decode decodes a classic named-root document.
func Decode(data []byte) (Document, error) { return Classic.Decode(data) }

// Encode encodes doc with classic named-root framing.
func Encode(doc Document) ([]byte, error) { return Classic.Encode(doc) }

// DecodeNetwork decodes an anonymous-root document.
func DecodeNetwork(data []byte) (Document, error) { return Network.Decode(data) }

// EncodeNetwork encodes doc with anonymous-root framing; doc.Name is ignored.
func EncodeNetwork(doc Document) ([]byte, error) { return Network.Encode(doc) }

// DialectByName returns the package codec for a dialect name.
func DialectByName(name string) (*Codec, error) {
	switch strings.ToLower(name) {
	case "", "classic", "java", "named":
		return Classic, nil
	case "network", "anonymous", "nameless":
		return Network, nil
	default:
		return nil, fmt.Errorf("nbt: unknown dialect %q", name)
	}
}
