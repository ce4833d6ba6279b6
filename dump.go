package nbt

import (
	"io"
	"strconv"
	"strings"
)

// Style decorates the pieces of a dump. Nil functions leave text unchanged.
type Style struct {
	Tag   func(string) string
	Name  func(string) string
	Value func(string) string
}

func apply(fn func(string) string, s string) string {
	if fn == nil {
		return s
	}
	return fn(s)
}

// Dump writes the classic indented tree listing of doc to w.
func Dump(w io.Writer, doc Document) error {
	return DumpStyled(w, doc, Style{})
}

// DumpStyled is Dump with decorated tags, names and values.
func DumpStyled(w io.Writer, doc Document, style Style) error {
	if doc.Root.Tag != TagCompound {
		return &TagError{Err: ErrRootNotCompound, Tag: doc.Root.Tag, Offset: -1}
	}
	p := dumper{style: style}
	p.node(&doc.Name, doc.Root, 0)
	_, err := io.WriteString(w, p.sb.String())
	return err
}

type dumper struct {
	sb    strings.Builder
	style Style
}

func (p *dumper) line(depth int, s string) {
	p.sb.WriteString(strings.Repeat("  ", depth))
	p.sb.WriteString(s)
	p.sb.WriteByte('\n')
}

func (p *dumper) head(name *string, t Tag) string {
	label := "None"
	if name != nil {
		label = p.style.nameOf(*name)
	}
	return apply(p.style.Tag, t.String()) + "(" + label + "): "
}

func (s Style) nameOf(name string) string {
	return apply(s.Name, "'"+name+"'")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	if strings.HasSuffix(word, "y") {
		word = strings.TrimSuffix(word, "y") + "ie"
	}
	return strconv.Itoa(n) + " " + word + "s"
}

func (p *dumper) node(name *string, v Value, depth int) {
	head := p.head(name, v.Tag)
	switch v.Tag {
	case TagList:
		desc := plural(len(v.List), "entry")
		if len(v.List) > 0 {
			desc += " of " + apply(p.style.Tag, v.ElemTag().String())
		}
		p.line(depth, head+desc)
		p.line(depth, "{")
		for _, item := range v.List {
			p.node(nil, item, depth+1)
		}
		p.line(depth, "}")
	case TagCompound:
		p.line(depth, head+plural(len(v.Entries), "entry"))
		p.line(depth, "{")
		for i := range v.Entries {
			p.node(&v.Entries[i].Name, v.Entries[i].Value, depth+1)
		}
		p.line(depth, "}")
	default:
		p.line(depth, head+apply(p.style.Value, scalarText(v)))
	}
}

func scalarText(v Value) string {
	switch v.Tag {
	case TagString:
		return strconv.Quote(v.Str)
	case TagByteArray:
		parts := make([]string, len(v.Bytes))
		for i, b := range v.Bytes {
			parts[i] = strconv.Itoa(int(b))
		}
		return plural(len(v.Bytes), "byte") + " [" + strings.Join(parts, ", ") + "]"
	case TagIntArray:
		parts := make([]string, len(v.Ints))
		for i, n := range v.Ints {
			parts[i] = strconv.FormatInt(int64(n), 10)
		}
		return plural(len(v.Ints), "int") + " [" + strings.Join(parts, ", ") + "]"
	case TagLongArray:
		parts := make([]string, len(v.Longs))
		for i, n := range v.Longs {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return plural(len(v.Longs), "long") + " [" + strings.Join(parts, ", ") + "]"
	default:
		s, _ := v.AsString()
		return s
	}
}
