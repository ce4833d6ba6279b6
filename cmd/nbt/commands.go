package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/starfederation/nbt-go"
	"github.com/starfederation/nbt-go/nbtfile"
	"github.com/starfederation/nbt-go/region"
)

func (g *Globals) codec() *nbt.Codec {
	var framing nbt.RootFraming = nbt.NamedRoot{}
	if g.Network {
		framing = nbt.AnonymousRoot{}
	}
	opts := []nbt.Option{nbt.WithMaxDepth(g.MaxDepth)}
	if g.AllowTrailing {
		opts = append(opts, nbt.WithAllowTrailing())
	}
	return nbt.NewCodec(framing, opts...)
}

// readInput reads path, or stdin for "-", and strips any gzip/zlib framing.
func readInput(path string) ([]byte, nbtfile.Compression, error) {
	if path != "-" {
		return nbtfile.ReadFile(path)
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, nbtfile.None, err
	}
	return nbtfile.Unwrap(raw)
}

func (g *Globals) readDocument(path string) (nbt.Document, []byte, error) {
	payload, _, err := readInput(path)
	if err != nil {
		return nbt.Document{}, nil, err
	}
	doc, err := g.codec().Decode(payload)
	if err != nil {
		return nbt.Document{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, payload, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type dumpCmd struct {
	File  string `arg:"" help:"NBT file, or - for stdin." default:"-"`
	Color bool   `help:"Colorize tags, names and values."`
}

func (c *dumpCmd) Run(g *Globals) error {
	doc, _, err := g.readDocument(c.File)
	if err != nil {
		return err
	}
	if !c.Color {
		return nbt.Dump(os.Stdout, doc)
	}
	tagStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	return nbt.DumpStyled(os.Stdout, doc, nbt.Style{
		Tag:   func(s string) string { return tagStyle.Render(s) },
		Name:  func(s string) string { return nameStyle.Render(s) },
		Value: func(s string) string { return valueStyle.Render(s) },
	})
}

type jsonCmd struct {
	File string `arg:"" help:"NBT file, or - for stdin." default:"-"`
	Out  string `short:"o" help:"Output file (default stdout)."`
}

func (c *jsonCmd) Run(g *Globals) error {
	doc, _, err := g.readDocument(c.File)
	if err != nil {
		return err
	}
	out, err := nbt.ToJSON(doc)
	if err != nil {
		return err
	}
	return writeOutput(c.Out, []byte(out+"\n"))
}

type fromJSONCmd struct {
	File        string `arg:"" help:"Typed JSON file, or - for stdin." default:"-"`
	Out         string `short:"o" help:"Output file (default stdout)."`
	Compression string `help:"Output compression." enum:"none,gzip,zlib" default:"none"`
}

func (c *fromJSONCmd) Run(g *Globals) error {
	var (
		data []byte
		err  error
	)
	if c.File == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		return err
	}
	doc, err := nbt.FromJSON(data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}
	payload, err := g.codec().Encode(doc)
	if err != nil {
		return err
	}
	compression, err := nbtfile.ParseCompression(c.Compression)
	if err != nil {
		return err
	}
	wrapped, err := nbtfile.Wrap(payload, compression)
	if err != nil {
		return err
	}
	return writeOutput(c.Out, wrapped)
}

type cborCmd struct {
	File string `arg:"" help:"NBT file, or - for stdin." default:"-"`
	Out  string `short:"o" help:"Output file (default stdout)."`
}

func (c *cborCmd) Run(g *Globals) error {
	doc, _, err := g.readDocument(c.File)
	if err != nil {
		return err
	}
	out, err := nbt.ToCBOR(doc)
	if err != nil {
		return err
	}
	return writeOutput(c.Out, out)
}

type roundTripCmd struct {
	Files []string `arg:"" help:"NBT files to check."`
}

func (c *roundTripCmd) Run(g *Globals) error {
	codec := g.codec()
	failed := 0
	for _, path := range c.Files {
		doc, payload, err := g.readDocument(path)
		if err != nil {
			return err
		}
		out, err := codec.Encode(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		switch {
		case bytes.Equal(out, payload):
			fmt.Printf("%s: identical (%d bytes)\n", path, len(out))
		default:
			again, err := codec.Decode(out)
			if err != nil {
				return fmt.Errorf("%s: re-decode: %w", path, err)
			}
			if !again.Equal(doc) {
				failed++
				fmt.Printf("%s: tree mismatch after re-encode\n", path)
				continue
			}
			fmt.Printf("%s: equivalent, bytes differ (%d -> %d)\n", path, len(payload), len(out))
		}
	}
	if failed > 0 {
		return fmt.Errorf("roundtrip: %d of %d file(s) failed", failed, len(c.Files))
	}
	return nil
}

type regionCmd struct {
	List    regionListCmd    `cmd:"" help:"List chunks in a region file."`
	Extract regionExtractCmd `cmd:"" help:"Extract one chunk's NBT payload."`
}

type regionListCmd struct {
	File string `arg:"" help:"Region (.mca) file."`
}

func (c *regionListCmd) Run(g *Globals) error {
	f, err := openRegion(c.File)
	if err != nil {
		return err
	}
	for _, info := range f.Chunks() {
		ts := "-"
		if !info.Timestamp.IsZero() {
			ts = info.Timestamp.Format(time.RFC3339)
		}
		_, compression, err := f.RawChunk(info.X, info.Z)
		status := compression.String()
		if err != nil {
			status = err.Error()
		}
		fmt.Printf("%2d %2d  sector %5d +%-3d  %s  %s\n", info.X, info.Z, info.Sector, info.Sectors, ts, status)
	}
	return nil
}

type regionExtractCmd struct {
	File string `arg:"" help:"Region (.mca) file."`
	X    int    `arg:"" help:"Chunk x within the region (0-31)."`
	Z    int    `arg:"" help:"Chunk z within the region (0-31)."`
	Out  string `short:"o" help:"Output file (default stdout)."`
	As   string `help:"Output format." enum:"nbt,json,dump" default:"nbt"`
}

func (c *regionExtractCmd) Run(g *Globals) error {
	f, err := openRegion(c.File)
	if err != nil {
		return err
	}
	if c.As == "nbt" {
		payload, _, err := f.Chunk(c.X, c.Z)
		if err != nil {
			return err
		}
		return writeOutput(c.Out, payload)
	}
	doc, err := f.Document(c.X, c.Z, nbt.WithMaxDepth(g.MaxDepth))
	if err != nil {
		return err
	}
	if c.As == "json" {
		out, err := nbt.ToJSON(doc)
		if err != nil {
			return err
		}
		return writeOutput(c.Out, []byte(out+"\n"))
	}
	var sb strings.Builder
	if err := nbt.Dump(&sb, doc); err != nil {
		return err
	}
	return writeOutput(c.Out, []byte(sb.String()))
}

func openRegion(path string) (*region.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := region.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
