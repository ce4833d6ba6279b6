package main

import (
	"log"

	"github.com/alecthomas/kong"
)

type Globals struct {
	Network       bool `help:"Read and write network (anonymous root) NBT instead of classic named-root NBT."`
	MaxDepth      int  `help:"Maximum compound/list nesting depth." default:"512"`
	AllowTrailing bool `help:"Ignore bytes after the root compound."`
}

type cli struct {
	Globals

	Dump      dumpCmd      `cmd:"" help:"Print a document as an indented tag tree."`
	JSON      jsonCmd      `cmd:"" name:"json" help:"Convert a document to typed JSON."`
	FromJSON  fromJSONCmd  `cmd:"" name:"fromjson" help:"Convert typed JSON back to NBT."`
	CBOR      cborCmd      `cmd:"" name:"cbor" help:"Convert a document to typed CBOR."`
	RoundTrip roundTripCmd `cmd:"" name:"roundtrip" help:"Decode and re-encode a document and compare the bytes."`
	Region    regionCmd    `cmd:"" help:"Inspect Anvil region files."`
}

func main() {
	log.SetFlags(0)

	var args cli
	ctx := kong.Parse(&args,
		kong.Name("nbt"),
		kong.Description("Inspect and convert Minecraft NBT documents."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&args.Globals); err != nil {
		log.Fatal(err)
	}
}
