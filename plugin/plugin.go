// Package plugin implements the synchronous request/response transport
// parse_register (spec.md §4.11) uses to ask an external plugin binary
// for its command signatures. Grounded on the teacher's rpc/langserver
// transport, which speaks JSON-RPC over a raw byte channel via
// github.com/creachadair/jrpc2 and github.com/creachadair/jrpc2/channel.
package plugin

import (
	"context"
	"fmt"
	"io"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/kestrel-sh/kestrel/ast"
)

// Signature is the wire shape a plugin reports back for one command it
// provides, shaped closely enough to ast.Signature that ToDecl can
// build a *ast.Decl straight from it.
type Signature struct {
	Name   string  `json:"name"`
	Usage  string  `json:"usage"`
	Inputs []Param `json:"inputs,omitempty"`
	Flags  []Flag  `json:"flags,omitempty"`
}

// Param mirrors ast.Param's wire shape.
type Param struct {
	Name     string `json:"name"`
	Shape    string `json:"shape"`
	Optional bool   `json:"optional,omitempty"`
}

// Flag mirrors ast.Flag's wire shape.
type Flag struct {
	Name  string `json:"name"`
	Short string `json:"short,omitempty"`
	Shape string `json:"shape"`
}

// DecodeEncoding validates an encoding name (the value of register's
// `--encoding` flag) against ast.RecognizedEncodings, mirroring the
// original implementation's EncodingType::try_from_bytes.
func DecodeEncoding(raw []byte) (ast.PluginEncoding, error) {
	got := ast.PluginEncoding(raw)
	for _, enc := range ast.RecognizedEncodings {
		if enc == got {
			return enc, nil
		}
	}
	return "", fmt.Errorf("plugin: unrecognized encoding %q", raw)
}

// Client is a live connection to a single plugin process, speaking
// JSON-RPC 2.0 over rw.
type Client struct {
	rpc *jrpc2.Client
}

// Dial wraps rw (typically a plugin subprocess's stdin/stdout, already
// joined into one io.ReadWriteCloser by the caller) in a newline-delimited
// JSON channel and opens a jrpc2 client over it.
func Dial(rw io.ReadWriteCloser) *Client {
	ch := channel.Line(rw, rw)
	return &Client{rpc: jrpc2.NewClient(ch, nil)}
}

// Signatures calls the plugin's "signature" method and decodes the
// commands it reports, the collaborator parse_register (spec.md §4.11)
// needs to build one ast.Decl per command the plugin provides.
func (c *Client) Signatures(ctx context.Context) ([]Signature, error) {
	rsp, err := c.rpc.Call(ctx, "signature", nil)
	if err != nil {
		return nil, err
	}
	var sigs []Signature
	if err := rsp.UnmarshalResult(&sigs); err != nil {
		return nil, err
	}
	return sigs, nil
}

// Close shuts the underlying RPC client down.
func (c *Client) Close() error {
	c.rpc.Close()
	return nil
}

// ToDecl builds a DeclPlugin *ast.Decl (no block) for one plugin-reported
// signature, ready for the working set to register.
func ToDecl(sig Signature, path string, encoding ast.PluginEncoding, shell string) *ast.Decl {
	astSig := ast.NewSignature(sig.Name, ast.Unknown)
	for _, p := range sig.Inputs {
		astSig.Input = append(astSig.Input, ast.Param{
			Name: p.Name, Shape: ast.CustomType(p.Shape), Optional: p.Optional,
		})
	}
	for _, f := range sig.Flags {
		var short rune
		if len(f.Short) > 0 {
			short = rune(f.Short[0])
		}
		astSig.Flags = append(astSig.Flags, ast.Flag{
			Name: f.Name, Short: short, Shape: ast.CustomType(f.Shape),
		})
	}
	return &ast.Decl{
		Kind: ast.DeclPlugin, Name: sig.Name, Signature: astSig, BlockId: ast.NoBlockId,
		PluginPath: path, PluginEncoding: encoding, PluginShell: shell,
	}
}
