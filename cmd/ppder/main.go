package main

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ansel1/merry"
	"github.com/gemalto/der-go/der"
	"github.com/gemalto/der-go/internal/derutil"
	_ "github.com/gemalto/der-go/oids"
	"github.com/gemalto/flume"
)

const (
	FormatHex    = "hex"
	FormatBase64 = "base64"
	FormatPEM    = "pem"
	FormatDER    = "der"
)

var log = flume.New("ppder")

func main() {

	flag.Usage = func() {
		s := `ppder - DER pretty printer

Usage:  ppder [options] [input]

Pretty prints DER.  Can read DER in hex, base64, PEM or raw binary
formats, and print it out in text, json, raw hex, or pretty printed hex.

The input argument should be a string.  If not present, input will
be read from the file named by -f, or from standard in.

When reading hex input, any non-hex characters, such as whitespace or
embedded formatting characters, will be ignored.  The 'prettyhex'
output format embeds such characters, but because they are ignored,
'prettyhex' output is still valid 'hex' input.

PEM input may hold several blocks, which are printed one after the other.

Examples:

    ppder 300602010501 01ff
    openssl x509 -in cert.pem | ppder

Output (in 'text' format):

    SEQUENCE (6):
      INTEGER (1): 5
      BOOLEAN (1): true

prettyhex format:

    30 | 06
      02 | 01 | 05
      01 | 01 | ff

json format:

    {
      "tag": "SEQUENCE",
      "value": [
        {
          "tag": "INTEGER",
          "value": 5
        },
        {
          "tag": "BOOLEAN",
          "value": true
        }
      ]
    }
`
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), s)
		flag.PrintDefaults()
	}

	var inFormat string
	var outFormat string
	var inFile string
	var verbose bool
	flag.StringVar(&inFormat, "i", "", "input format: hex|base64|pem|der, defaults to auto detect")
	flag.StringVar(&outFormat, "o", "", "output format: text|hex|prettyhex|json, defaults to text")
	flag.StringVar(&inFile, "f", "", "input file name, defaults to stdin")
	flag.BoolVar(&verbose, "v", false, "verbose logging")

	flag.Parse()

	level := flume.InfoLevel
	if verbose {
		level = flume.DebugLevel
	}
	_ = flume.Configure(flume.Config{
		Development:  true,
		DefaultLevel: level,
	})

	in, err := readInput(inFile, flag.Args(), os.Stdin)
	if err != nil {
		fail("error reading input", err)
	}

	if len(in) == 0 {
		fail("no input", nil)
	}

	if inFormat == "" {
		inFormat = detectFormat(in)
		log.Debug("detected input format", "format", inFormat)
	}

	outFormat = strings.ToLower(outFormat)
	if outFormat == "" {
		outFormat = "text"
	}

	blocks, err := decodeInput(strings.ToLower(inFormat), in)
	if err != nil {
		fail("error decoding input", err)
	}

	for i, raw := range blocks {
		if i > 0 {
			fmt.Println("")
		}
		if err := printDER(os.Stdout, outFormat, raw); err != nil {
			fail("error printing", err)
		}
	}
	fmt.Println("")
}

// readInput returns the content of inFile if set, else the joined args,
// else all of stdin, byte for byte.
func readInput(inFile string, args []string, stdin io.Reader) ([]byte, error) {
	if inFile != "" {
		b, err := os.ReadFile(inFile)
		return b, merry.Wrap(err)
	}
	if inArg := strings.Join(args, ""); inArg != "" {
		return []byte(inArg), nil
	}
	b, err := io.ReadAll(stdin)
	return b, merry.Wrap(err)
}

// detectFormat guesses the encoding of the input.
func detectFormat(b []byte) string {
	trimmed := bytes.TrimSpace(b)
	switch {
	case bytes.HasPrefix(trimmed, []byte("-----BEGIN")):
		return FormatPEM
	case isText(trimmed, isHexChar):
		return FormatHex
	case isText(trimmed, isBase64Char):
		return FormatBase64
	default:
		return FormatDER
	}
}

func isText(b []byte, valid func(c byte) bool) bool {
	for _, c := range b {
		if !valid(c) && c != ' ' && c != '\t' && c != '\r' && c != '\n' && c != '|' {
			return false
		}
	}
	return true
}

func isHexChar(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isBase64Char(c byte) bool {
	return isHexChar(c) || 'g' <= c && c <= 'z' || 'G' <= c && c <= 'Z' || c == '+' || c == '/' || c == '='
}

// decodeInput converts the input to one or more DER buffers.
func decodeInput(format string, in []byte) ([][]byte, error) {
	switch format {
	case FormatHex:
		b, err := derutil.DecodeHex(string(in))
		if err != nil {
			return nil, err
		}
		return [][]byte{b}, nil
	case FormatBase64:
		s := strings.Join(strings.Fields(string(in)), "")
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, merry.Prepend(err, "invalid base64")
		}
		return [][]byte{b}, nil
	case FormatPEM:
		var blocks [][]byte
		for rest := in; ; {
			var block *pem.Block
			block, rest = pem.Decode(rest)
			if block == nil {
				break
			}
			log.Debug("decoded PEM block", "type", block.Type, "len", len(block.Bytes))
			blocks = append(blocks, block.Bytes)
		}
		if len(blocks) == 0 {
			return nil, merry.New("no PEM blocks found")
		}
		return blocks, nil
	case FormatDER:
		return [][]byte{in}, nil
	default:
		return nil, merry.Errorf("invalid input format: %s", format)
	}
}

func printDER(w io.Writer, outFormat string, raw []byte) error {
	switch outFormat {
	case "text":
		return der.Print(w, "", "  ", raw)
	case "json":
		var elems []der.TLV
		p := der.NewParser(raw)
		for !p.Empty() {
			tlv, err := p.ReadTLV()
			if err != nil {
				return err
			}
			elems = append(elems, tlv)
		}
		var v interface{} = elems
		if len(elems) == 1 {
			v = elems[0]
		}
		s, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(s))
		return err
	case "hex":
		_, err := fmt.Fprint(w, hex.EncodeToString(raw))
		return err
	case "prettyhex":
		return der.PrintPrettyHex(w, "", "  ", raw)
	default:
		return merry.Errorf("invalid output format: %s", outFormat)
	}
}

func fail(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, msg+":", err)
	} else {
		_, _ = fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(1)
}
