package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/ansel1/merry"
	"github.com/gemalto/der-go/der"
	"github.com/gemalto/der-go/internal/derutil"
	"github.com/gemalto/flume"
)

var log = flume.New("dergen")

// Definitions is the struct which the definitions file is decoded into.
type Definitions struct {
	// OIDs is the list of object identifiers to generate, in output order.
	OIDs    []OIDDef `json:"oids" toml:"oid"`
	Package string   `json:"-" toml:"-"`
}

// OIDDef describes a single object identifier.
type OIDDef struct {
	// Name is the descriptive ASN.1 name, e.g. "id-ce-basicConstraints".  It
	// is registered with der.RegisterObjectIdentifier.
	Name string `json:"name" toml:"name"`
	// GoName is the name of the generated variable.  Defaults to the
	// normalized Name.
	GoName string `json:"goName" toml:"go_name"`
	// Value is the dotted decimal form, e.g. "2.5.29.19".
	Value string `json:"value" toml:"value"`
	// Comment is added to the variable's doc comment.
	Comment string `json:"comment" toml:"comment"`
}

func main() {

	flag.Usage = func() {
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), "Usage of dergen:")
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), "")
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), "Generates go code which declares object identifier constants, and registers their names with der-go.")
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), "Definitions are read from a JSON or TOML file, chosen by the file extension.")
		_, _ = fmt.Fprintln(flag.CommandLine.Output(), "")
		flag.PrintDefaults()
	}

	var defs Definitions

	var inputFilename string
	var outputFilename string
	var usage bool
	var verbose bool

	flag.StringVar(&inputFilename, "i", "", "Input `filename` of definitions.  Required.")
	flag.StringVar(&outputFilename, "o", "", "Output `filename`.  Defaults to standard out.")
	flag.StringVar(&defs.Package, "p", "oids", "Go `package` name in generated code.")
	flag.BoolVar(&verbose, "v", false, "Verbose logging.")
	flag.BoolVar(&usage, "h", false, "Show this usage message.")
	flag.Parse()

	if usage {
		flag.Usage()
		os.Exit(0)
	}

	level := flume.InfoLevel
	if verbose {
		level = flume.DebugLevel
	}
	_ = flume.Configure(flume.Config{
		Development:  true,
		DefaultLevel: level,
	})

	if inputFilename == "" {
		fmt.Println("input file name cannot be empty")
		flag.Usage()
		os.Exit(1)
	}

	if err := readDefinitions(inputFilename, &defs); err != nil {
		fmt.Println("error reading input file: ", err.Error())
		os.Exit(1)
	}

	src, err := genCode(&defs)
	if err != nil {
		fmt.Println("error generating code: ", err.Error())
		os.Exit(1)
	}

	if outputFilename == "" {
		_, err = os.Stdout.WriteString(src)
		if err != nil {
			fmt.Println("error writing output", err.Error())
			os.Exit(1)
		}
		return
	}

	p, err := filepath.Abs(outputFilename)
	if err != nil {
		panic(err)
	}

	if err := os.WriteFile(p, []byte(src), 0o644); err != nil {
		fmt.Println("error writing to output file", err.Error())
		os.Exit(1)
	}
	log.Info("wrote generated code", "path", p, "oids", len(defs.OIDs))
}

// readDefinitions decodes the file into defs.  Files ending in ".toml" are
// TOML, all others JSON.
func readDefinitions(filename string, defs *Definitions) error {
	f, err := os.Open(filename)
	if err != nil {
		return merry.Wrap(err)
	}
	defer f.Close()

	return decodeDefinitions(bufio.NewReader(f), strings.EqualFold(filepath.Ext(filename), ".toml"), defs)
}

func decodeDefinitions(r io.Reader, isTOML bool, defs *Definitions) error {
	if !isTOML {
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		return merry.Wrap(dec.Decode(defs))
	}
	md, err := toml.NewDecoder(r).Decode(defs)
	if err != nil {
		return merry.Wrap(err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return merry.Errorf("unknown keys in definitions: %v", undecoded)
	}
	return nil
}

type oidVal struct {
	Name     string
	GoName   string
	Value    string
	Comments []string
	Literal  string
}

type inputs struct {
	Package    string
	Imports    []string
	DERPackage string
	OIDs       []oidVal
}

// byteLiteral renders b as a []byte composite literal.
func byteLiteral(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("0x%02x", c)
	}
	return "[]byte{" + strings.Join(parts, ", ") + "}"
}

// commentLines splits a comment into the lines of a // comment block.
func commentLines(c string) []string {
	c = strings.TrimSpace(strings.ReplaceAll(c, "\r\n", "\n"))
	if c == "" {
		return nil
	}
	lines := strings.Split(c, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return lines
}

func prepareInput(defs *Definitions) (*inputs, error) {
	in := inputs{
		Package: defs.Package,
	}

	// prepare imports
	if defs.Package != "der" {
		in.Imports = append(in.Imports, "github.com/gemalto/der-go/der")
		in.DERPackage = "der."
	}

	goNames := map[string]string{}
	for _, d := range defs.OIDs {
		if d.Name == "" {
			return nil, merry.Errorf("object identifier %s has no name", d.Value)
		}

		// parsing checks the arcs, and that the encoding fits an ObjectIdentifier
		oid, err := der.ParseObjectIdentifier(d.Value)
		if err != nil {
			return nil, merry.Prependf(err, "invalid value for %s", d.Name)
		}

		if strings.ContainsAny(d.Name, "\r\n") {
			return nil, merry.Errorf("name of %s spans several lines: %q", d.Value, d.Name)
		}

		v := oidVal{
			Name:     d.Name,
			GoName:   d.GoName,
			Value:    oid.String(),
			Comments: commentLines(d.Comment),
			Literal:  byteLiteral(oid.Bytes()),
		}
		if v.GoName == "" {
			v.GoName = derutil.NormalizeName(d.Name)
		}
		if !token.IsIdentifier(v.GoName) || !token.IsExported(v.GoName) {
			return nil, merry.Errorf("%s: %q is not an exported Go identifier", d.Name, v.GoName)
		}
		if other, ok := goNames[v.GoName]; ok {
			return nil, merry.Errorf("%s and %s both generate the variable %s", other, d.Name, v.GoName)
		}
		goNames[v.GoName] = d.Name

		log.Debug("prepared oid", "name", v.Name, "goName", v.GoName, "value", v.Value)
		in.OIDs = append(in.OIDs, v)
	}

	return &in, nil
}

func genCode(defs *Definitions) (string, error) {

	buf := bytes.NewBuffer(nil)

	in, err := prepareInput(defs)
	if err != nil {
		return "", err
	}

	tmpl := template.New("root")
	tmpl.Funcs(template.FuncMap{
		"derPackage": func() string { return in.DERPackage },
		"quote":      strconv.Quote,
	})
	template.Must(tmpl.Parse(global))

	err = tmpl.Execute(buf, in)

	if err != nil {
		return "", merry.Prepend(err, "executing template")
	}

	// format returns the gofmt-ed contents of the Generator's buffer.
	src, err := format.Source(buf.Bytes())
	if err != nil {
		// Should never happen, but can arise when developing this code.
		// The user can compile the output to see the error.
		log.Error("internal error: invalid Go generated, compile the package to analyze the error", "error", err)
		return buf.String(), nil
	}

	return string(src), nil
}

const global = `// Code generated by dergen; DO NOT EDIT.

package {{.Package}}

{{with .Imports}}
import (
{{range .}}	"{{.}}"
{{end}})
{{end}}

var (
{{range $i, $o := .OIDs}}{{if $i}}
{{end}}	// {{.GoName}} is {{.Value}} ({{.Name}}).
{{range .Comments}}	//{{with .}} {{.}}{{end}}
{{end}}	{{.GoName}} = {{derPackage}}ObjectIdentifierFromDERUnchecked({{.Literal}})
{{end}})

func init() {
{{range .OIDs}}	{{derPackage}}RegisterObjectIdentifier({{.GoName}}, {{quote .Name}})
{{end}}}
`
