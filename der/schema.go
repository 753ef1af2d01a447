package der

import (
	"bytes"
	"encoding"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ansel1/merry"
	"github.com/gemalto/flume"
)

var log = flume.New("der")

const structFieldTag = "der"

// choiceMarkerField names the marker field which turns a struct into a
// CHOICE.  Its type is irrelevant; struct{} is conventional.
const choiceMarkerField = "DERChoice"

var (
	unmarshalerType       = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	marshalerType         = reflect.TypeOf((*Marshaler)(nil)).Elem()
	simpleUnmarshalerType = reflect.TypeOf((*SimpleUnmarshaler)(nil)).Elem()
	simpleMarshalerType   = reflect.TypeOf((*SimpleMarshaler)(nil)).Elem()
	textUnmarshalerType   = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	timeType              = reflect.TypeOf(time.Time{})
	bigIntType            = reflect.TypeOf(big.Int{})
)

// fieldMode is how a field's element is tagged.
type fieldMode int

const (
	modeUntagged fieldMode = iota
	modeExplicit
	modeImplicit
)

func (m fieldMode) String() string {
	switch m {
	case modeExplicit:
		return "explicit"
	case modeImplicit:
		return "implicit"
	default:
		return "untagged"
	}
}

// valueOpts are the struct tag options which change how a Go type maps onto
// an ASN.1 type, and so are part of the codec cache key.
type valueOpts struct {
	stringTag Tag
	timeTag   Tag
	set       bool
}

// fieldOpts is the parsed form of a `der:"..."` struct tag.
type fieldOpts struct {
	valueOpts
	skip       bool
	hasTag     bool
	tagNumber  uint8
	explicit   bool
	optional   bool
	hasDefault bool
	defaultLit string
}

func parseFieldOpts(s string) (fo fieldOpts, err error) {
	if s == "-" {
		fo.skip = true
		return fo, nil
	}
	if s == "" {
		return fo, nil
	}
	for _, part := range strings.Split(s, ",") {
		name, arg := part, ""
		if i := strings.IndexByte(part, ':'); i >= 0 {
			name, arg = part[:i], part[i+1:]
		}
		switch name {
		case "tag":
			n, perr := strconv.ParseUint(arg, 10, 8)
			if perr != nil || n > MaxTagNumber {
				return fo, merry.Here(ErrSchema).Appendf("invalid tag number %q, must be 0..%d", arg, MaxTagNumber)
			}
			fo.hasTag = true
			fo.tagNumber = uint8(n)
		case "explicit":
			fo.explicit = true
		case "optional":
			fo.optional = true
		case "default":
			fo.hasDefault = true
			fo.defaultLit = arg
		case "printable":
			fo.stringTag = TagPrintableString
		case "ia5":
			fo.stringTag = TagIA5String
		case "utf8":
			fo.stringTag = TagUTF8String
		case "utc":
			fo.timeTag = TagUTCTime
		case "generalized":
			fo.timeTag = TagGeneralizedTime
		case "set":
			fo.set = true
		default:
			return fo, merry.Here(ErrSchema).Appendf("unknown option %q", part)
		}
	}
	switch {
	case fo.explicit && !fo.hasTag:
		return fo, merry.Here(ErrSchema).Append(`"explicit" requires "tag:N"`)
	case fo.optional && fo.hasDefault:
		return fo, merry.Here(ErrSchema).Append(`a field cannot be both "optional" and "default"`)
	}
	return fo, nil
}

func (fo fieldOpts) mode() fieldMode {
	switch {
	case !fo.hasTag:
		return modeUntagged
	case fo.explicit:
		return modeExplicit
	default:
		return modeImplicit
	}
}

// codec is the compiled form of a Go type.  decode is only called with
// elements whose tag passed canParse (or was replaced by an implicit tag),
// and with a settable v.
type codec interface {
	canParse(tag Tag) bool
	decode(tlv TLV, v reflect.Value) error
	encode(w *Writer, v reflect.Value) error
}

// simpleCodec is a codec with a single tag.  Only simple codecs can be
// implicitly tagged.
type simpleCodec interface {
	codec
	derTag() Tag
	encodeContent(buf *bytes.Buffer, v reflect.Value) error
}

// encodeSimple writes v with the codec's own tag.
func encodeSimple(c simpleCodec, w *Writer, v reflect.Value, tag Tag) error {
	var err error
	w.WriteTagged(tag, func(buf *bytes.Buffer) {
		err = c.encodeContent(buf, v)
	})
	return err
}

type fieldInfo struct {
	name    string
	label   string
	index   int
	opts    fieldOpts
	mode    fieldMode
	codec   codec
	def     reflect.Value
	defData []byte
}

// accepts reports whether the element with the given tag belongs to this
// field.
func (fi *fieldInfo) accepts(tag Tag) bool {
	switch fi.mode {
	case modeExplicit:
		return tag == ExplicitTag(fi.opts.tagNumber)
	case modeImplicit:
		return tag == ImplicitTag(fi.opts.tagNumber, fi.codec.(simpleCodec).derTag())
	default:
		return fi.codec.canParse(tag)
	}
}

// nilable reports whether the zero value of the field means absent.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Interface, reflect.Map:
		return true
	}
	return false
}

type codecKey struct {
	typ  reflect.Type
	opts valueOpts
}

type cacheEntry struct {
	codec codec
	err   error
}

var (
	codecCache sync.Map
	compileMu  sync.Mutex
)

// codecFor returns the compiled codec for typ.  Results, including schema
// errors, are cached.
func codecFor(typ reflect.Type, opts valueOpts) (codec, error) {
	key := codecKey{typ: typ, opts: opts}
	if e, ok := codecCache.Load(key); ok {
		ce := e.(cacheEntry)
		return ce.codec, ce.err
	}
	compileMu.Lock()
	defer compileMu.Unlock()
	if e, ok := codecCache.Load(key); ok {
		ce := e.(cacheEntry)
		return ce.codec, ce.err
	}
	c := compiler{inProgress: map[codecKey]codec{}}
	cd, err := c.compile(typ, opts)
	codecCache.Store(key, cacheEntry{codec: cd, err: err})
	return cd, err
}

type compiler struct {
	inProgress map[codecKey]codec
}

func (c *compiler) compile(typ reflect.Type, opts valueOpts) (codec, error) {
	key := codecKey{typ: typ, opts: opts}
	if cd, ok := c.inProgress[key]; ok {
		return cd, nil
	}

	// custom types take precedence over the native mapping
	ptr := reflect.PtrTo(typ)
	if typ.Kind() != reflect.Ptr && typ.Kind() != reflect.Interface &&
		(ptr.Implements(unmarshalerType) || ptr.Implements(marshalerType)) {
		mc := &marshalerCodec{typ: typ}
		if ptr.Implements(unmarshalerType) {
			mc.proto = reflect.New(typ).Interface().(Unmarshaler)
		}
		if ptr.Implements(simpleUnmarshalerType) && ptr.Implements(simpleMarshalerType) {
			return &simpleMarshalerCodec{marshalerCodec: mc, tag: reflect.New(typ).Interface().(SimpleUnmarshaler).DERTag()}, nil
		}
		return mc, nil
	}

	switch typ {
	case timeType:
		if opts.timeTag == 0 {
			return anyTimeCodec{}, nil
		}
		return timeCodec{tag: opts.timeTag}, nil
	case bigIntType:
		return bigIntCodec{}, nil
	}

	switch typ.Kind() {
	case reflect.Bool:
		return boolCodec{}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intCodec{}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintCodec{}, nil
	case reflect.String:
		tag := opts.stringTag
		if tag == 0 {
			tag = TagUTF8String
		}
		return stringCodec{tag: tag}, nil
	case reflect.Ptr:
		elem, err := c.compile(typ.Elem(), opts)
		if err != nil {
			return nil, err
		}
		if sc, ok := elem.(simpleCodec); ok {
			return simplePtrCodec{ptrCodec: ptrCodec{elem: elem}, sc: sc}, nil
		}
		return ptrCodec{elem: elem}, nil
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 && !opts.set {
			return bytesCodec{}, nil
		}
		tag := TagSequence
		if opts.set {
			tag = TagSet
		}
		sl := &sliceCodec{typ: typ, tag: tag}
		c.inProgress[key] = sl
		elemOpts := opts
		elemOpts.set = false
		elem, err := c.compile(typ.Elem(), elemOpts)
		if err != nil {
			return nil, err
		}
		sl.elem = elem
		return sl, nil
	case reflect.Struct:
		if _, ok := typ.FieldByName(choiceMarkerField); ok {
			return c.compileChoice(typ, key)
		}
		return c.compileStruct(typ, key)
	}
	return nil, merry.Here(ErrUnsupportedType).Appendf("no DER mapping for %s", typ)
}

func (c *compiler) compileField(typ reflect.Type, sf reflect.StructField, i int) (fi fieldInfo, err error) {
	fi.name = sf.Name
	fi.label = typ.Name() + "::" + sf.Name
	fi.index = i
	fi.opts, err = parseFieldOpts(sf.Tag.Get(structFieldTag))
	if err != nil {
		return fi, merry.Prependf(err, "field %s", fi.label)
	}
	if fi.opts.skip {
		return fi, nil
	}
	fi.mode = fi.opts.mode()
	if fi.opts.optional && !nilable(sf.Type) {
		return fi, merry.Here(ErrSchema).Appendf("optional field %s must be a pointer or a slice", fi.label)
	}
	fi.codec, err = c.compile(sf.Type, fi.opts.valueOpts)
	if err != nil {
		return fi, merry.Prependf(err, "field %s", fi.label)
	}
	if fi.mode == modeImplicit {
		if _, ok := fi.codec.(simpleCodec); !ok {
			return fi, merry.Here(ErrSchema).Appendf("field %s: %s has no single tag and cannot be implicitly tagged", fi.label, sf.Type)
		}
	}
	if fi.opts.hasDefault {
		if err := fi.compileDefault(sf.Type); err != nil {
			return fi, err
		}
	}
	return fi, nil
}

// compileDefault converts the default literal to the field's type, and
// pre-encodes it so values can be compared to it by encoding.
func (fi *fieldInfo) compileDefault(typ reflect.Type) error {
	if nilable(typ) {
		return merry.Here(ErrSchema).Appendf("default field %s cannot be a pointer or a slice", fi.label)
	}
	v := reflect.New(typ)
	lit := fi.opts.defaultLit
	var err error
	switch {
	case v.Type().Implements(textUnmarshalerType):
		err = v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(lit))
	case typ.Kind() == reflect.Bool:
		var b bool
		b, err = strconv.ParseBool(lit)
		v.Elem().SetBool(b)
	case typ.Kind() >= reflect.Int && typ.Kind() <= reflect.Int64:
		var n int64
		n, err = strconv.ParseInt(lit, 0, typ.Bits())
		v.Elem().SetInt(n)
	case typ.Kind() >= reflect.Uint && typ.Kind() <= reflect.Uintptr:
		var n uint64
		n, err = strconv.ParseUint(lit, 0, typ.Bits())
		v.Elem().SetUint(n)
	case typ.Kind() == reflect.String:
		v.Elem().SetString(lit)
	default:
		return merry.Here(ErrSchema).Appendf("default field %s: no literal conversion to %s", fi.label, typ)
	}
	if err != nil {
		return merry.Here(ErrSchema).Appendf("default field %s: cannot convert %q to %s", fi.label, lit, typ).WithCause(err)
	}
	fi.def = v.Elem()
	var buf bytes.Buffer
	if err := fi.codec.encode(NewWriter(&buf), fi.def); err != nil {
		return merry.Here(ErrSchema).Appendf("default field %s: cannot encode %q", fi.label, lit).WithCause(err)
	}
	fi.defData = buf.Bytes()
	return nil
}

// isDefault reports whether v encodes the same as the field's default.
func (fi *fieldInfo) isDefault(v reflect.Value) bool {
	if !fi.opts.hasDefault {
		return false
	}
	var buf bytes.Buffer
	if err := fi.codec.encode(NewWriter(&buf), v); err != nil {
		return false
	}
	return bytes.Equal(buf.Bytes(), fi.defData)
}

func (c *compiler) compileStruct(typ reflect.Type, key codecKey) (codec, error) {
	sc := &structCodec{typ: typ}
	c.inProgress[key] = sc
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if sf.PkgPath != "" {
			// unexported
			continue
		}
		fi, err := c.compileField(typ, sf, i)
		if err != nil {
			return nil, err
		}
		if fi.opts.skip {
			continue
		}
		sc.fields = append(sc.fields, fi)
	}
	log.Debug("compiled schema", "type", typ.String(), "kind", "SEQUENCE", "fields", len(sc.fields))
	return sc, nil
}

func (c *compiler) compileChoice(typ reflect.Type, key codecKey) (codec, error) {
	cc := &choiceCodec{typ: typ}
	c.inProgress[key] = cc
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if sf.PkgPath != "" || sf.Name == choiceMarkerField {
			continue
		}
		fi, err := c.compileField(typ, sf, i)
		if err != nil {
			return nil, err
		}
		if fi.opts.skip {
			continue
		}
		switch {
		case fi.opts.optional || fi.opts.hasDefault:
			return nil, merry.Here(ErrSchema).Appendf("choice variant %s cannot be optional or have a default", fi.label)
		case !nilable(sf.Type):
			return nil, merry.Here(ErrSchema).Appendf("choice variant %s must be a pointer or a slice", fi.label)
		}
		cc.variants = append(cc.variants, fi)
	}
	if len(cc.variants) == 0 {
		return nil, merry.Here(ErrSchema).Appendf("choice %s has no variants", typ)
	}
	log.Debug("compiled schema", "type", typ.String(), "kind", "CHOICE", "fields", len(cc.variants))
	return cc, nil
}
