package lockfile

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"

	errs "github.com/matzehuels/lockfile/pkg/errors"
)

var (
	// byteOrderMark is U+FEFF encoded as UTF-8.
	byteOrderMark = []byte("\uFEFF")
	// latin1ByteOrderMark is the UTF-8 BOM after a round trip through a
	// Latin-1 editor, where it shows up as the visible text "ï»¿".
	latin1ByteOrderMark = []byte("\u00ef\u00bb\u00bf")

	utf16LE = []byte{0xFF, 0xFE}
	utf16BE = []byte{0xFE, 0xFF}
)

var errInvalidUTF8 = errors.New("invalid UTF-8")

// StripMarkers removes every leading byte-order marker from data, including
// markers that an authoring tool has turned into visible characters. Input
// without a marker is returned unchanged.
func StripMarkers(data []byte) []byte {
	for {
		switch {
		case bytes.HasPrefix(data, byteOrderMark):
			data = data[len(byteOrderMark):]
		case bytes.HasPrefix(data, latin1ByteOrderMark):
			data = data[len(latin1ByteOrderMark):]
		default:
			return data
		}
	}
}

// Transcode converts UTF-16 input announced by a byte-order mark to UTF-8 and
// strips leading markers. Everything else is passed through untouched.
func Transcode(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, utf16LE) || bytes.HasPrefix(data, utf16BE) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeEncodingAnomaly, err, "decode UTF-16")
		}
		data = out
	}
	return StripMarkers(data), nil
}

// Decode prepares text-based lockfiles for parsing: it transcodes, strips
// leading markers and rejects input that is not valid UTF-8. The returned
// error carries [errs.ErrCodeEncodingAnomaly] and a [Diagnostic] pointing at
// the first invalid byte.
func Decode(data []byte) ([]byte, error) {
	data, err := Transcode(data)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		line, col := LineColumn(data, int64(invalidOffset(data)))
		d := &Diagnostic{Line: line, Column: col, Err: errInvalidUTF8}
		return nil, errs.Wrap(errs.ErrCodeEncodingAnomaly, d, "decode text")
	}
	return data, nil
}

// DecodeXML unmarshals an XML document into v after transcoding and marker
// stripping. Documents declaring a legacy encoding (windows-1252, latin1, …)
// are converted on the fly. Only comments, processing instructions and
// whitespace may follow the root element.
func DecodeXML(data []byte, v any) error {
	data, err := Transcode(data)
	if err != nil {
		return err
	}
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charsetReader
	if err := d.Decode(v); err != nil {
		return err
	}
	return expectXMLEnd(d)
}

// expectXMLEnd drains d and rejects any content after the root element.
func expectXMLEnd(d *xml.Decoder) error {
	for {
		line, col := d.InputPos()
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return At(line, col, "unexpected element <%s> after document root", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return At(line, col, "unexpected text after document root")
			}
		}
	}
}

// charsetReader passes Unicode labels through, since Transcode has already
// produced UTF-8, and defers every other label to the WHATWG encoding table.
func charsetReader(label string, in io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "utf-16", "utf-16le", "utf-16be", "unicode":
		return in, nil
	}
	return charset.NewReaderLabel(label, in)
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}
