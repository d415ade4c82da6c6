// ABOUTME: Charset handling for fetched bodies — decodes declared encodings
// ABOUTME: to UTF-8 before any HTML reaches the parser.
package resource

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// DetectAndDecodeText converts data to a UTF-8 string, preferring the
// charset named in the Content-Type header, falling back to a charset
// declared in an HTML meta tag, and finally assuming UTF-8. There is no
// statistical charset sniffing here; the two declared-charset sources
// cover the vast majority of real responses.
func DetectAndDecodeText(data []byte, contentType string) (string, error) {
	for _, enc := range []encoding.Encoding{
		encodingFromContentType(contentType),
		encodingFromMeta(data),
	} {
		if enc == nil {
			continue
		}
		if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
			return string(decoded), nil
		}
	}
	return string(data), nil
}

// encodingFromContentType reads the charset parameter of a Content-Type
// header, e.g. "text/html; charset=iso-8859-1".
func encodingFromContentType(contentType string) encoding.Encoding {
	for _, part := range strings.Split(contentType, ";") {
		part = strings.TrimSpace(strings.ToLower(part))
		if name, ok := strings.CutPrefix(part, "charset="); ok {
			return encodingByName(strings.Trim(name, `"'`))
		}
	}
	return nil
}

// encodingFromMeta scans the first KiB of the document for a charset
// declaration (<meta charset=...> or the http-equiv form).
func encodingFromMeta(data []byte) encoding.Encoding {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	content := strings.ToLower(string(head))

	idx := strings.Index(content, "charset=")
	if idx == -1 {
		return nil
	}
	rest := content[idx+len("charset="):]
	end := strings.IndexFunc(rest, func(r rune) bool {
		return r == '"' || r == '\'' || r == '>' || r == ' '
	})
	if end == -1 {
		end = len(rest)
	}
	if end == 0 {
		return nil
	}
	return encodingByName(strings.Trim(rest[:end], `"'`))
}

// namedEncodings maps the charset labels seen in the wild to decoders.
// Labels are matched after lowercasing and _ → - normalization.
var namedEncodings = map[string]encoding.Encoding{
	"utf-8":    unicode.UTF8,
	"utf8":     unicode.UTF8,
	"utf-16":   unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16be": unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16le": unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),

	"iso-8859-1":  charmap.ISO8859_1,
	"latin1":      charmap.ISO8859_1,
	"iso-8859-2":  charmap.ISO8859_2,
	"latin2":      charmap.ISO8859_2,
	"iso-8859-5":  charmap.ISO8859_5,
	"iso-8859-7":  charmap.ISO8859_7,
	"iso-8859-9":  charmap.ISO8859_9,
	"latin5":      charmap.ISO8859_9,
	"iso-8859-15": charmap.ISO8859_15,
	"latin9":      charmap.ISO8859_15,

	"windows-1250": charmap.Windows1250,
	"cp1250":       charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"cp1251":       charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"windows-1254": charmap.Windows1254,
	"cp1254":       charmap.Windows1254,
	"windows-1256": charmap.Windows1256,
	"cp1256":       charmap.Windows1256,

	"shift-jis":   japanese.ShiftJIS,
	"sjis":        japanese.ShiftJIS,
	"euc-jp":      japanese.EUCJP,
	"eucjp":       japanese.EUCJP,
	"iso-2022-jp": japanese.ISO2022JP,

	"euc-kr": korean.EUCKR,
	"euckr":  korean.EUCKR,

	// GB2312 is decoded as its GB18030 superset.
	"gb2312":  simplifiedchinese.GB18030,
	"gb-2312": simplifiedchinese.GB18030,
	"gbk":     simplifiedchinese.GBK,
	"gb18030": simplifiedchinese.GB18030,
	"big5":    traditionalchinese.Big5,

	"koi8-r": charmap.KOI8R,
	"koi8-u": charmap.KOI8U,
}

func encodingByName(charset string) encoding.Encoding {
	charset = strings.ReplaceAll(strings.ToLower(charset), "_", "-")
	return namedEncodings[charset]
}
