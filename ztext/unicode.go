package ztext

// defaultUnicodeTable maps the extended ZSCII codes 155-223 to Unicode,
// carried forward verbatim from the teacher's zstring/unicode.go default
// translation table (the standard Z-machine extra character set).
var defaultUnicodeTable = map[uint8]rune{
	155: 'ä', 156: 'ö', 157: 'ü', 158: 'Ä', 159: 'Ö', 160: 'Ü', 161: 'ß',
	162: '»', 163: '«', 164: 'ë', 165: 'ï', 166: 'ÿ', 167: 'Ë', 168: 'Ï',
	169: 'á', 170: 'é', 171: 'í', 172: 'ó', 173: 'ú', 174: 'ý', 175: 'Á',
	176: 'É', 177: 'Í', 178: 'Ó', 179: 'Ú', 180: 'Ý', 181: 'à', 182: 'è',
	183: 'ì', 184: 'ò', 185: 'ù', 186: 'À', 187: 'È', 188: 'Ì', 189: 'Ò',
	190: 'Ù', 191: 'â', 192: 'ê', 193: 'î', 194: 'ô', 195: 'û', 196: 'Â',
	197: 'Ê', 198: 'Î', 199: 'Ô', 200: 'Û', 201: 'å', 202: 'Å', 203: 'ø',
	204: 'Ø', 205: 'ã', 206: 'ñ', 207: 'õ', 208: 'Ã', 209: 'Ñ', 210: 'Õ',
	211: 'æ', 212: 'Æ', 213: 'ç', 214: 'Ç', 215: 'þ', 216: 'ð', 217: 'Þ',
	218: 'Ð', 219: '£', 220: 'œ', 221: 'Œ', 222: '¡', 223: '¿',
}

var unicodeToZsciiTable map[rune]uint8

func init() {
	unicodeToZsciiTable = make(map[rune]uint8, len(defaultUnicodeTable))
	for code, r := range defaultUnicodeTable {
		unicodeToZsciiTable[r] = code
	}
}

// ZsciiToUnicode converts a ZSCII code point to its Unicode rune. Codes
// 32-126 are plain ASCII; 13 is a newline; 155-223 go through the extra
// character table; anything else falls back to the replacement character rather than
// faulting, since a malformed story's output shouldn't crash the
// interpreter.
func ZsciiToUnicode(code uint8) rune {
	switch {
	case code >= 32 && code <= 126:
		return rune(code)
	case code == 13:
		return '\n'
	default:
		if r, ok := defaultUnicodeTable[code]; ok {
			return r
		}
		return '�'
	}
}

// UnicodeToZscii converts a Unicode rune to its ZSCII code, used when
// encoding player input for dictionary lookups and read_char.
func UnicodeToZscii(r rune) (uint8, bool) {
	if r >= 32 && r <= 126 {
		return uint8(r), true
	}
	if r == '\n' {
		return 13, true
	}
	if code, ok := unicodeToZsciiTable[r]; ok {
		return code, true
	}
	return 0, false
}
