package charset

// Class identifies one of the generator's character classes.
type Class int

const (
	// ClassLower is the ASCII lowercase alphabet.
	ClassLower Class = iota
	// ClassUpper is the ASCII uppercase alphabet.
	ClassUpper
	// ClassDigit is the ASCII decimal digits.
	ClassDigit
	// ClassSymbol is the generator's printable symbol set.
	ClassSymbol
)

// Class alphabets. The order of characters inside each alphabet is
// significant for sequence detection.
const (
	Lower   = "abcdefghijklmnopqrstuvwxyz"
	Upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits  = "0123456789"
	Symbols = "!@#$%^&*()-_=+[]{};:,.?/"
)

// String returns the lowercase name of the class.
func (c Class) String() string {
	switch c {
	case ClassLower:
		return "lower"
	case ClassUpper:
		return "upper"
	case ClassDigit:
		return "digit"
	case ClassSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Alphabet returns the characters belonging to the class.
// An unknown class returns the lowercase alphabet.
func (c Class) Alphabet() string {
	switch c {
	case ClassUpper:
		return Upper
	case ClassDigit:
		return Digits
	case ClassSymbol:
		return Symbols
	default:
		return Lower
	}
}

// Contains reports whether r belongs to the class alphabet.
func (c Class) Contains(r rune) bool {
	switch c {
	case ClassLower:
		return r >= 'a' && r <= 'z'
	case ClassUpper:
		return r >= 'A' && r <= 'Z'
	case ClassDigit:
		return r >= '0' && r <= '9'
	case ClassSymbol:
		for _, s := range Symbols {
			if s == r {
				return true
			}
		}
	}
	return false
}

// SequenceBases are the alphabets scanned for runs of consecutive
// characters such as "abcd" or "3456".
var SequenceBases = [...]string{Lower, Upper, Digits}
