package vim

import "math"

// maxCount caps counts instead of overflowing.
const maxCount = math.MaxInt / 10

// CountParser consumes leading digit tokens, "0" included.
type CountParser struct{}

// Parse records the count on d and returns the remaining tokens.
func (CountParser) Parse(tokens []string, d *Draft) []string {
	n := 0
	value := 0
	for _, tok := range tokens {
		digit, ok := digitToken(tok)
		if !ok {
			break
		}
		if value > (maxCount-digit)/10 {
			value = maxCount
		} else {
			value = value*10 + digit
		}
		d.RawKeys = append(d.RawKeys, tok)
		n++
	}
	if n > 0 {
		d.Count = value
	}
	return tokens[n:]
}

func digitToken(tok string) (int, bool) {
	if len(tok) != 1 || tok[0] < '0' || tok[0] > '9' {
		return 0, false
	}
	return int(tok[0] - '0'), true
}
