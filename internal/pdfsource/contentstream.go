package pdfsource

import (
	"strconv"

	"github.com/codexforge/bestiary/graphicsstate"
	"github.com/codexforge/bestiary/model"
)

// scanContent tokenizes a raw content stream and keeps only the
// operators that drive image placement: q, Q, cm, and Do. String
// literals, hex strings, and comments are skipped so their bytes
// cannot masquerade as operators. Anything unrecognized resets the
// operand window, which keeps cm from picking up stale numbers.
func scanContent(data []byte) []graphicsstate.Op {
	var ops []graphicsstate.Op
	var numbers []float64
	var name string

	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case isWhitespace(c):
			i++
		case c == '%':
			i = skipComment(data, i)
		case c == '(':
			i = skipString(data, i)
			numbers = numbers[:0]
		case c == '<':
			i = skipHexOrDict(data, i)
			numbers = numbers[:0]
		case c == '>' || c == '[' || c == ']' || c == '{' || c == '}':
			i++
			numbers = numbers[:0]
		case c == '/':
			var tok string
			tok, i = readToken(data, i+1)
			name = tok
			numbers = numbers[:0]
		default:
			var tok string
			tok, i = readToken(data, i)
			if v, err := strconv.ParseFloat(tok, 64); err == nil {
				numbers = append(numbers, v)
				continue
			}
			switch tok {
			case "q":
				ops = append(ops, graphicsstate.Op{Kind: graphicsstate.OpSave})
			case "Q":
				ops = append(ops, graphicsstate.Op{Kind: graphicsstate.OpRestore})
			case "cm":
				if len(numbers) >= 6 {
					n := numbers[len(numbers)-6:]
					ops = append(ops, graphicsstate.Op{
						Kind:   graphicsstate.OpTransform,
						Matrix: model.Matrix{n[0], n[1], n[2], n[3], n[4], n[5]},
					})
				}
			case "Do":
				if name != "" {
					ops = append(ops, graphicsstate.Op{
						Kind: graphicsstate.OpPaintImage,
						Name: name,
					})
				}
			}
			numbers = numbers[:0]
		}
	}
	return ops
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// readToken reads a run of regular characters starting at i.
func readToken(data []byte, i int) (string, int) {
	start := i
	for i < len(data) && !isWhitespace(data[i]) && !isDelimiter(data[i]) {
		i++
	}
	if i == start {
		// A lone delimiter; consume it so the scan advances.
		return string(data[i]), i + 1
	}
	return string(data[start:i]), i
}

// skipComment advances past a % comment to the end of the line.
func skipComment(data []byte, i int) int {
	for i < len(data) && data[i] != '\n' && data[i] != '\r' {
		i++
	}
	return i
}

// skipString advances past a (...) literal, honoring nested parens
// and backslash escapes.
func skipString(data []byte, i int) int {
	depth := 0
	for i < len(data) {
		switch data[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return i
}

// skipHexOrDict advances past a <...> hex string or a <<...>> dict
// opener. Dict contents still tokenize normally; only the angle
// brackets themselves are consumed.
func skipHexOrDict(data []byte, i int) int {
	if i+1 < len(data) && data[i+1] == '<' {
		return i + 2
	}
	for i < len(data) && data[i] != '>' {
		i++
	}
	if i < len(data) {
		i++
	}
	return i
}
