package console

type parseState uint8

const (
	stateGround parseState = iota
	stateEscape
	stateCSI
	stateOSC
	stateCharset
)

// parser splits a rune stream into printable runes, C0 controls and
// CSI sequences.
type parser struct {
	state  parseState
	params []int
	param  int
	hasArg bool
}

// handler receives what the parser recognizes.
type handler interface {
	print(r rune)
	control(r rune)
	csi(final rune, params []int)
}

func (p *parser) feed(h handler, r rune) {
	switch p.state {
	case stateGround:
		switch {
		case r == '\x1b':
			p.state = stateEscape
		case r < ' ' || r == 0x7f:
			h.control(r)
		default:
			h.print(r)
		}
	case stateEscape:
		switch r {
		case '[':
			p.state = stateCSI
			p.params = p.params[:0]
			p.param, p.hasArg = 0, false
		case ']':
			p.state = stateOSC
		case '(', ')':
			p.state = stateCharset
		default:
			p.state = stateGround
		}
	case stateCSI:
		switch {
		case r >= '0' && r <= '9':
			p.param = p.param*10 + int(r-'0')
			p.hasArg = true
		case r == ';':
			p.params = append(p.params, p.param)
			p.param, p.hasArg = 0, false
		case r >= ' ' && r <= '?':
			// private markers and intermediates
		case r >= '@' && r <= '~':
			if p.hasArg || len(p.params) > 0 {
				p.params = append(p.params, p.param)
			}
			h.csi(r, p.params)
			p.state = stateGround
		default:
			p.state = stateGround
		}
	case stateOSC:
		switch r {
		case '\x07':
			p.state = stateGround
		case '\x1b':
			// ESC \ terminates; the backslash is swallowed as an escape.
			p.state = stateEscape
		}
	case stateCharset:
		p.state = stateGround
	}
}

// arg returns params[i], or def when absent or zero.
func arg(params []int, i, def int) int {
	if i < len(params) && params[i] > 0 {
		return params[i]
	}
	return def
}
