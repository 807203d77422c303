package board

import "strconv"

// SetFromFEN resets b to the position described by fen. Malformed halfmove
// or fullmove fields default to 0 and 1 respectively rather than producing
// an error, matching the tolerant parsing original_source uses for engine
// input (spec §7).
func (b *Board) SetFromFEN(fen string) {
	*b = Board{}
	b.EnPassantIndex = NoSquare

	fields := splitFields(fen)
	for len(fields) < 6 {
		fields = append(fields, "")
	}

	rank := 7
	file := 0
	for _, c := range []byte(fields[0]) {
		switch {
		case c == '/':
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			p := PieceFromChar(c)
			if p != NoPiece && rank >= 0 && rank < 8 && file >= 0 && file < 8 {
				sq := NewSquare(file, rank)
				b.Squares[sq] = p
				if p.Type() == King {
					b.setKingPos(p.Color(), sq)
				}
			}
			file++
		}
	}

	if fields[1] == "b" {
		b.ActiveColor = Black
	} else {
		b.ActiveColor = White
	}

	for _, c := range []byte(fields[2]) {
		switch c {
		case 'K':
			b.CastlingRights |= WhiteKingSide
		case 'Q':
			b.CastlingRights |= WhiteQueenSide
		case 'k':
			b.CastlingRights |= BlackKingSide
		case 'q':
			b.CastlingRights |= BlackQueenSide
		}
	}

	if fields[3] != "-" && fields[3] != "" {
		if sq, err := ParseSquare(fields[3]); err == nil {
			b.EnPassantIndex = sq
		}
	}

	if v, err := strconv.Atoi(fields[4]); err == nil && v >= 0 {
		b.HalfMoveClock = v
	}
	if v, err := strconv.Atoi(fields[5]); err == nil && v >= 1 {
		b.FullMoveNumber = v
	} else {
		b.FullMoveNumber = 1
	}

	b.ZobristHash = b.CalculateHash()
}

// ToFEN renders the current position as a FEN string.
func (b *Board) ToFEN() string {
	s := make([]byte, 0, 80)
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.Squares[NewSquare(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				s = append(s, byte('0'+empty))
				empty = 0
			}
			s = append(s, []byte(p.String())...)
		}
		if empty > 0 {
			s = append(s, byte('0'+empty))
		}
		if rank > 0 {
			s = append(s, '/')
		}
	}

	s = append(s, ' ')
	if b.ActiveColor == Black {
		s = append(s, 'b')
	} else {
		s = append(s, 'w')
	}

	s = append(s, ' ')
	s = append(s, []byte(b.CastlingRights.String())...)

	s = append(s, ' ')
	s = append(s, []byte(b.EnPassantIndex.String())...)

	s = append(s, ' ')
	s = append(s, []byte(strconv.Itoa(b.HalfMoveClock))...)
	s = append(s, ' ')
	s = append(s, []byte(strconv.Itoa(b.FullMoveNumber))...)

	return string(s)
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			fields = append(fields, s[start:i])
			start = -1
		}
	}
	return fields
}
