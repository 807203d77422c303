// Package board implements chess position representation: piece and
// coordinate encoding, move records, the Zobrist-hashed board state with
// its undo stack, attack detection, and pseudo-legal move generation.
package board

// PieceType occupies bits 0-2 of a Piece.
type PieceType uint8

const (
	NoPieceType PieceType = 0
	Pawn        PieceType = 1
	Knight      PieceType = 2
	Bishop      PieceType = 3
	Rook        PieceType = 4
	Queen       PieceType = 5
	King        PieceType = 6
)

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Color occupies bits 3-4 of a Piece. NoPieceType has no color.
type Color uint8

const (
	NoColor Color = 0
	White   Color = 0x08
	Black   Color = 0x10
)

// Other returns the opposing color. White and Black differ only in bits
// 3-4, so XOR-ing both set bits flips one into the other.
func (c Color) Other() Color {
	return c ^ (White | Black)
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Piece packs color (bits 3-4) and type (bits 0-2) into a single byte.
// NoPiece (zero value) has no color, per spec.
type Piece uint8

const (
	pieceTypeMask  Piece = 0x07
	pieceColorMask Piece = 0x18
)

const NoPiece Piece = 0

// NewPiece combines a color and type into a Piece. A NoPieceType argument
// always yields NoPiece, regardless of color.
func NewPiece(c Color, pt PieceType) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	return Piece(c) | Piece(pt)
}

// Type returns the piece's type, or NoPieceType for NoPiece.
func (p Piece) Type() PieceType {
	return PieceType(p & pieceTypeMask)
}

// Color returns the piece's color, or NoColor for NoPiece.
func (p Piece) Color() Color {
	if p == NoPiece {
		return NoColor
	}
	return Color(p & pieceColorMask)
}

// String returns the FEN character for the piece: uppercase for white,
// lowercase for black, a space for NoPiece.
func (p Piece) String() string {
	if p == NoPiece {
		return " "
	}
	idx := int(p.Type()) - 1
	if p.Color() == White {
		return string("PNBRQK"[idx])
	}
	return string("pnbrqk"[idx])
}

// PieceFromChar converts a FEN character to a Piece, or NoPiece if the
// character is not a recognized piece letter.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return NewPiece(White, Pawn)
	case 'N':
		return NewPiece(White, Knight)
	case 'B':
		return NewPiece(White, Bishop)
	case 'R':
		return NewPiece(White, Rook)
	case 'Q':
		return NewPiece(White, Queen)
	case 'K':
		return NewPiece(White, King)
	case 'p':
		return NewPiece(Black, Pawn)
	case 'n':
		return NewPiece(Black, Knight)
	case 'b':
		return NewPiece(Black, Bishop)
	case 'r':
		return NewPiece(Black, Rook)
	case 'q':
		return NewPiece(Black, Queen)
	case 'k':
		return NewPiece(Black, King)
	default:
		return NoPiece
	}
}

// PieceValue is the material value of a piece type in centipawns, indexed
// by PieceType.
var PieceValue = [7]int{0, 100, 300, 350, 500, 900, 20000}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
