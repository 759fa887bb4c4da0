package board

import (
	"fmt"
	"strings"
)

// CastlingRights is a bitmask of the four castling options.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// historyEntry records one applied game move for undo, repetition
// detection, and display.
type historyEntry struct {
	move Move
	undo UndoInfo
	sig  uint64 // Zobrist signature of the position after the move
}

// Position is a complete chess position plus the game history that led
// to it. The occupancy boards and king squares are caches derived from
// the piece bitboards.
type Position struct {
	Pieces      [2][6]Bitboard
	Occupied    [2]Bitboard
	AllOccupied Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // target square of a legal en passant reply, NoSquare if none
	HalfMoveClock  int
	FullMoveNumber int

	Hash       uint64
	KingSquare [2]Square

	history []historyEntry
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// Copy returns an independent copy of the position and its history.
func (p *Position) Copy() *Position {
	cp := *p
	cp.history = append([]historyEntry(nil), p.history...)
	return &cp
}

// PieceAt returns the piece on sq, NoPiece when empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if p.AllOccupied&bb == 0 {
		return NoPiece
	}
	c := White
	if p.Occupied[Black]&bb != 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// IsEmpty reports whether sq has no piece.
func (p *Position) IsEmpty(sq Square) bool {
	return p.AllOccupied&SquareBB(sq) == 0
}

// InCheck reports whether the side to move's king is attacked.
func (p *Position) InCheck() bool {
	return p.IsSquareAttacked(p.KingSquare[p.SideToMove], p.SideToMove.Other())
}

func (p *Position) setPiece(piece Piece, sq Square) {
	c, pt := piece.Color(), piece.Type()
	bb := SquareBB(sq)
	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb
	if pt == King {
		p.KingSquare[c] = sq
	}
}

func (p *Position) removePiece(piece Piece, sq Square) {
	c, pt := piece.Color(), piece.Type()
	bb := SquareBB(sq)
	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb
}

func (p *Position) movePiece(piece Piece, from, to Square) {
	c, pt := piece.Color(), piece.Type()
	moveBB := SquareBB(from) | SquareBB(to)
	p.Pieces[c][pt] ^= moveBB
	p.Occupied[c] ^= moveBB
	p.AllOccupied ^= moveBB
	if pt == King {
		p.KingSquare[c] = to
	}
}

// updateOccupied rebuilds the occupancy caches from the piece boards.
func (p *Position) updateOccupied() {
	p.Occupied[White] = 0
	p.Occupied[Black] = 0
	for pt := Pawn; pt <= King; pt++ {
		p.Occupied[White] |= p.Pieces[White][pt]
		p.Occupied[Black] |= p.Pieces[Black][pt]
	}
	p.AllOccupied = p.Occupied[White] | p.Occupied[Black]
	p.KingSquare[White] = p.Pieces[White][King].LSB()
	p.KingSquare[Black] = p.Pieces[Black][King].LSB()
}

// ApplyMove plays a game move: it must be in the current legal move
// list. The move and resulting signature are appended to the history.
// Returns false, leaving the position untouched, for any other move.
func (p *Position) ApplyMove(m Move) bool {
	var legal MoveList
	p.GenerateLegalMoves(&legal)
	if !legal.Contains(m) {
		return false
	}
	undo := p.MakeMove(m)
	if !undo.Valid {
		return false
	}
	p.history = append(p.history, historyEntry{move: m, undo: undo, sig: p.Hash})
	return true
}

// UndoLast takes back the most recent game move. Returns false when the
// history is empty.
func (p *Position) UndoLast() bool {
	n := len(p.history)
	if n == 0 {
		return false
	}
	entry := p.history[n-1]
	p.history = p.history[:n-1]
	p.UnmakeMove(entry.move, entry.undo)
	return true
}

// Signatures returns the Zobrist signatures of every position reached in
// the game so far, oldest first, including the current one.
func (p *Position) Signatures() []uint64 {
	sigs := make([]uint64, 0, len(p.history)+1)
	if len(p.history) == 0 {
		return append(sigs, p.Hash)
	}
	sigs = append(sigs, p.history[0].undo.Hash)
	for _, e := range p.history {
		sigs = append(sigs, e.sig)
	}
	return sigs
}

// MoveHistory returns the game moves applied since the last position
// load, oldest first.
func (p *Position) MoveHistory() []Move {
	moves := make([]Move, len(p.history))
	for i, e := range p.history {
		moves[i] = e.move
	}
	return moves
}

// RepetitionCount returns how many times the current position has
// occurred in the game, the current occurrence included.
func (p *Position) RepetitionCount() int {
	count := 1
	sigs := p.Signatures()
	for _, sig := range sigs[:len(sigs)-1] {
		if sig == p.Hash {
			count++
		}
	}
	return count
}

// String renders the board with rank 8 on top plus the state fields.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteString(p.PieceAt(NewSquare(file, rank)).String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	fmt.Fprintf(&sb, "%s to move, castling %s, ep %s, halfmove %d, move %d\n",
		p.SideToMove, p.CastlingRights, p.EnPassant, p.HalfMoveClock, p.FullMoveNumber)
	return sb.String()
}
