package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN wraps every parse failure in ParseFEN.
var ErrInvalidFEN = errors.New("invalid FEN")

// ParseFEN builds a position from a six-field FEN record. The clock
// fields may be omitted and default to "0 1". The returned position
// starts a fresh game history.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(fields))
	}

	pos := &Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare

	if err := parsePlacement(pos, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				pos.CastlingRights |= WhiteKingSide
			case 'Q':
				pos.CastlingRights |= WhiteQueenSide
			case 'k':
				pos.CastlingRights |= BlackKingSide
			case 'q':
				pos.CastlingRights |= BlackQueenSide
			default:
				return nil, fmt.Errorf("%w: bad castling field %q", ErrInvalidFEN, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, fields[3])
		}
		pos.EnPassant = sq
	}

	if len(fields) > 4 {
		clock, err := strconv.Atoi(fields[4])
		if err != nil || clock < 0 {
			return nil, fmt.Errorf("%w: bad halfmove clock %q", ErrInvalidFEN, fields[4])
		}
		pos.HalfMoveClock = clock
	}
	if len(fields) > 5 {
		moveNum, err := strconv.Atoi(fields[5])
		if err != nil || moveNum < 1 {
			return nil, fmt.Errorf("%w: bad fullmove number %q", ErrInvalidFEN, fields[5])
		}
		pos.FullMoveNumber = moveNum
	}

	if pos.Pieces[White][King].PopCount() != 1 || pos.Pieces[Black][King].PopCount() != 1 {
		return nil, fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}

	pos.updateOccupied()
	pos.Hash = pos.ComputeHash()
	return pos, nil
}

func parsePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(c)
			if piece == NoPiece {
				return fmt.Errorf("%w: bad piece character %q", ErrInvalidFEN, c)
			}
			if file > 7 {
				return fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, rank+1)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, rank+1, file)
		}
	}
	return nil
}

// ToFEN serializes the position as a six-field FEN record. It inverts
// ParseFEN exactly for any reachable position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))
	return sb.String()
}
