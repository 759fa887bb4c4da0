package engine

import "github.com/pssnyder/static-evaluation-engine/internal/board"

// maxExchangeDepth bounds the gain stack; a square can never see more
// than 32 captures.
const maxExchangeDepth = 32

// SEE runs a static exchange evaluation of a capture: the centipawn
// balance, for the moving side, after both sides cycle their cheapest
// attackers through the target square until one side stops. Sliders
// revealed by a departing attacker join the exchange through the
// occupancy-masked attack recomputation. Returns 0 for non-captures.
func SEE(pos *board.Position, m board.Move) int {
	to := m.To()
	from := m.From()

	attackerPiece := pos.PieceAt(from)
	if attackerPiece == board.NoPiece {
		return 0
	}

	occupied := pos.AllOccupied
	var firstVictim board.PieceType
	if m.IsEnPassant() {
		firstVictim = board.Pawn
		capturedSq := to - 8
		if pos.SideToMove == board.Black {
			capturedSq = to + 8
		}
		occupied = occupied.Clear(capturedSq)
	} else {
		victimPiece := pos.PieceAt(to)
		if victimPiece == board.NoPiece {
			return 0
		}
		firstVictim = victimPiece.Type()
	}

	var gain [maxExchangeDepth]int
	depth := 0
	gain[0] = firstVictim.Value()

	attackerValue := attackerPiece.Type().Value()
	occupied = occupied.Clear(from)
	side := attackerPiece.Color().Other()

	for depth < maxExchangeDepth-1 {
		attacker, sq := leastValuableAttacker(pos, to, side, occupied)
		if attacker == board.NoPieceType {
			break
		}
		depth++
		// Speculative gain if the standing piece is taken now.
		gain[depth] = attackerValue - gain[depth-1]
		attackerValue = attacker.Value()
		occupied = occupied.Clear(sq)
		side = side.Other()
	}

	// Fold back to front, gain[d-1] = -max(-gain[d-1], gain[d]):
	// each side may decline to continue the exchange.
	for ; depth > 0; depth-- {
		if gain[depth] > -gain[depth-1] {
			gain[depth-1] = -gain[depth]
		}
	}
	return gain[0]
}

// leastValuableAttacker finds the cheapest piece of side attacking sq in
// the given occupancy, scanning pawn to king. Pieces already spent in
// the exchange are excluded by the occupancy mask.
func leastValuableAttacker(pos *board.Position, sq board.Square, side board.Color, occupied board.Bitboard) (board.PieceType, board.Square) {
	attackers := pos.AttackersByColor(sq, side, occupied) & occupied
	if attackers == 0 {
		return board.NoPieceType, board.NoSquare
	}
	for pt := board.Pawn; pt <= board.King; pt++ {
		if subset := attackers & pos.Pieces[side][pt]; subset != 0 {
			return pt, subset.LSB()
		}
	}
	return board.NoPieceType, board.NoSquare
}
