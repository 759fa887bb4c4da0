package board

// GeneratePseudoLegalMoves appends every pseudo-legal move for the side
// to move: the moves may leave the mover's own king in check.
func (p *Position) GeneratePseudoLegalMoves(ml *MoveList) {
	us := p.SideToMove
	enemies := p.Occupied[us.Other()]
	occupied := p.AllOccupied

	p.generatePawnMoves(ml, us, enemies, occupied, false)
	p.generatePieceMoves(ml, us, ^p.Occupied[us], occupied)
	p.generateCastlingMoves(ml, us)
}

// GenerateLegalMoves appends every legal move for the side to move. Each
// pseudo-legal candidate is applied, tested, and reverted.
func (p *Position) GenerateLegalMoves(ml *MoveList) {
	var pseudo MoveList
	p.GeneratePseudoLegalMoves(&pseudo)
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if undo := p.MakeMove(m); undo.Valid {
			p.UnmakeMove(m, undo)
			ml.Add(m)
		}
	}
}

// GenerateForcing appends legal captures, en passant captures, and
// promotions, for quiescence search.
func (p *Position) GenerateForcing(ml *MoveList) {
	us := p.SideToMove
	enemies := p.Occupied[us.Other()]
	occupied := p.AllOccupied

	var pseudo MoveList
	p.generatePawnMoves(&pseudo, us, enemies, occupied, true)
	p.generatePieceMoves(&pseudo, us, enemies, occupied)

	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if undo := p.MakeMove(m); undo.Valid {
			p.UnmakeMove(m, undo)
			ml.Add(m)
		}
	}
}

// GenerateQuietChecks appends legal non-capture moves that give check.
func (p *Position) GenerateQuietChecks(ml *MoveList) {
	us := p.SideToMove
	enemyKing := p.KingSquare[us.Other()]
	occupied := p.AllOccupied
	empty := ^occupied

	var pseudo MoveList

	knightTargets := KnightAttacks(enemyKing) & empty
	for knights := p.Pieces[us][Knight]; knights != 0; {
		from := knights.PopLSB()
		for attacks := KnightAttacks(from) & knightTargets; attacks != 0; {
			pseudo.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	diagTargets := BishopAttacks(enemyKing, occupied) & empty
	orthoTargets := RookAttacks(enemyKing, occupied) & empty

	for bishops := p.Pieces[us][Bishop]; bishops != 0; {
		from := bishops.PopLSB()
		for attacks := BishopAttacks(from, occupied) & diagTargets; attacks != 0; {
			pseudo.Add(NewMove(from, attacks.PopLSB()))
		}
	}
	for rooks := p.Pieces[us][Rook]; rooks != 0; {
		from := rooks.PopLSB()
		for attacks := RookAttacks(from, occupied) & orthoTargets; attacks != 0; {
			pseudo.Add(NewMove(from, attacks.PopLSB()))
		}
	}
	for queens := p.Pieces[us][Queen]; queens != 0; {
		from := queens.PopLSB()
		for attacks := QueenAttacks(from, occupied) & (diagTargets | orthoTargets); attacks != 0; {
			pseudo.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	pawnTargets := PawnAttacks(enemyKing, us.Other()) & empty
	for pawns := p.Pieces[us][Pawn]; pawns != 0; {
		from := pawns.PopLSB()
		push := SquareBB(from).North()
		if us == Black {
			push = SquareBB(from).South()
		}
		if push&empty&pawnTargets != 0 {
			pseudo.Add(NewMove(from, push.LSB()))
		}
	}

	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if undo := p.MakeMove(m); undo.Valid {
			p.UnmakeMove(m, undo)
			ml.Add(m)
		}
	}
}

// generatePieceMoves appends knight, slider, and king moves whose
// destinations fall inside targets.
func (p *Position) generatePieceMoves(ml *MoveList, us Color, targets, occupied Bitboard) {
	for knights := p.Pieces[us][Knight]; knights != 0; {
		from := knights.PopLSB()
		for attacks := KnightAttacks(from) & targets; attacks != 0; {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}
	for bishops := p.Pieces[us][Bishop]; bishops != 0; {
		from := bishops.PopLSB()
		for attacks := BishopAttacks(from, occupied) & targets; attacks != 0; {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}
	for rooks := p.Pieces[us][Rook]; rooks != 0; {
		from := rooks.PopLSB()
		for attacks := RookAttacks(from, occupied) & targets; attacks != 0; {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}
	for queens := p.Pieces[us][Queen]; queens != 0; {
		from := queens.PopLSB()
		for attacks := QueenAttacks(from, occupied) & targets; attacks != 0; {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}
	from := p.KingSquare[us]
	for attacks := KingAttacks(from) & targets; attacks != 0; {
		ml.Add(NewMove(from, attacks.PopLSB()))
	}
}

// generatePawnMoves appends pawn moves via whole-set bitboard shifts.
// capturesOnly restricts output to captures and promotions.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard, capturesOnly bool) {
	pawns := p.Pieces[us][Pawn]
	empty := ^occupied

	var push1, push2, attackL, attackR, promoRank Bitboard
	var up int
	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promoRank = Rank8
		up = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promoRank = Rank1
		up = -8
	}

	if !capturesOnly {
		for bb := push1 &^ promoRank; bb != 0; {
			to := bb.PopLSB()
			ml.Add(NewMove(Square(int(to)-up), to))
		}
		for bb := push2; bb != 0; {
			to := bb.PopLSB()
			ml.Add(NewMove(Square(int(to)-2*up), to))
		}
	}

	for bb := attackL &^ promoRank; bb != 0; {
		to := bb.PopLSB()
		ml.Add(NewMove(Square(int(to)-up+1), to))
	}
	for bb := attackR &^ promoRank; bb != 0; {
		to := bb.PopLSB()
		ml.Add(NewMove(Square(int(to)-up-1), to))
	}

	// Push promotions count as forcing even in captures-only mode.
	for bb := push1 & promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, Square(int(to)-up), to)
	}
	for bb := attackL & promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, Square(int(to)-up+1), to)
	}
	for bb := attackR & promoRank; bb != 0; {
		to := bb.PopLSB()
		addPromotions(ml, Square(int(to)-up-1), to)
	}

	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			ml.Add(NewEnPassant(epAttackers.PopLSB(), p.EnPassant))
		}
	}
}

func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

// generateCastlingMoves appends castling when rights remain, the path is
// clear, and the king does not castle out of, through, or into check.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	if us == White {
		if p.CastlingRights&WhiteKingSide != 0 &&
			p.AllOccupied&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
			ml.Add(NewCastling(E1, G1))
		}
		if p.CastlingRights&WhiteQueenSide != 0 &&
			p.AllOccupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
			ml.Add(NewCastling(E1, C1))
		}
	} else {
		if p.CastlingRights&BlackKingSide != 0 &&
			p.AllOccupied&(SquareBB(F8)|SquareBB(G8)) == 0 &&
			!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
			ml.Add(NewCastling(E8, G8))
		}
		if p.CastlingRights&BlackQueenSide != 0 &&
			p.AllOccupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
			!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
			ml.Add(NewCastling(E8, C8))
		}
	}
}

// MakeMove applies a pseudo-legal move and maintains the Zobrist hash
// incrementally. When the move would leave the mover's own king
// attacked, the snapshot in the returned UndoInfo is rolled back before
// returning and Valid is false: an illegal move never alters the
// position observably.
func (p *Position) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		CapturedPiece:  NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
		Hash:           p.Hash,
		KingSquare:     p.KingSquare,
		Pieces:         p.Pieces,
		Occupied:       p.Occupied,
		AllOccupied:    p.AllOccupied,
	}

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece || piece.Color() != us {
		return undo
	}
	pt := piece.Type()

	p.Hash ^= zobristSideToMove
	p.Hash ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}
	p.EnPassant = NoSquare

	if m.IsEnPassant() {
		capturedSq := to - 8
		if us == Black {
			capturedSq = to + 8
		}
		undo.CapturedPiece = NewPiece(Pawn, them)
		p.removePiece(undo.CapturedPiece, capturedSq)
		p.Hash ^= zobristPiece[them][Pawn][capturedSq]
	} else if captured := p.PieceAt(to); captured != NoPiece {
		undo.CapturedPiece = captured
		p.removePiece(captured, to)
		p.Hash ^= zobristPiece[them][captured.Type()][to]
	}

	p.movePiece(piece, from, to)
	p.Hash ^= zobristPiece[us][pt][from] ^ zobristPiece[us][pt][to]

	if m.IsPromotion() {
		promo := m.Promotion()
		p.removePiece(piece, to)
		p.setPiece(NewPiece(promo, us), to)
		p.Hash ^= zobristPiece[us][Pawn][to] ^ zobristPiece[us][promo][to]
	}

	if m.IsCastling() {
		var rookFrom, rookTo Square
		if to > from {
			rookFrom, rookTo = NewSquare(7, from.Rank()), NewSquare(5, from.Rank())
		} else {
			rookFrom, rookTo = NewSquare(0, from.Rank()), NewSquare(3, from.Rank())
		}
		p.movePiece(NewPiece(Rook, us), rookFrom, rookTo)
		p.Hash ^= zobristPiece[us][Rook][rookFrom] ^ zobristPiece[us][Rook][rookTo]
	}

	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSide | WhiteQueenSide
		} else {
			p.CastlingRights &^= BlackKingSide | BlackQueenSide
		}
	}
	// Rook moves and rook captures on the home corners drop rights.
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSide
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSide
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSide
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSide
	}
	p.Hash ^= zobristCastling[p.CastlingRights]

	if pt == Pawn {
		if diff := int(to) - int(from); diff == 16 || diff == -16 {
			p.EnPassant = Square((int(from) + int(to)) / 2)
			p.Hash ^= zobristEnPassant[p.EnPassant.File()]
		}
	}

	if pt == Pawn || undo.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = them

	if p.IsSquareAttacked(p.KingSquare[us], them) {
		p.restore(undo)
		return undo
	}

	undo.Valid = true
	return undo
}

// UnmakeMove reverts a move applied by MakeMove.
func (p *Position) UnmakeMove(_ Move, undo UndoInfo) {
	p.restore(undo)
}

func (p *Position) restore(undo UndoInfo) {
	p.Pieces = undo.Pieces
	p.Occupied = undo.Occupied
	p.AllOccupied = undo.AllOccupied
	p.KingSquare = undo.KingSquare
	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.FullMoveNumber = undo.FullMoveNumber
	p.Hash = undo.Hash
	p.SideToMove = p.SideToMove.Other()
}

// HasLegalMoves reports whether the side to move has any legal reply.
func (p *Position) HasLegalMoves() bool {
	var pseudo MoveList
	p.GeneratePseudoLegalMoves(&pseudo)
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if undo := p.MakeMove(m); undo.Valid {
			p.UnmakeMove(m, undo)
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is mated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move has no move but is not
// in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsInsufficientMaterial reports bare-material draws: K vs K, and a
// single minor piece against a bare king.
func (p *Position) IsInsufficientMaterial() bool {
	if p.Pieces[White][Pawn]|p.Pieces[Black][Pawn] != 0 ||
		p.Pieces[White][Rook]|p.Pieces[Black][Rook] != 0 ||
		p.Pieces[White][Queen]|p.Pieces[Black][Queen] != 0 {
		return false
	}
	wMinors := (p.Pieces[White][Knight] | p.Pieces[White][Bishop]).PopCount()
	bMinors := (p.Pieces[Black][Knight] | p.Pieces[Black][Bishop]).PopCount()
	if wMinors+bMinors == 0 {
		return true
	}
	return (wMinors <= 1 && bMinors == 0) || (bMinors <= 1 && wMinors == 0)
}

// IsDraw reports fifty-move, threefold-repetition, and insufficient
// material draws at the game level.
func (p *Position) IsDraw() bool {
	if p.HalfMoveClock >= 100 {
		return true
	}
	if p.RepetitionCount() >= 3 {
		return true
	}
	return p.IsInsufficientMaterial()
}
