package movegen

import "github.com/Tastychemicals/Chess-Engine-Attempt-2/internal/board"

// verdict is what a judge decides for the square a ray just reached.
type verdict int

const (
	rayPass verdict = iota // keep walking
	rayMark                // remember the square in the trail, keep walking
	rayHit                 // stop and report the ray
	rayMiss                // stop silently
)

// ray is the state of one walk away from an origin.
type ray struct {
	vector   int
	distance int
	trail    []board.Square
}

// judge inspects the piece on sq (NoPiece if empty) and decides how the ray goes on.
type judge func(r *ray, sq board.Square, p board.Piece) verdict

// castRays walks from origin along every vector of m, one step at a time, until
// the board edge, m.maxDistance, or the judge stops the ray. onHit is called for
// every ray the judge reports, with the square it stopped on.
func castRays(b *board.Board, origin board.Square, m movement, decide judge, onHit func(r *ray, sq board.Square)) {
	for _, v := range m.vectors {
		r := ray{vector: v}
		cur := int(origin)

	walk:
		for r.distance < m.maxDistance {
			next := cur + v
			if board.Wraps(cur, next, m.maxFileStep) {
				break
			}
			r.distance++
			sq := board.Square(next)

			switch decide(&r, sq, b.FetchPiece(next, board.NoColor)) {
			case rayMark:
				r.trail = append(r.trail, sq)
			case rayHit:
				onHit(&r, sq)
				break walk
			case rayMiss:
				break walk
			}
			cur = next
		}
	}
}

// pinJudge finds an enemy slider behind exactly one piece of owner's side.
// A second friendly piece on the ray means nothing on it is pinned.
func pinJudge(owner board.Piece) judge {
	return func(r *ray, _ board.Square, p board.Piece) verdict {
		switch {
		case p.IsEmpty():
			return rayPass
		case p.IsTeamedWith(owner):
			if len(r.trail) > 0 {
				return rayMiss
			}
			return rayMark
		case len(r.trail) == 1 && slidesAlong(p, r.vector):
			return rayHit
		default:
			return rayMiss
		}
	}
}

// sliderThreatJudge finds an enemy slider with a clear line to owner.
// The empty squares in between are kept in the trail.
func sliderThreatJudge(owner board.Piece) judge {
	return func(r *ray, _ board.Square, p board.Piece) verdict {
		switch {
		case p.IsEmpty():
			return rayMark
		case p.IsEnemyOf(owner) && slidesAlong(p, r.vector):
			return rayHit
		default:
			return rayMiss
		}
	}
}

// hostileJudge hits on an enemy piece of type pt standing on the probed square.
func hostileJudge(owner board.Piece, pt board.PieceType) judge {
	return func(_ *ray, _ board.Square, p board.Piece) verdict {
		if p.Type() == pt && p.IsEnemyOf(owner) {
			return rayHit
		}
		return rayMiss
	}
}

// castlingJudge walks empty squares up to an unmoved rook of the king's side.
// The first two squares, the ones the king crosses, must not be attacked.
func castlingJudge(king board.Piece, attacks *attackMap) judge {
	return func(r *ray, _ board.Square, p board.Piece) verdict {
		switch {
		case p.IsEmpty():
			return rayMark
		case p.IsRook() && p.IsTeamedWith(king) && !p.HasMoved() &&
			len(r.trail) >= board.CastleMoveDistance &&
			!attacks.isAttacked(r.trail[0]) && !attacks.isAttacked(r.trail[1]):
			return rayHit
		default:
			return rayMiss
		}
	}
}
