package order_test

import (
	"testing"

	"github.com/treepeck/goengine/order"
	"github.com/treepeck/goengine/types"
)

func move(from, to types.Square, kind types.MoveKind) types.Move {
	return types.NewMove(from, to, kind)
}

func TestTTHintOutscoresEverything(t *testing.T) {
	hint := move(types.E2, types.E4, types.Quiet)
	capture := types.TypedMove{
		Move:     move(types.D1, types.D8, types.Capture),
		Moved:    types.NewPiece(types.White, types.Queen),
		Captured: types.NewPiece(types.Black, types.Queen),
	}
	hinted := types.TypedMove{Move: hint, Moved: types.NewPiece(types.White, types.Pawn), Captured: types.NoPiece}

	if order.Score(hinted, 0, hint, nil) <= order.Score(capture, 0, hint, nil) {
		t.Fatalf("the TT-hinted move must outscore even a queen-takes-queen capture")
	}
}

func TestCaptureOutscoresKillerOutscoresQuiet(t *testing.T) {
	killers := order.NewKillers()
	killerMove := move(types.B1, types.C3, types.Quiet)
	killers.Record(0, killerMove, order.KillerOffset)

	capture := types.TypedMove{
		Move:     move(types.D1, types.D8, types.Capture),
		Moved:    types.NewPiece(types.White, types.Queen),
		Captured: types.NewPiece(types.Black, types.Pawn),
	}
	killerTM := types.TypedMove{Move: killerMove, Moved: types.NewPiece(types.White, types.Knight), Captured: types.NoPiece}
	quiet := types.TypedMove{Move: move(types.G1, types.F3, types.Quiet), Moved: types.NewPiece(types.White, types.Knight), Captured: types.NoPiece}

	cs := order.Score(capture, 0, types.NoMove, killers)
	ks := order.Score(killerTM, 0, types.NoMove, killers)
	qs := order.Score(quiet, 0, types.NoMove, killers)

	if !(cs > ks && ks > qs) {
		t.Fatalf("expected capture > killer > quiet, got capture=%d killer=%d quiet=%d", cs, ks, qs)
	}
}

func TestMVVLVAPrefersSmallerAttackerOnEqualVictim(t *testing.T) {
	pawnTakesQueen := types.TypedMove{
		Move:     move(types.E4, types.D5, types.Capture),
		Moved:    types.NewPiece(types.White, types.Pawn),
		Captured: types.NewPiece(types.Black, types.Queen),
	}
	knightTakesQueen := types.TypedMove{
		Move:     move(types.C3, types.D5, types.Capture),
		Moved:    types.NewPiece(types.White, types.Knight),
		Captured: types.NewPiece(types.Black, types.Queen),
	}

	if order.Score(pawnTakesQueen, 0, types.NoMove, nil) <= order.Score(knightTakesQueen, 0, types.NoMove, nil) {
		t.Fatalf("capturing with the lesser attacker should score higher for an equal victim")
	}
}

func TestOrdererDrawsInDescendingScoreOrder(t *testing.T) {
	var list types.MoveList
	list.Push(types.TypedMove{Move: move(types.G1, types.F3, types.Quiet), Moved: types.NewPiece(types.White, types.Knight), Captured: types.NoPiece})
	list.Push(types.TypedMove{Move: move(types.D1, types.D8, types.Capture), Moved: types.NewPiece(types.White, types.Queen), Captured: types.NewPiece(types.Black, types.Queen)})
	list.Push(types.TypedMove{Move: move(types.E2, types.E4, types.DoublePawn), Moved: types.NewPiece(types.White, types.Pawn), Captured: types.NoPiece})

	o := order.New(&list, 0, types.NoMove, nil)

	prevScore := 1 << 30
	drawn := 0
	for {
		_, score, ok := o.Next()
		if !ok {
			break
		}
		if score > prevScore {
			t.Fatalf("scores must be non-increasing across draws, got %d after %d", score, prevScore)
		}
		prevScore = score
		drawn++
	}
	if drawn != 3 {
		t.Fatalf("expected to draw all 3 moves, got %d", drawn)
	}
	if o.Drawn() != 3 {
		t.Fatalf("Drawn() = %d, want 3", o.Drawn())
	}
}

func TestKillerRecordFillsEmptySlotsBeforeReplacing(t *testing.T) {
	killers := order.NewKillers()
	a := move(types.A2, types.A3, types.Quiet)
	b := move(types.B2, types.B3, types.Quiet)
	c := move(types.C2, types.C3, types.Quiet)

	killers.Record(1, a, 100)
	killers.Record(1, b, 50)
	// Both slots full; c should only replace if it outscores the lower slot (b, 50).
	killers.Record(1, c, 10)

	tm := types.TypedMove{Move: c, Moved: types.NewPiece(types.White, types.Pawn), Captured: types.NoPiece}
	if order.Score(tm, 1, types.NoMove, killers) >= order.KillerOffset {
		t.Fatalf("c should not have displaced a higher-scored killer slot")
	}

	killers.Record(1, c, 200)
	if order.Score(tm, 1, types.NoMove, killers) < order.KillerOffset {
		t.Fatalf("c should now occupy a killer slot after outscoring the lowest one")
	}
}
