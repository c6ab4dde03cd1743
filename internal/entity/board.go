package entity

type cell struct {
	column, row int
}

// WinLines lists every row, column and diagonal of the board.
var WinLines = [8][3]cell{
	// rows
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},

	// columns
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},

	// diagonals
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Evaluate adjudicates the board. The first complete line decides the winner; a full
// board without one is a draw.
func Evaluate(board Board) Outcome {
	for _, line := range WinLines {
		if mark := lineOwner(board, line); mark != EmptyCell {
			return outcomeOf(mark)
		}
	}

	if board.Count(EmptyCell) == 0 {
		return OutcomeDraw
	}

	return OutcomeUndecided
}

// Winners returns every mark owning a complete line. More than one only happens on boards
// that no legal sequence of moves produces.
func Winners(board Board) []Mark {
	var winners []Mark

	for _, line := range WinLines {
		mark := lineOwner(board, line)
		if mark == EmptyCell {
			continue
		}

		seen := false
		for _, w := range winners {
			if w == mark {
				seen = true
			}
		}
		if !seen {
			winners = append(winners, mark)
		}
	}

	return winners
}

// Count returns how many cells hold mark.
func (that Board) Count(mark Mark) int {
	n := 0
	for _, column := range that {
		for _, m := range column {
			if m == mark {
				n++
			}
		}
	}

	return n
}

func lineOwner(board Board, line [3]cell) Mark {
	a := board[line[0].column][line[0].row]
	b := board[line[1].column][line[1].row]
	c := board[line[2].column][line[2].row]

	if a != EmptyCell && a == b && b == c {
		return a
	}

	return EmptyCell
}

func outcomeOf(mark Mark) Outcome {
	if mark == MarkO {
		return OutcomeO
	}
	return OutcomeX
}
