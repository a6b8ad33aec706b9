package gamification

import "errors"

var ErrInvalidDifficulty = errors.New("difficulty must be between 1 and 5")

const coinsPerDifficulty = 3

// CoinsForDifficulty returns the coin award for completing a task of the
// given difficulty. XP awards mirror coins 1:1, so callers reuse the result
// for both.
func CoinsForDifficulty(difficulty int) (int, error) {
	if difficulty < 1 || difficulty > 5 {
		return 0, ErrInvalidDifficulty
	}
	return difficulty * coinsPerDifficulty, nil
}
