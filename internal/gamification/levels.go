package gamification

// Levels start at 1 and each level spans exactly 100 XP.
const xpPerLevel = 100

// Level computes the level for an XP total: floor(xp/100)+1, clamped to 1
// for negative input.
func Level(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/xpPerLevel + 1
}

// XPForLevel returns the XP floor of a level: 0 for level 1 and below.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * xpPerLevel
}

// XPForNextLevel returns the XP threshold of the level after the current one.
func XPForNextLevel(xp int) int {
	return XPForLevel(Level(xp) + 1)
}

// XPUntilNextLevel returns how much XP is still missing to the next level.
func XPUntilNextLevel(xp int) int {
	return XPForNextLevel(xp) - xp
}

// LevelProgress returns the rounded percentage of the current level already
// earned. At an exact level boundary this is 0, not 100.
func LevelProgress(xp int) int {
	inLevel := xp - XPForLevel(Level(xp))
	if inLevel < 0 {
		inLevel = 0
	}
	return (inLevel*100 + xpPerLevel/2) / xpPerLevel
}

type LevelInfo struct {
	CurrentLevel       int `json:"current_level"`
	CurrentXP          int `json:"current_xp"`
	XPForCurrentLevel  int `json:"xp_for_current_level"`
	XPForNextLevel     int `json:"xp_for_next_level"`
	XPUntilNextLevel   int `json:"xp_until_next_level"`
	ProgressPercentage int `json:"progress_percentage"`
}

func GetLevelInfo(xp int) LevelInfo {
	currentLevel := Level(xp)
	return LevelInfo{
		CurrentLevel:       currentLevel,
		CurrentXP:          xp,
		XPForCurrentLevel:  XPForLevel(currentLevel),
		XPForNextLevel:     XPForNextLevel(xp),
		XPUntilNextLevel:   XPUntilNextLevel(xp),
		ProgressPercentage: LevelProgress(xp),
	}
}
