package action

import (
	"fmt"
	"regexp"
	"strconv"
)

var diceExprRe = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// ScaleDice recomputes a damage dice expression for a spell cast at a
// higher slot level by incrementing the die count by (castLevel -
// baseLevel). Die size and static modifier are untouched.
//
// This is a simplifying linear-scaling rule, not the official
// per-spell scaling table; it is kept as documented behavior.
func ScaleDice(dice string, baseLevel, castLevel int) string {
	if castLevel <= baseLevel {
		return dice
	}
	m := diceExprRe.FindStringSubmatch(dice)
	if m == nil {
		return dice
	}
	count, err := strconv.Atoi(m[1])
	if err != nil {
		return dice
	}
	count += castLevel - baseLevel
	return fmt.Sprintf("%dd%s%s", count, m[2], m[3])
}
