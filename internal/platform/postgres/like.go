// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import "strings"

// LikeEscape is the ESCAPE clause matching the output of [Contains].
const LikeEscape = `ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains turns user input into a LIKE pattern matching it as a literal
// substring. Use it with [LikeEscape].
func Contains(term string) string {
	return "%" + likeReplacer.Replace(term) + "%"
}
