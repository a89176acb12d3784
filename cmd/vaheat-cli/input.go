/*
 * This file is part of the vaheat-mate distribution (https://github.com/vaheat/vaheat-mate).
 * Copyright (c) 2026 the vaheat-mate authors.
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, version 3.
 *
 * This program is distributed in the hope that it will be useful, but
 * WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
 * General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 */

package main

import "strings"

// jsonInputFixups forgives the single quotes and capitalized booleans
// people type out of Python habit.
var jsonInputFixups = strings.NewReplacer(
	"'", "\"",
	"True", "true",
	"False", "false",
)

func normalizeJSONInput(raw string) string {
	return jsonInputFixups.Replace(strings.TrimSpace(raw))
}

func parseBoolInput(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "on", "yes", "y":
		return true
	}
	return false
}
