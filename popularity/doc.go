// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package popularity computes and refreshes game popularity scores.

A score is a weighted sum of five signals, each reduced to a presence flag by
dividing it by max(signal, 1):

	w1 sessions started yesterday      0.30
	w2 sessions currently open         0.20
	w3 cumulative upvotes              0.25
	w4 longest session yesterday (s)   0.15
	w5 sessions started yesterday      0.10

w1 and w5 are the same count. "Yesterday" is the calendar day before today in
the scorer's location.

Scorer.Refresh collects the signals for one game, stores the score with a
timestamp and hands it to an optional Ranker. Scorer.Sweep refreshes every
game in turn, skipping games that fail.
*/
package popularity
