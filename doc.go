// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Npviz evaluates the NumPy operations in a small Python program and reports
each one: its operands, its keyword arguments and its result, and where to
find a visualization of it.

The program is a sequence of statements in a subset of Python:

	import numpy as np
	x = np.array([1, 2, 3])
	y = np.array([4, 5, 6])
	z = x + y
	w = np.sum(z, axis=0)

Assignments, augmented assignments (x += 1), expression statements and
imports of numpy are understood. Array literals are written with np.array.
Operations are the arithmetic, matrix product and power operators, module
functions such as np.sum(x) and methods such as x.reshape(3, 1) or x.T.
Names that are never assigned, and syntax npviz does not understand, such
as comparisons, subscripts and control flow, are carried through as they
are and fail evaluation if an operation needs them.

Every operand is promoted to at least two dimensions before it is used, so
np.array([1, 2, 3]) has shape (1, 3). Results are rounded to two decimal
places by default.

For each operation, in the order it is evaluated, npviz prints

	add
		Operands: [array([[1, 2, 3]]), array([[4, 5, 6]])], Keyword Args: {}
		[[5 7 9]]
		/video/0

The last line is the artifact of the operation, or a message saying the
operation has no visualization. With -s a plain-text storyboard of each
visualizable operation is written to the media directory as
videos/Visualization_N.txt.

Usage:

	npviz [options] [file.py ...]

With no files and no -e options the program is read from standard input.
The flags are:

	-a name
		Also treat name as the numpy module.
	-d flags
		Enable debugging flags, comma-separated: eval, panic, parse,
		resolve, tokens.
	-e text
		Evaluate text as a program. May be repeated.
	-j
		Print the summaries as JSON, as the npvizd server returns them.
	-m dir
		Media directory (default media).
	-p digits
		Number of decimal places results are rounded to (default 2).
	-s
		Write storyboards.
	-t
		Take a guided tour. Each time return is hit, the next example
		program is shown and run. A line of text is run instead.

The companion command npvizd serves the same over HTTP.
*/
package main
