// Package script compiles plot documents into gnuplot command scripts.
//
// A [Document] is an ordered list of graphs with a page title, pre-init and
// post-init hook commands, generic "set" properties and a page [layout.Layout].
// [Document.Compile] turns it into one newline-terminated script:
//
//	<pre-init hooks>
//	set <key> <value>           one per property
//	set term <type>             if the terminal has a type
//	set output '<path>'         if the terminal has an output path
//	<post-init hooks>
//	<graph commands>            single graph, or:
//	set multiplot [title "t"]
//	set origin x,y              per graph, ascending index
//	set size w,h
//	<graph commands>
//	unset multiplot
//	quit
//
// gnuplot reads the script line by line with no lookahead, so every setting
// precedes the command that depends on it and "quit" comes last.
//
// # Current Graph
//
// A document always holds at least one graph. [Document.AddGraph] and
// [Document.NewGraph] return the index of the graph they append and make it
// the current graph; [Document.AddPlot] and [Document.Axis] target the
// current graph, [Document.AddPlotTo] and [Document.AxisOf] take an explicit
// index.
//
// A Document is not safe for concurrent use.
package script
