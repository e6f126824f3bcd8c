// Package replay drives a jump list from a line-oriented command script.
//
// Each non-blank line holds one command. A # at the start of a line or
// after whitespace begins a comment.
//
//	visit main.go:10      record a location
//	visit -               record nothing (drops the newest entry)
//	amend main.go:12:4    overwrite the newest entry
//	back / forward        move the browse position
//	peek                  show the neighbours of the browse position
//	current               show the browse position
//	drop                  delete the newest entry
//	list                  show all entries, oldest first; * marks the browse position
//	len                   show length and capacity
//	check                 verify storage integrity
//
// Every command writes exactly one line. Absent results print <none>.
package replay
