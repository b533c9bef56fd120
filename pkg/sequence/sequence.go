// Package sequence provides DNA alphabet utilities shared by the graph
// packages: complementation, reverse complementation, and alphabet checks.
//
// Sequences are plain strings over the IUPAC nucleotide alphabet. The
// ambiguity codes (N, R, Y, S, W, K, M, B, D, H, V) are first-class: they
// complement to their mirrored code rather than degrading to N.
package sequence

import "strings"

// complementTable maps every supported IUPAC code (upper and lower case) to
// its complement. Codes absent from the table complement to N.
var complementTable = map[byte]byte{
	'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', 'U': 'A',
	'N': 'N',
	'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W', 'K': 'M', 'M': 'K',
	'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D',
	'a': 't', 't': 'a', 'c': 'g', 'g': 'c', 'u': 'a',
	'n': 'n',
	'r': 'y', 'y': 'r', 's': 's', 'w': 'w', 'k': 'm', 'm': 'k',
	'b': 'v', 'v': 'b', 'd': 'h', 'h': 'd',
}

// Complement returns the complement of a single base.
// Unknown bases complement to 'N'.
func Complement(base byte) byte {
	if c, ok := complementTable[base]; ok {
		return c
	}
	return 'N'
}

// ReverseComplement returns the reverse complement of a DNA sequence.
func ReverseComplement(seq string) string {
	n := len(seq)
	var sb strings.Builder
	sb.Grow(n)
	for i := n - 1; i >= 0; i-- {
		sb.WriteByte(Complement(seq[i]))
	}
	return sb.String()
}

// IsValid reports whether every byte of seq is a supported IUPAC code.
func IsValid(seq string) bool {
	for i := 0; i < len(seq); i++ {
		if _, ok := complementTable[seq[i]]; !ok {
			return false
		}
	}
	return true
}
