package segclock

// Segment bits. Each digit is one byte: A through G in bits 0-6 and the
// decimal point in bit 7.
//
//	 AAA
//	F   B
//	 GGG
//	E   C
//	 DDD  P
const (
	SegmentA uint8 = 1 << iota
	SegmentB
	SegmentC
	SegmentD
	SegmentE
	SegmentF
	SegmentG
	SegmentP
)

// Translation from decimal digits into segments.
var decimalSegments = [10]uint8{
	//       PGFEDCBA
	0: 0b00111111,
	1: 0b00000110,
	2: 0b01011011,
	3: 0b01001111,
	4: 0b01100110,
	5: 0b01101101,
	6: 0b01111101,
	7: 0b00000111,
	8: 0b01111111,
	9: 0b01100111,
}

// DigitSegments returns the segment pattern for a decimal digit. Values above
// 9 have no pattern and come back blank.
func DigitSegments(d uint8) uint8 {
	if int(d) >= len(decimalSegments) {
		return 0
	}
	return decimalSegments[d]
}
