package segclock

import "testing"

func TestDigitSegments(t *testing.T) {
	tests := []struct {
		digit uint8
		want  uint8
	}{
		{0, SegmentA | SegmentB | SegmentC | SegmentD | SegmentE | SegmentF},
		{1, SegmentB | SegmentC},
		{4, SegmentB | SegmentC | SegmentF | SegmentG},
		{7, SegmentA | SegmentB | SegmentC},
		{8, SegmentA | SegmentB | SegmentC | SegmentD | SegmentE | SegmentF | SegmentG},
		{9, SegmentA | SegmentB | SegmentC | SegmentF | SegmentG},
		{10, 0},
		{0xff, 0},
	}
	for _, test := range tests {
		if got := DigitSegments(test.digit); got != test.want {
			t.Errorf("DigitSegments(%d) = %#08b, want %#08b", test.digit, got, test.want)
		}
	}
}

func TestDigitSegmentsNoDecimalPoint(t *testing.T) {
	for d := uint8(0); d < 10; d++ {
		if DigitSegments(d)&SegmentP != 0 {
			t.Errorf("DigitSegments(%d) lights the decimal point", d)
		}
	}
}
