package fontfit

// IoU returns |A ∩ B| / |A ∪ B| over the foreground pixels of two masks.
//
// It is 0 when either mask is nil, when their dimensions differ, or when
// neither has any foreground.
func IoU(a, b *Mask) float64 {
	if !a.SameSize(b) {
		return 0
	}

	var inter, union int
	for i, av := range a.Pix {
		fa := av > ForegroundThreshold
		fb := b.Pix[i] > ForegroundThreshold
		if fa && fb {
			inter++
		}
		if fa || fb {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
